package handler

import (
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves category, supplier and investor CRUD.
type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	if err := h.catalog.CreateCategory(&category, getUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(category)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid category ID"})
	}
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	updated, err := h.catalog.UpdateCategory(id, &category, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updated)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid category ID"})
	}
	if err := h.catalog.DeleteCategory(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

func (h *CatalogHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.catalog.ListSuppliers()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(suppliers)
}

func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	if err := h.catalog.CreateSupplier(&supplier, getUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(supplier)
}

func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid supplier ID"})
	}
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	updated, err := h.catalog.UpdateSupplier(id, &supplier, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updated)
}

func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid supplier ID"})
	}
	if err := h.catalog.DeleteSupplier(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier deleted successfully"})
}

func (h *CatalogHandler) GetInvestors(c *fiber.Ctx) error {
	investors, err := h.catalog.ListInvestors()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(investors)
}

func (h *CatalogHandler) CreateInvestor(c *fiber.Ctx) error {
	var investor model.Investor
	if err := c.BodyParser(&investor); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	if err := h.catalog.CreateInvestor(&investor, getUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(investor)
}

func (h *CatalogHandler) UpdateInvestor(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid investor ID"})
	}
	var investor model.Investor
	if err := c.BodyParser(&investor); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}
	updated, err := h.catalog.UpdateInvestor(id, &investor, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updated)
}

func (h *CatalogHandler) DeleteInvestor(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid investor ID"})
	}
	if err := h.catalog.DeleteInvestor(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Investor deleted successfully"})
}
