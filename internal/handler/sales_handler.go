package handler

import (
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	sales   service.SalesService
	reports service.ReportService
}

func NewSalesHandler(sales service.SalesService, reports service.ReportService) *SalesHandler {
	return &SalesHandler{sales: sales, reports: reports}
}

// CreateTransaction handles POST /transactions.
func (h *SalesHandler) CreateTransaction(c *fiber.Ctx) error {
	var req model.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	tx, err := h.sales.Create(&req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(tx)
}

// CancelTransaction handles POST /transactions/:id/cancel.
func (h *SalesHandler) CancelTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid transaction ID"})
	}

	tx, err := h.sales.Cancel(id, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message":     "Transaction cancelled successfully",
		"transaction": tx,
	})
}

// GetTransactions handles GET /transactions with pagination and filters.
func (h *SalesHandler) GetTransactions(c *fiber.Ctx) error {
	filter := repository.TransactionFilter{
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 10),
		Status:        model.TransactionStatus(c.Query("status")),
		PaymentMethod: model.PaymentMethod(c.Query("paymentMethod")),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if start, err := parseDate(c.Query("startDate")); err == nil {
		filter.StartDate = &start
	}
	if end, err := parseDate(c.Query("endDate")); err == nil {
		filter.EndDate = &end
	}

	transactions, total, err := h.sales.List(filter)
	if err != nil {
		return fail(c, err)
	}

	totalPages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		totalPages++
	}
	return c.JSON(fiber.Map{
		"transactions":      transactions,
		"currentPage":       filter.Page,
		"totalPages":        totalPages,
		"totalTransactions": total,
	})
}

// GetTransaction handles GET /transactions/:id.
func (h *SalesHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid transaction ID"})
	}

	tx, err := h.sales.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tx)
}

// GetStats handles GET /transactions/stats, defaulting to the trailing 30 days.
func (h *SalesHandler) GetStats(c *fiber.Ctx) error {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if parsed, err := parseDate(c.Query("startDate")); err == nil {
		start = parsed
	}
	if parsed, err := parseDate(c.Query("endDate")); err == nil {
		end = parsed
	}

	stats, err := h.reports.Stats(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}

// parseDate accepts RFC3339 timestamps or plain dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
