package handler

import (
	"errors"

	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// getUserID reads the caller identity set by the auth middleware.
func getUserID(c *fiber.Ctx) string {
	if userID, ok := c.Locals("user_id").(string); ok {
		return userID
	}
	return "system"
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// fail maps a service error onto the HTTP contract: not-found sentinels give
// 404, ErrInternal gives 500, everything else is a client-correctable 400.
func fail(c *fiber.Ctx, err error) error {
	status := 400
	switch {
	case errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrSupplierNotFound),
		errors.Is(err, service.ErrInvestorNotFound):
		status = 404
	case errors.Is(err, service.ErrInternal):
		status = 500
	}
	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}
