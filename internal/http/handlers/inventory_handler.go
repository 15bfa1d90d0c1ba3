package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"samysilks/internal/services"
	"samysilks/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// Check answers the product page's availability probe for one size bucket.
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	productID, ok := validate.ID(strings.TrimSpace(c.Query("productId")))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing productId",
		})
	}
	size := strings.TrimSpace(c.Query("size"))

	avail, err := h.Inv.CheckAvailability(productID, size)
	if err != nil {
		if err == services.ErrBadSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown size"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(avail)
}
