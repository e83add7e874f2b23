package handlers

import (
	"marrent/internal/services"
	"marrent/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AvailabilityHandler struct {
	Inv *services.InventoryService
}

// GET /api/v1/availability?equipmentId=ME0001
func (h *AvailabilityHandler) Check(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("equipmentId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing equipmentId",
		})
	}
	avail, err := h.Inv.Check(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(avail)
}
