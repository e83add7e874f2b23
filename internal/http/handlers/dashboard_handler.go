package handlers

import (
	"marrent/internal/domain"
	applog "marrent/internal/log"
	"marrent/internal/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Inv       *services.InventoryService
	Customers *services.CustomerService
	Tracking  *services.TrackingService
}

// GET / — headline counts for the landing page.
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	equipment, err := h.Inv.List()
	if err != nil {
		applog.Error(c, "dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	customers, err := h.Customers.List()
	if err != nil {
		applog.Error(c, "dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	rentals, expiring, err := h.Tracking.Snapshot()
	if err != nil {
		applog.Error(c, "dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}

	available, rented := 0, 0
	for _, e := range equipment {
		switch e.Status {
		case domain.StatusAvailable:
			available++
		case domain.StatusRented:
			rented++
		}
	}

	return render(c, "dashboard", fiber.Map{
		"Equipment": len(equipment),
		"Available": available,
		"Rented":    rented,
		"Customers": len(customers),
		"Rentals":   len(rentals),
		"Expiring":  len(expiring),
	})
}
