package handlers

import (
	"time"

	applog "marrent/internal/log"
	"marrent/internal/services"
	"marrent/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type RentalHandler struct {
	Rental    *services.RentalService
	Tracking  *services.TrackingService
	Inv       *services.InventoryService
	Customers *services.CustomerService
}

const dateLayout = "2006-01-02"

// GET /rentals/new — the agreement form: customer select, available
// equipment checkboxes, date range, tax toggle.
func (h *RentalHandler) NewForm(c *fiber.Ctx) error {
	available, err := h.Inv.Available()
	if err != nil {
		applog.Error(c, "rentals.form.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load equipment"})
	}
	customers, err := h.Customers.List()
	if err != nil {
		applog.Error(c, "rentals.form.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load customers"})
	}
	now := time.Now()
	return render(c, "rental_new", fiber.Map{
		"Available": available,
		"Customers": customers,
		"Start":     now.Format(dateLayout),
		"End":       now.AddDate(0, 0, 7).Format(dateLayout),
	})
}

// POST /rentals
func (h *RentalHandler) Create(c *fiber.Ctx) error {
	customerID, okC := validate.ID(c.FormValue("customer_id"))
	start, errS := time.Parse(dateLayout, c.FormValue("start_date"))
	end, errE := time.Parse(dateLayout, c.FormValue("end_date"))
	if !okC || errS != nil || errE != nil {
		return h.formError(c, "Pick a customer and valid dates")
	}

	form, err := c.MultipartForm()
	var equipmentIDs []string
	if err == nil && form != nil {
		equipmentIDs = form.Value["equipment_id"]
	}
	if len(equipmentIDs) == 0 {
		// urlencoded forms land here; fasthttp exposes repeated keys via PostArgs
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			if string(k) == "equipment_id" {
				equipmentIDs = append(equipmentIDs, string(v))
			}
		})
	}
	taxIncluded := c.FormValue("tax_included") == "on"

	id, err := h.Rental.Create(customerID, equipmentIDs, start, end, taxIncluded)
	if err != nil {
		applog.Info(c, "rentals.create.reject", map[string]any{"reason": err.Error()})
		return h.formError(c, err.Error())
	}
	applog.Audit(c, "rentals.create", map[string]any{
		"rental_id": id, "customer_id": customerID, "equipment": equipmentIDs, "tax": taxIncluded,
	})
	return c.Redirect("/rentals")
}

// GET /rentals — tracking: active rentals with days remaining, expiring flagged.
func (h *RentalHandler) TrackingPage(c *fiber.Ctx) error {
	all, expiring, err := h.Tracking.Snapshot()
	if err != nil {
		applog.Error(c, "rentals.tracking.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load rentals"})
	}
	return render(c, "rentals", fiber.Map{"Rows": all, "Expiring": expiring})
}

// POST /rentals/:id/close
func (h *RentalHandler) Close(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Rental.Close(id); err != nil {
		applog.Error(c, "rentals.close.fail", err, map[string]any{"rental_id": id})
		return c.Status(400).SendString("could not close rental")
	}
	applog.Audit(c, "rentals.close", map[string]any{"rental_id": id})
	return c.Redirect("/rentals")
}

func (h *RentalHandler) formError(c *fiber.Ctx, msg string) error {
	available, _ := h.Inv.Available()
	customers, _ := h.Customers.List()
	now := time.Now()
	return c.Status(400).Render("rental_new", fiber.Map{
		"Available": available,
		"Customers": customers,
		"Start":     now.Format(dateLayout),
		"End":       now.AddDate(0, 0, 7).Format(dateLayout),
		"Err":       msg,
		"CSRFToken": c.Cookies("csrf_"),
	})
}
