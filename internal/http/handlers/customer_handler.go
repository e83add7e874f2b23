package handlers

import (
	applog "marrent/internal/log"
	"marrent/internal/services"
	"marrent/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	Customers *services.CustomerService
}

// GET /customers — listing plus registration form.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	rows, err := h.Customers.List()
	if err != nil {
		applog.Error(c, "customers.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load customers"})
	}
	return render(c, "customers", fiber.Map{"Rows": rows})
}

// POST /customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	id, err := h.Customers.Register(c.FormValue("name"), c.FormValue("phone"), c.FormValue("email"))
	if err != nil {
		rows, _ := h.Customers.List()
		return c.Status(400).Render("customers", fiber.Map{"Rows": rows, "Err": err.Error()})
	}
	applog.Audit(c, "customer.create", map[string]any{"customer_id": id})
	return c.Redirect("/customers")
}

// POST /customers/:id/update
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Customers.Update(id, c.FormValue("name"), c.FormValue("phone"), c.FormValue("email")); err != nil {
		rows, _ := h.Customers.List()
		return c.Status(400).Render("customers", fiber.Map{"Rows": rows, "Err": err.Error()})
	}
	applog.Audit(c, "customer.update", map[string]any{"customer_id": id})
	return c.Redirect("/customers")
}

// POST /customers/:id/delete
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Customers.Delete(id); err != nil {
		applog.Error(c, "customer.delete.fail", err, map[string]any{"customer_id": id})
		return c.Status(400).SendString("could not delete customer")
	}
	applog.Audit(c, "customer.delete", map[string]any{"customer_id": id})
	return c.Redirect("/customers")
}
