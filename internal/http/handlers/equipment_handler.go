package handlers

import (
	applog "marrent/internal/log"
	"marrent/internal/services"
	"marrent/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type EquipmentHandler struct {
	Inv *services.InventoryService
}

// GET /equipment — inventory listing plus the registration form.
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	rows, err := h.Inv.List()
	if err != nil {
		applog.Error(c, "equipment.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load inventory"})
	}
	return render(c, "equipment", fiber.Map{"Rows": rows})
}

// POST /equipment
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	brand, okB := validate.Name(c.FormValue("brand"))
	model, okM := validate.Name(c.FormValue("model"))
	price, okP := validate.Money(c.FormValue("price"))
	status, okS := validate.Status(c.FormValue("status"))
	description := c.FormValue("description")
	if !okB || !okM || !okP || !okS {
		rows, _ := h.Inv.List()
		return c.Status(400).Render("equipment", fiber.Map{"Rows": rows, "Err": "Check brand, model, status and price"})
	}

	id, err := h.Inv.Register(brand, model, description, status, price)
	if err != nil {
		applog.Error(c, "equipment.create.fail", err, map[string]any{"brand": brand, "model": model})
		return c.Status(400).SendString("could not register equipment")
	}
	applog.Audit(c, "equipment.create", map[string]any{"equipment_id": id})
	return c.Redirect("/equipment")
}

// POST /equipment/:id/update
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	brand, okB := validate.Name(c.FormValue("brand"))
	model, okM := validate.Name(c.FormValue("model"))
	price, okP := validate.Money(c.FormValue("price"))
	status, okS := validate.Status(c.FormValue("status"))
	if !okID || !okB || !okM || !okP || !okS {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Inv.Update(id, brand, model, c.FormValue("description"), status, price); err != nil {
		applog.Error(c, "equipment.update.fail", err, map[string]any{"equipment_id": id})
		return c.Status(400).SendString("could not update equipment")
	}
	applog.Audit(c, "equipment.update", map[string]any{"equipment_id": id, "status": status})
	return c.Redirect("/equipment")
}

// POST /equipment/:id/delete
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Inv.Delete(id); err != nil {
		applog.Error(c, "equipment.delete.fail", err, map[string]any{"equipment_id": id})
		return c.Status(400).SendString("could not delete equipment; close its rentals first")
	}
	applog.Audit(c, "equipment.delete", map[string]any{"equipment_id": id})
	return c.Redirect("/equipment")
}
