package handlers

import (
	applog "marrent/internal/log"
	"marrent/internal/repos"
	"marrent/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	Users *repos.UserRepo
}

// GET /admin/users
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load users"})
	}
	return render(c, "admin_users", fiber.Map{"Users": users})
}

// POST /admin/users — the admin may add further operators.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	username, ok := validate.Name(c.FormValue("username"))
	pass := c.FormValue("password")
	if !ok || !validate.Password(pass) {
		users, _ := h.Users.List()
		return c.Status(400).Render("admin_users", fiber.Map{
			"Users": users, "Err": "Username required; password must be 8-64 characters",
			"CSRFToken": c.Cookies("csrf_"),
		})
	}
	if err := h.Users.Create("u-"+uuid.NewString(), username, pass, "USER"); err != nil {
		applog.Error(c, "admin.users.create.fail", err, map[string]any{"username": username})
		users, _ := h.Users.List()
		return c.Status(400).Render("admin_users", fiber.Map{
			"Users": users, "Err": "Could not create user (already exists?)",
			"CSRFToken": c.Cookies("csrf_"),
		})
	}
	applog.Audit(c, "admin.users.create", map[string]any{"username": username})
	return c.Redirect("/admin/users")
}

// POST /admin/users/:id/delete
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Users.DeleteUserCascade(id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("could not delete user")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.Redirect("/admin/users")
}
