package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"marrent/internal/http/handlers"
	"marrent/internal/repos"
	"marrent/internal/services"
)

// Non-admin sessions must not reach /admin pages.
func TestAdminPagesRequireAdminRole(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	if err := userRepo.Create("u-op", "operator", "Oper8tor!pw", "USER"); err != nil {
		t.Fatal(err)
	}
	// bind sessions directly, bypassing the login form
	if err := userRepo.BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatal(err)
	}
	if err := userRepo.BindSession("sid-op", "u-op"); err != nil {
		t.Fatal(err)
	}

	authSvc := &services.AuthService{Users: userRepo}
	adminH := &handlers.AdminHandler{Users: userRepo}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/users", adminH.UsersPage)

	get := func(sid string) *http.Response {
		req := httptest.NewRequest("GET", "/admin/users", nil)
		if sid != "" {
			req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := get(""); resp.StatusCode != http.StatusFound {
		t.Fatalf("anonymous should redirect to login, got %d", resp.StatusCode)
	}
	if resp := get("sid-op"); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("USER role should get 403, got %d", resp.StatusCode)
	}
	if resp := get("sid-admin"); resp.StatusCode != http.StatusOK {
		t.Fatalf("ADMIN should get 200, got %d", resp.StatusCode)
	}
}
