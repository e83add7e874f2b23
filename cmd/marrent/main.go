package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"marrent/internal/config"
	"marrent/internal/http/handlers"
	applog "marrent/internal/log"
	"marrent/internal/mirror"
	"marrent/internal/repos"
	"marrent/internal/scheduler"
	"marrent/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	// Remote mirror: pull the store down before first open, push after writes.
	var backup services.Backup
	var mirrorClient *mirror.Client
	if cfg.MirrorURL != "" {
		mirrorClient = mirror.NewClient(cfg.MirrorURL, cfg.MirrorToken, cfg.DBDSN)
		if err := mirrorClient.PullIfMissing(); err != nil {
			log.Printf("[warn] mirror pull failed, starting from local state: %v", err)
		}
		backup = mirrorClient
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.SeedDemo {
		if err := repos.SeedDemoData(db); err != nil {
			log.Fatal(err)
		}
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, backup)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Everything below the line requires a session
	app.Use("/", handlers.RequireUser(authSvc))

	app.Get("/", deps.DashboardHandler.Home)

	// Inventory
	app.Get("/equipment", deps.EquipmentHandler.List)
	app.Post("/equipment", deps.EquipmentHandler.Create)
	app.Post("/equipment/:id/update", deps.EquipmentHandler.Update)
	app.Post("/equipment/:id/delete", deps.EquipmentHandler.Delete)

	// Customers
	app.Get("/customers", deps.CustomerHandler.List)
	app.Post("/customers", deps.CustomerHandler.Create)
	app.Post("/customers/:id/update", deps.CustomerHandler.Update)
	app.Post("/customers/:id/delete", deps.CustomerHandler.Delete)

	// Rentals
	app.Get("/rentals/new", deps.RentalHandler.NewForm)
	app.Post("/rentals", deps.RentalHandler.Create)
	app.Get("/rentals", deps.RentalHandler.TrackingPage)
	app.Post("/rentals/:id/close", deps.RentalHandler.Close)

	// API
	api := app.Group("/api/v1")
	api.Get("/availability", limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}), deps.AvailabilityHandler.Check)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/users", deps.AdminHandler.UsersPage)
	admin.Post("/users", deps.AdminHandler.CreateUser)
	admin.Post("/users/:id/delete", deps.AdminHandler.DeleteUser)

	// 404 tail
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	// Daily sweep: expiring rentals + mirror refresh
	sched, err := scheduler.New(deps.TrackingSvc, backup, cfg.SweepSpec)
	if err != nil {
		log.Fatal(err)
	}
	sched.Start()
	defer sched.Stop()

	log.Fatal(app.Listen(":" + cfg.Port))
}
