package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/drivedesk-api/internal/config"
	"github.com/noah-isme/drivedesk-api/internal/handler"
	"github.com/noah-isme/drivedesk-api/internal/middleware"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	StudentHandler      *handler.StudentHandler
	TrainingHandler     *handler.TrainingHandler
	LicensePriceHandler *handler.LicensePriceHandler
	NotificationHandler *handler.NotificationHandler
	PeopleHandler       *handler.PeopleHandler
	FleetHandler        *handler.FleetHandler
	OperationsHandler   *handler.OperationsHandler
	SchoolHandler       *handler.SchoolHandler
	AdminHandler        *handler.AdminHandler
	UploadHandler       *handler.UploadHandler
	SeedHandler         *handler.SeedHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"), middleware.RateLimit("login", cfg.RateLimitMax, cfg.RateLimitWindow))
	}

	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(api.Group("/seed"))
	}

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	staff := []fiber.Handler{jwtMiddleware, middleware.RequireRole(middleware.StaffRoles...), middleware.OfficeScope()}
	admins := []fiber.Handler{jwtMiddleware, middleware.RequireRole(middleware.AdminRoles...), middleware.OfficeScope()}

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students", staff...))
	}

	if deps.TrainingHandler != nil {
		deps.TrainingHandler.RegisterLessons(api.Group("/lessons", staff...))
		deps.TrainingHandler.RegisterExams(api.Group("/exams", staff...))
		deps.TrainingHandler.RegisterPayments(api.Group("/payments", staff...))
	}

	if deps.LicensePriceHandler != nil {
		deps.LicensePriceHandler.Register(api.Group("/license-prices", staff...))
	}

	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications", staff...))
	}

	if deps.PeopleHandler != nil {
		deps.PeopleHandler.RegisterTrainers(api.Group("/trainers", staff...))
		deps.PeopleHandler.RegisterStaff(api.Group("/staff", staff...))
	}

	if deps.FleetHandler != nil {
		deps.FleetHandler.Register(api.Group("/vehicles", staff...))
	}

	if deps.OperationsHandler != nil {
		deps.OperationsHandler.RegisterAttendance(api.Group("/attendance", staff...))
		deps.OperationsHandler.RegisterCharges(api.Group("/charges", admins...))
	}

	if deps.SchoolHandler != nil {
		deps.SchoolHandler.RegisterDashboard(api.Group("/dashboard", staff...))
		deps.SchoolHandler.RegisterProfile(api.Group("/school-profile", staff...))
		deps.SchoolHandler.RegisterActivity(api.Group("/activity", admins...))
	}

	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(api.Group("/uploads", staff...))
	}

	if deps.AdminHandler != nil {
		deps.AdminHandler.Register(api.Group("/admin", jwtMiddleware, middleware.RequireRole(models.RoleSuperAdmin), middleware.OfficeScope()))
	}
}
