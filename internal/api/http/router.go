package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hbhotel/facilities-service/internal/api/http/handlers"
	"github.com/hbhotel/facilities-service/internal/auth"
	"github.com/hbhotel/facilities-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Incidents      *handlers.IncidentsHandler
	Maintenance    *handlers.MaintenanceHandler
	Calendar       *handlers.CalendarHandler
	Reference      *handlers.ReferenceHandler
	Reports        *handlers.ReportsHandler
	Workers        *handlers.WorkersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("", cfg.AuthMiddleware.Handle)
	api.Get("/auth/me", cfg.Auth.Me)

	incidents := api.Group("/incidents")
	incidents.Post("", cfg.Incidents.Create)
	incidents.Get("", cfg.Incidents.List)
	incidents.Get("/:id", cfg.Incidents.Get)
	incidents.Patch("/:id", cfg.Incidents.Update)
	incidents.Delete("/:id", cfg.Incidents.Delete)
	incidents.Post("/:id/claim", auth.RequireRole(domain.RoleMaintenance), cfg.Incidents.Claim)
	incidents.Post("/:id/assign", auth.RequireRole(domain.RoleAdmin), cfg.Incidents.Assign)
	incidents.Post("/:id/auto-assign", auth.RequireRole(domain.RoleAdmin), cfg.Incidents.AutoAssign)
	incidents.Post("/:id/start", auth.RequireRole(domain.RoleAdmin), cfg.Incidents.Start)
	incidents.Post("/:id/complete", cfg.Incidents.Complete)
	incidents.Post("/:id/observation", cfg.Incidents.Observe)
	incidents.Post("/:id/reopen", auth.RequireRole(domain.RoleAdmin), cfg.Incidents.Reopen)

	maintenance := api.Group("/maintenance")
	maintenance.Post("", cfg.Maintenance.Create)
	maintenance.Get("", cfg.Maintenance.List)
	maintenance.Get("/suppliers", cfg.Maintenance.Suppliers)
	maintenance.Get("/:id", cfg.Maintenance.Get)
	maintenance.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Maintenance.Delete)
	maintenance.Post("/:id/work-order", cfg.Maintenance.GenerateWorkOrder)
	maintenance.Post("/:id/start", cfg.Maintenance.Start)
	maintenance.Post("/:id/finish", cfg.Maintenance.Finish)
	maintenance.Post("/:id/parts", cfg.Maintenance.AddPart)
	maintenance.Get("/:id/parts", cfg.Maintenance.ListParts)
	maintenance.Delete("/:id/parts/:partId", cfg.Maintenance.RemovePart)

	calendar := api.Group("/calendar")
	calendar.Get("", cfg.Calendar.List)
	calendar.Post("/cleanup", auth.RequireRole(domain.RoleAdmin), cfg.Calendar.Cleanup)

	api.Get("/areas", cfg.Reference.ListAreas)
	api.Post("/areas", auth.RequireRole(domain.RoleAdmin), cfg.Reference.CreateArea)
	api.Put("/areas/:id", auth.RequireRole(domain.RoleAdmin), cfg.Reference.UpdateArea)
	api.Delete("/areas/:id", auth.RequireRole(domain.RoleAdmin), cfg.Reference.DeleteArea)

	api.Get("/types", cfg.Reference.ListTypes)
	api.Post("/types", auth.RequireRole(domain.RoleAdmin), cfg.Reference.CreateType)
	api.Put("/types/:id", auth.RequireRole(domain.RoleAdmin), cfg.Reference.UpdateType)
	api.Delete("/types/:id", auth.RequireRole(domain.RoleAdmin), cfg.Reference.DeleteType)

	api.Get("/equipment", cfg.Reference.ListEquipment)
	api.Post("/equipment", auth.RequireRole(domain.RoleAdmin), cfg.Reference.CreateEquipment)
	api.Put("/equipment/:id", auth.RequireRole(domain.RoleAdmin), cfg.Reference.UpdateEquipment)
	api.Delete("/equipment/:id", auth.RequireRole(domain.RoleAdmin), cfg.Reference.DeleteEquipment)

	reports := api.Group("/reports")
	reports.Get("/today", cfg.Reports.Today)
	reports.Get("/stats", cfg.Reports.Stats)
	reports.Get("/day/:date", cfg.Reports.Day)

	api.Get("/workers", auth.RequireRole(domain.RoleAdmin), cfg.Workers.List)
	api.Get("/workers/maintenance", cfg.Workers.ListMaintenance)
}
