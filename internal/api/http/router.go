package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/weight-tracker/internal/api/http/handlers"
	"github.com/spec-kit/weight-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Targets        *handlers.TargetsHandler
	Measurements   *handlers.MeasurementsHandler
	Roles          *handlers.RolesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Static segments are registered
// before parameterized ones so /users/me and /users/targets never
// collide with /users/:userID.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON("Hello World!")
	})

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/token", cfg.Auth.Login)

	authed := cfg.AuthMiddleware.Handle

	users := app.Group("/users")
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Get("/targets", cfg.Targets.ListPublic)
	users.Get("/targets/name/:targetName", cfg.Targets.GetByName)
	users.Get("/me", authed, cfg.Users.Me)
	users.Get("/me/targets", authed, cfg.Targets.MyTargets)
	users.Get("/name/:username", cfg.Users.GetByUsername)
	users.Get("/:userID", cfg.Users.Get)
	users.Patch("/:userID", authed, cfg.Users.Update)
	users.Delete("/:userID", authed, cfg.Users.Delete)

	users.Get("/:userID/targets", cfg.Targets.ListForUser)
	users.Post("/:userID/targets", authed, cfg.Targets.Create)
	users.Patch("/:userID/targets/:targetID", authed, cfg.Targets.Update)
	users.Delete("/:userID/targets/:targetID", authed, cfg.Targets.Delete)

	measurements := users.Group("/:userID/targets/:targetID/measurements", authed)
	measurements.Get("/", cfg.Measurements.List)
	measurements.Post("/", cfg.Measurements.Create)
	measurements.Get("/:measurementID", cfg.Measurements.Get)
	measurements.Patch("/:measurementID", cfg.Measurements.Update)
	measurements.Delete("/:measurementID", cfg.Measurements.Delete)

	roles := app.Group("/roles", authed, auth.AdminOnly())
	roles.Get("/", cfg.Roles.List)
	roles.Get("/name/:roleType", cfg.Roles.GetByName)
	roles.Get("/:roleID", cfg.Roles.Get)
	roles.Post("/", cfg.Roles.Create)
	roles.Patch("/:roleID", cfg.Roles.Update)
	roles.Delete("/:roleID", cfg.Roles.Delete)
}
