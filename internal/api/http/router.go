package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/carmarket-service/internal/api/http/handlers"
	"github.com/spec-kit/carmarket-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Cars           *handlers.CarsHandler
	Services       *handlers.ServicesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/refresh", cfg.Users.Refresh)

	cars := app.Group("/cars", cfg.AuthMiddleware.Handle)
	cars.Post("/add", cfg.Cars.Add)
	cars.Post("/all", cfg.Cars.List)
	cars.Post("/user", cfg.Cars.ListForUser)
	cars.Post("/update", cfg.Cars.Update)
	cars.Post("/delete", cfg.Cars.Delete)

	services := app.Group("/services", cfg.AuthMiddleware.Handle)
	services.Post("/create", cfg.Services.Create)
	services.Post("/update", cfg.Services.Update)
	services.Post("/all", cfg.Services.List)
	services.Post("/car", cfg.Services.ListForCar)
	services.Post("/message", cfg.Services.AddMessage)
}
