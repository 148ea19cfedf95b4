package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/todo-api/handlers"
	"github.com/biosecret/todo-api/middleware"
)

// Routes gom các handler và middleware cần để đăng ký route
type Routes struct {
	Auth     *handlers.AuthHandler
	Todos    *handlers.TodoHandler
	Health   *handlers.HealthHandler
	Verifier middleware.TokenVerifier
	Metrics  *middleware.Metrics
	// AuthLimiter nil nghĩa là không giới hạn số lần đăng nhập/đăng ký
	AuthLimiter *middleware.RateLimiter
}

func SetupRoutes(app *fiber.App, r Routes) {
	app.Get("/health", r.Health.HandleHealthCheck)
	if r.Metrics != nil {
		app.Get("/metrics", r.Metrics.Endpoint())
	}

	jwt := middleware.JWTMiddleware(r.Verifier)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", limited(r.AuthLimiter, r.Auth.RegisterHandler)...)
	auth.Post("/login", limited(r.AuthLimiter, r.Auth.LoginHandler)...)
	auth.Get("/me", jwt, r.Auth.MeHandler)

	todos := api.Group("/todos", jwt)
	todos.Get("", r.Todos.HandleAllTodos)
	todos.Post("", r.Todos.HandleCreateTodo)
	todos.Get("/:id", r.Todos.HandleGetOneTodo)
	todos.Put("/:id", r.Todos.HandleUpdateTodo)
	todos.Patch("/:id/toggle", r.Todos.HandleToggleTodo)
	todos.Delete("/:id", r.Todos.HandleDeleteTodo)
}

func limited(limiter *middleware.RateLimiter, h fiber.Handler) []fiber.Handler {
	if limiter == nil {
		return []fiber.Handler{h}
	}
	return []fiber.Handler{limiter.Handler(), h}
}
