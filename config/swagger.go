package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "github.com/biosecret/todo-api/docs"
)

// AddSwaggerRoutes gắn Swagger UI vào /swagger nếu SWAGGER_ENABLED=true
func AddSwaggerRoutes(app *fiber.App, cfg Config) {
	if !cfg.SwaggerEnabled {
		return
	}
	app.Get("/swagger/*", swagger.HandlerDefault)
}
