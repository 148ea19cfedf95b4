package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger kiểm tra kết nối tới database
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleHealthCheck luôn trả 200, trường database cho biết store có phản hồi không
func (h *HealthHandler) HandleHealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	database := "PostgreSQL"
	if err := h.db.Ping(ctx); err != nil {
		database = "unreachable"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "OK",
		"message":  "Server is running",
		"database": database,
	})
}
