package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/biosecret/todo-api/middleware"
	"github.com/biosecret/todo-api/models"
	"github.com/biosecret/todo-api/services"
)

const msgServerError = "Server error"

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindValidation, services.KindConflict:
		return fiber.StatusBadRequest
	case services.KindAuth:
		return fiber.StatusUnauthorized
	case services.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError chuyển lỗi của service thành status code. Lỗi nội bộ chỉ được log, client nhận thông báo chung.
func respondError(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	var se *services.Error
	if errors.As(err, &se) && se.Kind != services.KindInternal {
		return c.Status(statusFor(se.Kind)).JSON(fiber.Map{"message": se.Message})
	}

	log.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": msgServerError})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "not authorized"})
}

// identityOf lấy danh tính mà JWTMiddleware đã lưu
func identityOf(c *fiber.Ctx) (models.UserIdentity, bool) {
	return middleware.CurrentUser(c)
}
