package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/biosecret/todo-api/models"
	"github.com/biosecret/todo-api/services"
)

type AuthHandler struct {
	auth *services.AuthService
	log  logrus.FieldLogger
}

func NewAuthHandler(auth *services.AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// RegisterHandler đăng ký người dùng mới
func (h *AuthHandler) RegisterHandler(c *fiber.Ctx) error {
	var input models.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	result, err := h.auth.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// LoginHandler đăng nhập bằng email và mật khẩu
func (h *AuthHandler) LoginHandler(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	result, err := h.auth.Login(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// MeHandler trả về thông tin user đang đăng nhập, không kèm mật khẩu
func (h *AuthHandler) MeHandler(c *fiber.Ctx) error {
	identity, ok := identityOf(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.auth.Profile(c.UserContext(), identity)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
