package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/biosecret/todo-api/models"
	"github.com/biosecret/todo-api/services"
)

type TodoHandler struct {
	todos *services.TodoService
	log   logrus.FieldLogger
}

func NewTodoHandler(todos *services.TodoService, log logrus.FieldLogger) *TodoHandler {
	return &TodoHandler{todos: todos, log: log}
}

// Lấy tất cả Todos của user
func (h *TodoHandler) HandleAllTodos(c *fiber.Ctx) error {
	identity, ok := identityOf(c)
	if !ok {
		return unauthorized(c)
	}

	todos, err := h.todos.List(c.UserContext(), identity)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(todos)
}

// Tạo mới một Todo
func (h *TodoHandler) HandleCreateTodo(c *fiber.Ctx) error {
	identity, ok := identityOf(c)
	if !ok {
		return unauthorized(c)
	}

	var input models.CreateTodoInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	todo, err := h.todos.Create(c.UserContext(), identity, input)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(todo)
}

// Lấy một Todo theo ID
func (h *TodoHandler) HandleGetOneTodo(c *fiber.Ctx) error {
	identity, ok := identityOf(c)
	if !ok {
		return unauthorized(c)
	}

	todo, err := h.todos.Get(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(todo)
}

// Cập nhật một phần Todo, field không gửi lên giữ nguyên giá trị cũ
func (h *TodoHandler) HandleUpdateTodo(c *fiber.Ctx) error {
	identity, ok := identityOf(c)
	if !ok {
		return unauthorized(c)
	}

	var input models.UpdateTodoInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	todo, err := h.todos.Update(c.UserContext(), identity, c.Params("id"), input)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(todo)
}

// Đảo trạng thái hoàn thành của Todo
func (h *TodoHandler) HandleToggleTodo(c *fiber.Ctx) error {
	identity, ok := identityOf(c)
	if !ok {
		return unauthorized(c)
	}

	todo, err := h.todos.Toggle(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(todo)
}

// Xóa một Todo
func (h *TodoHandler) HandleDeleteTodo(c *fiber.Ctx) error {
	identity, ok := identityOf(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.todos.Delete(c.UserContext(), identity, c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Todo removed"})
}
