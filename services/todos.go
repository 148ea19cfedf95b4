package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/biosecret/todo-api/database"
	"github.com/biosecret/todo-api/models"
	"github.com/biosecret/todo-api/utils"
)

const maxTitleLength = 255

// TodoStore là phần của database.Store mà TodoService cần. Mọi truy vấn đều nhận userID.
type TodoStore interface {
	ListTodos(ctx context.Context, userID string) ([]models.Todo, error)
	GetTodo(ctx context.Context, userID, id string) (models.Todo, error)
	CreateTodo(ctx context.Context, t models.Todo) error
	UpdateTodo(ctx context.Context, t models.Todo) error
	ToggleTodo(ctx context.Context, userID, id string, now time.Time) (models.Todo, error)
	DeleteTodo(ctx context.Context, userID, id string) error
}

// Publisher nhận sự kiện sau mỗi thay đổi. Lỗi publish không làm hỏng request.
type Publisher interface {
	PublishTodoEvent(ev models.TodoEvent)
}

// TodoService thực hiện CRUD trên todo, luôn giới hạn theo user đang đăng nhập
type TodoService struct {
	store     TodoStore
	publisher Publisher
	now       func() time.Time
}

func NewTodoService(store TodoStore, publisher Publisher) *TodoService {
	return &TodoService{store: store, publisher: publisher, now: time.Now}
}

func (s *TodoService) List(ctx context.Context, id models.UserIdentity) ([]models.Todo, error) {
	todos, err := s.store.ListTodos(ctx, id.UserID)
	if err != nil {
		return nil, internalError("list todos", err)
	}
	return todos, nil
}

// Get trả về NotFound cả khi todo không tồn tại lẫn khi todo thuộc user khác
func (s *TodoService) Get(ctx context.Context, id models.UserIdentity, todoID string) (models.Todo, error) {
	if !utils.ValidID(todoID) {
		return models.Todo{}, todoNotFound()
	}
	todo, err := s.store.GetTodo(ctx, id.UserID, todoID)
	if err != nil {
		return models.Todo{}, storeError("get todo", err)
	}
	return todo, nil
}

func (s *TodoService) Create(ctx context.Context, id models.UserIdentity, in models.CreateTodoInput) (models.Todo, error) {
	title, err := validTitle(in.Title)
	if err != nil {
		return models.Todo{}, err
	}

	priority := models.PriorityMedium
	if in.Priority != nil {
		if priority, err = validPriority(*in.Priority); err != nil {
			return models.Todo{}, err
		}
	}

	description := ""
	if in.Description != nil {
		description = *in.Description
	}

	now := s.now().UTC()
	todo := models.Todo{
		ID:          utils.NewID(),
		UserID:      id.UserID,
		Title:       title,
		Description: description,
		Completed:   false,
		Priority:    priority,
		DueDate:     utcPtr(in.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateTodo(ctx, todo); err != nil {
		return models.Todo{}, internalError("create todo", err)
	}

	s.publish(models.TodoCreated, todo.UserID, todo.ID, &todo)
	return todo, nil
}

// Update chỉ ghi đè các field có mặt trong request. Request rỗng không ghi gì vào database.
func (s *TodoService) Update(ctx context.Context, id models.UserIdentity, todoID string, in models.UpdateTodoInput) (models.Todo, error) {
	todo, err := s.Get(ctx, id, todoID)
	if err != nil {
		return models.Todo{}, err
	}
	if in.Empty() {
		return todo, nil
	}

	if in.Title.Set {
		if in.Title.Null {
			return models.Todo{}, validationError("title must not be null")
		}
		if todo.Title, err = validTitle(in.Title.Value); err != nil {
			return models.Todo{}, err
		}
	}
	if in.Description.Set {
		// null xóa mô tả
		todo.Description = in.Description.Value
	}
	if in.Completed.Set {
		if in.Completed.Null {
			return models.Todo{}, validationError("completed must not be null")
		}
		todo.Completed = in.Completed.Value
	}
	if in.Priority.Set {
		if in.Priority.Null {
			return models.Todo{}, validationError("priority must not be null")
		}
		if todo.Priority, err = validPriority(in.Priority.Value); err != nil {
			return models.Todo{}, err
		}
	}
	if in.DueDate.Set {
		todo.DueDate = utcPtr(in.DueDate.Value)
	}
	todo.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateTodo(ctx, todo); err != nil {
		return models.Todo{}, storeError("update todo", err)
	}

	s.publish(models.TodoUpdated, todo.UserID, todo.ID, &todo)
	return todo, nil
}

// Toggle đảo trạng thái completed
func (s *TodoService) Toggle(ctx context.Context, id models.UserIdentity, todoID string) (models.Todo, error) {
	if !utils.ValidID(todoID) {
		return models.Todo{}, todoNotFound()
	}
	todo, err := s.store.ToggleTodo(ctx, id.UserID, todoID, s.now().UTC())
	if err != nil {
		return models.Todo{}, storeError("toggle todo", err)
	}

	s.publish(models.TodoToggled, todo.UserID, todo.ID, &todo)
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id models.UserIdentity, todoID string) error {
	if !utils.ValidID(todoID) {
		return todoNotFound()
	}
	if err := s.store.DeleteTodo(ctx, id.UserID, todoID); err != nil {
		return storeError("delete todo", err)
	}

	s.publish(models.TodoDeleted, id.UserID, todoID, nil)
	return nil
}

func (s *TodoService) publish(typ models.TodoEventType, userID, todoID string, todo *models.Todo) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishTodoEvent(models.TodoEvent{
		Type:   typ,
		UserID: userID,
		TodoID: todoID,
		Todo:   todo,
		At:     s.now().UTC(),
	})
}

func storeError(op string, err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return todoNotFound()
	}
	return internalError(op, err)
}

func validTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", validationError("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", validationError("title must be at most 255 characters")
	}
	return title, nil
}

func validPriority(s string) (models.Priority, error) {
	p, ok := models.ParsePriority(s)
	if !ok {
		return "", validationError("priority must be one of low, medium, high")
	}
	return p, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
