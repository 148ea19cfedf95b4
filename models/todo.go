package models

import (
	"strings"
	"time"
)

// Priority là mức độ ưu tiên của một todo
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority chấp nhận "low", "medium", "high" (không phân biệt hoa thường)
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	}
	return "", false
}

// Todo là cấu trúc dữ liệu của một todo, luôn thuộc về một user
type Todo struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateTodoInput là body của POST /api/todos.
// userId trong body (nếu có) bị bỏ qua, chủ sở hữu luôn là user đang đăng nhập.
type CreateTodoInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTodoInput là body của PUT /api/todos/:id. Chỉ các field có mặt mới được ghi đè.
type UpdateTodoInput struct {
	Title       Optional[string]     `json:"title"`
	Description Optional[string]     `json:"description"`
	Completed   Optional[bool]       `json:"completed"`
	Priority    Optional[string]     `json:"priority"`
	DueDate     Optional[*time.Time] `json:"dueDate"`
}

// Empty cho biết request không chứa field nào
func (in UpdateTodoInput) Empty() bool {
	return !in.Title.Set && !in.Description.Set && !in.Completed.Set && !in.Priority.Set && !in.DueDate.Set
}

// TodoEventType mô tả loại thay đổi trên một todo
type TodoEventType string

const (
	TodoCreated TodoEventType = "created"
	TodoUpdated TodoEventType = "updated"
	TodoToggled TodoEventType = "toggled"
	TodoDeleted TodoEventType = "deleted"
)

// TodoEvent được phát ra sau mỗi thay đổi thành công
type TodoEvent struct {
	Type   TodoEventType `json:"type"`
	UserID string        `json:"userId"`
	TodoID string        `json:"todoId"`
	Todo   *Todo         `json:"todo,omitempty"`
	At     time.Time     `json:"at"`
}
