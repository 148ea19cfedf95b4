package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/biosecret/todo-api/models"
)

const todoColumns = "id, user_id, title, description, completed, priority, due_date, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (models.Todo, error) {
	var (
		todo     models.Todo
		priority string
		due      sql.NullTime
	)
	err := row.Scan(&todo.ID, &todo.UserID, &todo.Title, &todo.Description, &todo.Completed,
		&priority, &due, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return models.Todo{}, err
	}
	todo.Priority = models.Priority(priority)
	if due.Valid {
		t := due.Time
		todo.DueDate = &t
	}
	return todo, nil
}

// ListTodos lấy tất cả todo của một user, mới nhất trước
func (s *Store) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+todoColumns+" FROM todos WHERE user_id = $1 ORDER BY created_at DESC", userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// GetTodo lấy một todo theo ID, chỉ khi todo thuộc về userID
func (s *Store) GetTodo(ctx context.Context, userID, id string) (models.Todo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+todoColumns+" FROM todos WHERE id = $1 AND user_id = $2", id, userID,
	)
	todo, err := scanTodo(row)
	if err != nil {
		return models.Todo{}, notFound(err)
	}
	return todo, nil
}

// CreateTodo chèn todo vào database
func (s *Store) CreateTodo(ctx context.Context, t models.Todo) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO todos ("+todoColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		t.ID, t.UserID, t.Title, t.Description, t.Completed, string(t.Priority), t.DueDate, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

// UpdateTodo ghi đè toàn bộ field có thể sửa của todo. Trả về ErrNotFound nếu todo không thuộc user.
func (s *Store) UpdateTodo(ctx context.Context, t models.Todo) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		`UPDATE todos SET title = $3, description = $4, completed = $5, priority = $6, due_date = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2`,
		t.ID, t.UserID, t.Title, t.Description, t.Completed, string(t.Priority), t.DueDate, t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// ToggleTodo đảo trạng thái completed trong một câu lệnh và trả về todo sau khi cập nhật
func (s *Store) ToggleTodo(ctx context.Context, userID, id string, now time.Time) (models.Todo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		"UPDATE todos SET completed = NOT completed, updated_at = $3 WHERE id = $1 AND user_id = $2 RETURNING "+todoColumns,
		id, userID, now,
	)
	todo, err := scanTodo(row)
	if err != nil {
		return models.Todo{}, notFound(err)
	}
	return todo, nil
}

// DeleteTodo xóa todo của user
func (s *Store) DeleteTodo(ctx context.Context, userID, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
