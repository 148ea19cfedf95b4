package database

import (
	"context"

	"github.com/biosecret/todo-api/models"
)

// UserExists kiểm tra đã có user nào trùng email hoặc username chưa
func (s *Store) UserExists(ctx context.Context, email, username string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR username = $2)", email, username,
	).Scan(&exists)
	return exists, err
}

// CreateUser lưu user mới. Trả về ErrDuplicate nếu email hoặc username đã tồn tại.
func (s *Store) CreateUser(ctx context.Context, u models.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)",
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.getUser(ctx, "email", email)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (models.User, error) {
	return s.getUser(ctx, "id", id)
}

// column chỉ nhận giá trị hằng từ trong package
func (s *Store) getUser(ctx context.Context, column, value string) (models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, created_at FROM users WHERE "+column+" = $1", value,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return models.User{}, notFound(err)
	}
	return u, nil
}
