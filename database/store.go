package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound được trả về khi không có bản ghi thỏa điều kiện (kể cả khi bản ghi thuộc user khác)
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate được trả về khi vi phạm ràng buộc UNIQUE
	ErrDuplicate = errors.New("duplicate record")
)

const uniqueViolation = "23505"

// Store thực hiện truy vấn users và todos trên PostgreSQL
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

// New tạo Store từ database handle. timeout <= 0 nghĩa là không giới hạn thời gian mỗi câu lệnh.
func New(db *sql.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

// Ping kiểm tra database còn kết nối được không
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
