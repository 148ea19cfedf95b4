package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/biosecret/todo-api/database"
	"github.com/biosecret/todo-api/models"
)

// memStore thay thế PostgreSQL trong test end-to-end
type memStore struct {
	mu    sync.Mutex
	users []models.User
	todos map[string]models.Todo
	seq   int
}

func newMemStore() *memStore {
	return &memStore{todos: map[string]models.Todo{}}
}

func (m *memStore) Ping(context.Context) error { return nil }

func (m *memStore) UserExists(_ context.Context, email, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateUser(ctx context.Context, u models.User) error {
	if exists, _ := m.UserExists(ctx, u.Email, u.Username); exists {
		return database.ErrDuplicate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, u)
	return nil
}

func (m *memStore) findUser(match func(models.User) bool) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, database.ErrNotFound
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Email == email })
}

func (m *memStore) GetUserByID(_ context.Context, id string) (models.User, error) {
	return m.findUser(func(u models.User) bool { return u.ID == id })
}

func (m *memStore) ListTodos(_ context.Context, userID string) ([]models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	todos := []models.Todo{}
	for _, t := range m.todos {
		if t.UserID == userID {
			todos = append(todos, t)
		}
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].CreatedAt.After(todos[j].CreatedAt) })
	return todos, nil
}

func (m *memStore) GetTodo(_ context.Context, userID, id string) (models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[id]
	if !ok || t.UserID != userID {
		return models.Todo{}, database.ErrNotFound
	}
	return t, nil
}

func (m *memStore) CreateTodo(_ context.Context, t models.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// created_at tăng dần để thứ tự danh sách không phụ thuộc độ phân giải đồng hồ
	m.seq++
	t.CreatedAt = t.CreatedAt.Add(time.Duration(m.seq) * time.Millisecond)
	m.todos[t.ID] = t
	return nil
}

func (m *memStore) UpdateTodo(_ context.Context, t models.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.todos[t.ID]
	if !ok || existing.UserID != t.UserID {
		return database.ErrNotFound
	}
	m.todos[t.ID] = t
	return nil
}

func (m *memStore) ToggleTodo(_ context.Context, userID, id string, now time.Time) (models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[id]
	if !ok || t.UserID != userID {
		return models.Todo{}, database.ErrNotFound
	}
	t.Completed = !t.Completed
	t.UpdatedAt = now
	m.todos[id] = t
	return t, nil
}

func (m *memStore) DeleteTodo(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[id]
	if !ok || t.UserID != userID {
		return database.ErrNotFound
	}
	delete(m.todos, id)
	return nil
}
