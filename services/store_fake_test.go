package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/biosecret/todo-api/database"
	"github.com/biosecret/todo-api/models"
)

// memStore giả lập database.Store trong bộ nhớ
type memStore struct {
	mu    sync.Mutex
	users map[string]models.User
	todos map[string]models.Todo

	updates int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]models.User{}, todos: map[string]models.Todo{}}
}

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

func (m *memStore) CreateUser(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return database.ErrDuplicate
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, database.ErrNotFound
}

func (m *memStore) GetUserByID(_ context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, database.ErrNotFound
	}
	return u, nil
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
	m.updates++
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

type recordingPublisher struct {
	events []models.TodoEvent
}

func (p *recordingPublisher) PublishTodoEvent(ev models.TodoEvent) {
	p.events = append(p.events, ev)
}

// clock trả về thời gian tăng dần mỗi lần gọi để thứ tự created_at ổn định
func clock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}
