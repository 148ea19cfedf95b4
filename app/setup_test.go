package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/biosecret/todo-api/config"
	"github.com/biosecret/todo-api/events"
)

func testConfig() config.Config {
	return config.Config{
		Port:       5000,
		JWTSecret:  "test-secret",
		JWTExpire:  config.Expiry(time.Hour),
		BcryptCost: bcrypt.MinCost,
	}
}

func newTestApp(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()
	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	app, err := NewApp(cfg, logger, newMemStore(), events.Nop{})
	require.NoError(t, err)
	return app
}

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func (c apiClient) do(method, path, token string, body any) (int, []byte) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		var raw []byte
		if s, ok := body.(string); ok {
			raw = []byte(s)
		} else {
			var err error
			raw, err = json.Marshal(body)
			require.NoError(c.t, err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, out
}

func (c apiClient) register(username, email, password string) map[string]any {
	c.t.Helper()
	status, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username, "email": email, "password": password,
	})
	require.Equal(c.t, http.StatusCreated, status, string(body))
	return decode(c.t, body)
}

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m), string(body))
	return m
}

func TestTodoLifecycle(t *testing.T) {
	c := apiClient{t: t, app: newTestApp(t, testConfig())}

	user := c.register("al", "a@x.com", "pw")
	token := user["token"].(string)
	assert.Equal(t, "al", user["username"])
	assert.Equal(t, "a@x.com", user["email"])

	status, body := c.do(http.MethodGet, "/api/todos", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, body = c.do(http.MethodPost, "/api/todos", token, map[string]string{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, status, string(body))
	todo := decode(t, body)
	assert.Equal(t, "Buy milk", todo["title"])
	assert.Equal(t, false, todo["completed"])
	assert.Equal(t, "medium", todo["priority"])
	assert.Equal(t, "", todo["description"])
	assert.Nil(t, todo["dueDate"])
	id := todo["id"].(string)

	status, body = c.do(http.MethodPatch, "/api/todos/"+id+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, decode(t, body)["completed"])

	status, body = c.do(http.MethodPatch, "/api/todos/"+id+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, decode(t, body)["completed"])

	status, body = c.do(http.MethodGet, "/api/todos/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, decode(t, body)["id"])

	status, body = c.do(http.MethodDelete, "/api/todos/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Todo removed"}`, string(body))

	status, body = c.do(http.MethodGet, "/api/todos/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"message":"Todo not found"}`, string(body))
}

func TestPartialUpdateOverHTTP(t *testing.T) {
	c := apiClient{t: t, app: newTestApp(t, testConfig())}
	token := c.register("al", "a@x.com", "pw")["token"].(string)

	status, body := c.do(http.MethodPost, "/api/todos", token,
		`{"title":"Buy milk","description":"2 litres","priority":"high","dueDate":"2026-02-15T14:30:00Z"}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	id := decode(t, body)["id"].(string)

	status, body = c.do(http.MethodPut, "/api/todos/"+id, token, `{}`)
	require.Equal(t, http.StatusOK, status)
	same := decode(t, body)
	assert.Equal(t, "2 litres", same["description"])
	assert.Equal(t, "2026-02-15T14:30:00Z", same["dueDate"])

	status, body = c.do(http.MethodPut, "/api/todos/"+id, token, `{"description":"","completed":true}`)
	require.Equal(t, http.StatusOK, status)
	updated := decode(t, body)
	assert.Equal(t, "", updated["description"])
	assert.Equal(t, true, updated["completed"])
	assert.Equal(t, "Buy milk", updated["title"])
	assert.Equal(t, "high", updated["priority"])

	status, _ = c.do(http.MethodPut, "/api/todos/"+id, token, `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = c.do(http.MethodPut, "/api/todos/"+id, token, `{"dueDate":null}`)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, decode(t, body)["dueDate"])
}

func TestOwnershipIsolation(t *testing.T) {
	c := apiClient{t: t, app: newTestApp(t, testConfig())}
	alice := c.register("alice", "alice@x.com", "pw")["token"].(string)
	bob := c.register("bob", "bob@x.com", "pw")["token"].(string)

	status, body := c.do(http.MethodPost, "/api/todos", alice, `{"title":"alice only","userId":"someone-else"}`)
	require.Equal(t, http.StatusCreated, status)
	id := decode(t, body)["id"].(string)

	status, body = c.do(http.MethodGet, "/api/todos", bob, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	for _, req := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/todos/" + id, ""},
		{http.MethodPut, "/api/todos/" + id, `{"title":"mine now"}`},
		{http.MethodPatch, "/api/todos/" + id + "/toggle", ""},
		{http.MethodDelete, "/api/todos/" + id, ""},
	} {
		var payload any
		if req.body != "" {
			payload = req.body
		}
		status, body := c.do(req.method, req.path, bob, payload)
		assert.Equal(t, http.StatusNotFound, status, req.method+" "+req.path)
		assert.JSONEq(t, `{"message":"Todo not found"}`, string(body))
	}

	status, body = c.do(http.MethodGet, "/api/todos/"+id, alice, nil)
	require.Equal(t, http.StatusOK, status)
	todo := decode(t, body)
	assert.Equal(t, "alice only", todo["title"])
	assert.Equal(t, false, todo["completed"])
	assert.NotEqual(t, "someone-else", todo["userId"])
}

func TestListNewestFirst(t *testing.T) {
	c := apiClient{t: t, app: newTestApp(t, testConfig())}
	token := c.register("al", "a@x.com", "pw")["token"].(string)

	for _, title := range []string{"one", "two", "three"} {
		status, _ := c.do(http.MethodPost, "/api/todos", token, map[string]string{"title": title})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := c.do(http.MethodGet, "/api/todos", token, nil)
	require.Equal(t, http.StatusOK, status)
	var todos []map[string]any
	require.NoError(t, json.Unmarshal(body, &todos))
	require.Len(t, todos, 3)
	assert.Equal(t, "three", todos[0]["title"])
	assert.Equal(t, "one", todos[2]["title"])
}

func TestAuthFlows(t *testing.T) {
	c := apiClient{t: t, app: newTestApp(t, testConfig())}
	c.register("al", "a@x.com", "pw")

	status, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "al", "email": "new@x.com", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"User already exists with this email or username"}`, string(body))

	status, body = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "pw"})
	require.Equal(t, http.StatusOK, status)
	token := decode(t, body)["token"].(string)

	_, unknown := c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nobody@x.com", "password": "pw"})
	status, wrong := c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, string(unknown), string(wrong))

	status, body = c.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode(t, body)
	assert.Equal(t, "al", me["username"])
	assert.NotContains(t, me, "password")
	assert.NotContains(t, me, "passwordHash")
	assert.False(t, strings.Contains(string(body), "$2a$"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	c := apiClient{t: t, app: newTestApp(t, testConfig())}

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/todos"},
		{http.MethodPost, "/api/todos"},
		{http.MethodGet, "/api/todos/abc"},
		{http.MethodPut, "/api/todos/abc"},
		{http.MethodPatch, "/api/todos/abc/toggle"},
		{http.MethodDelete, "/api/todos/abc"},
	} {
		status, _ := c.do(req.method, req.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, req.method+" "+req.path)
	}

	status, _ := c.do(http.MethodGet, "/api/todos", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRateLimit = 0.001
	cfg.AuthRateBurst = 1
	c := apiClient{t: t, app: newTestApp(t, cfg)}

	login := map[string]string{"email": "a@x.com", "password": "pw"}
	status, _ := c.do(http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := c.do(http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.JSONEq(t, `{"message":"Too many requests"}`, string(body))
}

func TestHealthAndMetrics(t *testing.T) {
	c := apiClient{t: t, app: newTestApp(t, testConfig())}

	status, body := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", decode(t, body)["status"])

	status, body = c.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `todo_api_http_requests_total{method="GET",path="/health",status="200"}`)
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	c := apiClient{t: t, app: newTestApp(t, testConfig())}

	status, body := c.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, decode(t, body), "message")
}
