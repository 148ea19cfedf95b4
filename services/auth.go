package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/biosecret/todo-api/database"
	"github.com/biosecret/todo-api/models"
	"github.com/biosecret/todo-api/utils"
)

// UserStore là phần của database.Store mà AuthService cần
type UserStore interface {
	UserExists(ctx context.Context, email, username string) (bool, error)
	CreateUser(ctx context.Context, u models.User) error
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// AuthService xử lý đăng ký, đăng nhập và xác thực token
type AuthService struct {
	users  UserStore
	tokens *TokenManager
	cost   int
	now    func() time.Time

	// so sánh với hash giả khi email không tồn tại để thời gian phản hồi như nhau
	dummyHash []byte
}

func NewAuthService(users UserStore, tokens *TokenManager, bcryptCost int) (*AuthService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), bcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:     users,
		tokens:    tokens,
		cost:      bcryptCost,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register tạo user mới và trả về token
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (models.AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return models.AuthResult{}, validationError("username, email and password are required")
	}

	exists, err := s.users.UserExists(ctx, email, username)
	if err != nil {
		return models.AuthResult{}, internalError("check existing user", err)
	}
	if exists {
		return models.AuthResult{}, conflictError()
	}

	// Hash mật khẩu
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return models.AuthResult{}, validationError("password must be at most 72 bytes")
		}
		return models.AuthResult{}, internalError("hash password", err)
	}

	user := models.User{
		ID:           utils.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// hai request đăng ký cùng lúc: ràng buộc UNIQUE chặn request thứ hai
		if errors.Is(err, database.ErrDuplicate) {
			return models.AuthResult{}, conflictError()
		}
		return models.AuthResult{}, internalError("create user", err)
	}

	return s.result(user)
}

// Login kiểm tra email/mật khẩu. Email sai và mật khẩu sai trả về cùng một lỗi.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (models.AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return models.AuthResult{}, validationError("email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
		return models.AuthResult{}, authError(msgInvalidCredentials, nil)
	}
	if err != nil {
		return models.AuthResult{}, internalError("find user", err)
	}

	// So khớp mật khẩu
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return models.AuthResult{}, authError(msgInvalidCredentials, nil)
	}

	return s.result(user)
}

// Verify xác thực bearer token và trả về danh tính của user
func (s *AuthService) Verify(token string) (models.UserIdentity, error) {
	return s.tokens.Verify(token)
}

// Profile trả về thông tin user đang đăng nhập
func (s *AuthService) Profile(ctx context.Context, id models.UserIdentity) (models.User, error) {
	user, err := s.users.GetUserByID(ctx, id.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return models.User{}, authError("user no longer exists", err)
	}
	if err != nil {
		return models.User{}, internalError("load profile", err)
	}
	return user, nil
}

func (s *AuthService) result(user models.User) (models.AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.AuthResult{}, internalError("issue token", err)
	}
	return models.AuthResult{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}, nil
}
