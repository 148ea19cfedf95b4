package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/biosecret/todo-api/models"
)

// Claims chỉ chứa ID của user cùng thời điểm phát hành và hết hạn
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenManager phát hành và xác thực JWT ký bằng HS256
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue tạo token cho userID, hết hạn sau ttl
func (m *TokenManager) Issue(userID string) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify kiểm tra chữ ký và hạn của token. Không truy cập database.
func (m *TokenManager) Verify(tokenString string) (models.UserIdentity, error) {
	if tokenString == "" {
		return models.UserIdentity{}, authError("missing token", nil)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return models.UserIdentity{}, authError("invalid or expired token", err)
	}
	if !token.Valid || claims.UserID == "" {
		return models.UserIdentity{}, authError("invalid or expired token", errors.New("token carries no user id"))
	}
	return models.UserIdentity{UserID: claims.UserID}, nil
}
