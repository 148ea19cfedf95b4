package services

import (
	"errors"
	"fmt"
)

// Kind phân loại lỗi để tầng HTTP chọn status code
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuth
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error là lỗi trả về từ các service. Message an toàn để gửi cho client, Err thì không.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf trả về Kind của err, lỗi không thuộc Error được xem là KindInternal
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

const (
	msgInvalidCredentials = "Invalid credentials"
	msgUserExists         = "User already exists with this email or username"
	msgTodoNotFound       = "Todo not found"
)

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func authError(msg string, err error) error {
	return &Error{Kind: KindAuth, Message: msg, Err: err}
}

func conflictError() error {
	return &Error{Kind: KindConflict, Message: msgUserExists}
}

func todoNotFound() error {
	return &Error{Kind: KindNotFound, Message: msgTodoNotFound}
}

func internalError(op string, err error) error {
	return &Error{Kind: KindInternal, Message: "Server error", Err: fmt.Errorf("%s: %w", op, err)}
}
