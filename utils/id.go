package utils

import "github.com/google/uuid"

// NewID tạo ID ngẫu nhiên dạng UUID v4 cho user và todo
func NewID() string {
	return uuid.NewString()
}

// ValidID kiểm tra ID từ URL có đúng định dạng UUID không
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}
