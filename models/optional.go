package models

import (
	"bytes"
	"encoding/json"
)

// Optional ghi nhận một field JSON có xuất hiện trong body hay không.
// Set là true khi key có mặt, kể cả khi giá trị là null (khi đó Null cũng là true).
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some tạo một Optional đã có giá trị
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
