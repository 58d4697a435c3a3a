// Package optional описывает поле частичного обновления с тремя состояниями:
// не передано, передан null, передано значение.
package optional

import (
	"bytes"
	"encoding/json"
)

type Value[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, Value: v}
}

func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

// Present - передано не-null значение.
func (v Value[T]) Present() bool {
	return v.Set && !v.Null
}

// Ptr - указатель на значение или nil, если его нет.
func (v Value[T]) Ptr() *T {
	if !v.Present() {
		return nil
	}
	out := v.Value
	return &out
}

// UnmarshalJSON вызывается только для ключей, которые есть в теле запроса,
// поэтому отсутствующее поле остаётся с Set=false.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		v.Null = true
		v.Value = zero
		return nil
	}
	v.Null = false
	return json.Unmarshal(data, &v.Value)
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}
