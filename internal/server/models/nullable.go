package models

import (
	"bytes"
	"encoding/json"
)

// Nullable is a partial-update field that tells an absent value apart from
// an explicit null. Set is true once the field appeared in the input; Value
// is nil when that input was null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// NullableOf returns a set field holding v.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a set field holding null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// ValueOrNil returns the held value, or nil when absent or null.
func (n Nullable[T]) ValueOrNil() any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}
