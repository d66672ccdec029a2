// Package optional distinguishes a JSON field that was omitted from one that
// was explicitly set to null. encoding/json never calls UnmarshalJSON for
// absent fields, which is what makes the distinction observable.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value wraps a field that may be omitted, null, or set.
type Value[T any] struct {
	set bool
	val *T
}

// Of returns a set, non-null Value.
func Of[T any](v T) Value[T] {
	return Value[T]{set: true, val: &v}
}

// Null returns a set Value carrying an explicit null.
func Null[T any]() Value[T] {
	return Value[T]{set: true}
}

// IsSet reports whether the field appeared in the payload at all.
func (v Value[T]) IsSet() bool {
	return v.set
}

// IsNull reports whether the field was explicitly null.
func (v Value[T]) IsNull() bool {
	return v.set && v.val == nil
}

// Get returns the value and whether it was set and non-null.
func (v Value[T]) Get() (T, bool) {
	if v.val == nil {
		var zero T
		return zero, false
	}
	return *v.val, true
}

// Ptr returns the value as a pointer, nil when omitted or null.
func (v Value[T]) Ptr() *T {
	if v.val == nil {
		return nil
	}
	out := *v.val
	return &out
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.set = true
	if bytes.Equal(data, []byte("null")) {
		v.val = nil
		return nil
	}
	var parsed T
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	v.val = &parsed
	return nil
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.val == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*v.val)
}
