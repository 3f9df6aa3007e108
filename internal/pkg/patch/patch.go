// Package patch provides a typed sparse-update field. A Field distinguishes
// "absent from the payload", "explicitly null", and "set to a value", so
// partial updates never have to guess what an untouched field means.
package patch

import "encoding/json"

type Field[T any] struct {
	present bool
	null    bool
	value   T
}

// Set returns a Field carrying a concrete value.
func Set[T any](v T) Field[T] {
	return Field[T]{present: true, value: v}
}

// Null returns a Field that explicitly clears the target.
func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

func (f Field[T]) Present() bool { return f.present }
func (f Field[T]) IsNull() bool  { return f.present && f.null }

// Value reports the carried value; ok is false when the field is absent or null.
func (f Field[T]) Value() (T, bool) {
	if !f.present || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

// UnmarshalJSON is only invoked for keys present in the payload, so a Field
// that never sees it stays absent.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if string(data) == "null" {
		f.null = true
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.present || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Apply overwrites dst with the field's value when one is present; a null
// field leaves dst untouched (use ApplyPtr for nullable targets).
func Apply[T any](dst *T, f Field[T]) {
	if v, ok := f.Value(); ok {
		*dst = v
	}
}

// ApplyPtr overwrites dst for both value and explicit-null fields.
func ApplyPtr[T any](dst **T, f Field[T]) {
	if !f.Present() {
		return
	}
	if f.IsNull() {
		*dst = nil
		return
	}
	v, _ := f.Value()
	*dst = &v
}
