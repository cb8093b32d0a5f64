// Package pointer provides small helpers for working with pointers to values.
package pointer

// From returns a pointer to the provided value.
func From[T any](t T) *T {
	return &t
}

// ValueOrZero dereferences v, returning the zero value for nil pointers.
func ValueOrZero[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}

	return *v
}
