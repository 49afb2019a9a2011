package models

// Field holds one model attribute as it appeared in the source record:
// absent (Present is false), null (Present but not Valid), or a value.
type Field[T any] struct {
	V       T
	Valid   bool
	Present bool
}

// Set returns a Field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{V: v, Valid: true, Present: true}
}

// Null returns a Field that was present with a null value.
func Null[T any]() Field[T] {
	return Field[T]{Present: true}
}

// Get returns the value and whether there is one.
func (f Field[T]) Get() (T, bool) {
	return f.V, f.Valid
}

// OrZero returns the value, or T's zero value when absent or null.
func (f Field[T]) OrZero() T {
	if !f.Valid {
		var zero T
		return zero
	}
	return f.V
}

func (f Field[T]) IsNull() bool {
	return f.Present && !f.Valid
}

func (f Field[T]) IsAbsent() bool {
	return !f.Present
}
