package helpers

// Ptr returns a pointer to the provided value.
func Ptr[T any](val T) *T {
	return &val
}

// Value returns the dereferenced value or the zero value if nil.
func Value[T any](val *T) T {
	var zero T
	return ValueOr(val, zero)
}

// ValueOr returns the dereferenced value or the provided default if nil.
// Partial updates use it to merge optional fields over current values.
func ValueOr[T any](val *T, fallback T) T {
	if val == nil {
		return fallback
	}
	return *val
}
