package ptr

// Ptr returns a pointer to the given value.
// Convenient for passing optional parameters built from literals.
func Ptr[T any](v T) *T {
	return &v
}
