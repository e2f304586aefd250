// Package ptr provides a small helper for taking pointers to values.
package ptr

// Ptr returns a pointer to the given value
func Ptr[T any](v T) *T {
	return &v
}
