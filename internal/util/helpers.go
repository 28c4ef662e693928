package util

import "cmp"

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Clamp limits value to [lo, hi].
func Clamp[T cmp.Ordered](value, lo, hi T) T {
	return max(lo, min(value, hi))
}
