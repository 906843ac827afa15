// Package utils provides utility functions for the application.
package utils

func ToPtr[T any](v T) *T {
	return &v
}

// IsTrueOrNil treats a nil flag as consent. Used for options that default on.
func IsTrueOrNil(b *bool) bool {
	return b == nil || *b
}
