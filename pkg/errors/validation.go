package errors

import (
	"slices"
	"strings"
)

// ValidateFormats checks each requested output format against the allowed set.
// Format names are case-sensitive and must not be empty.
func ValidateFormats(formats []string, allowed []string) error {
	for _, f := range formats {
		if f == "" {
			return New(ErrCodeInvalidFormat, "empty output format")
		}
		if !slices.Contains(allowed, f) {
			return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", f, strings.Join(allowed, ", "))
		}
	}
	return nil
}
