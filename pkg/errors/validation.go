package errors

import (
	"math"
	"regexp"
	"unicode"
)

// maxNameLength bounds block and group names.
const maxNameLength = 512

// ValidateBlockName validates a block or group display name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 512 bytes
func ValidateBlockName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidScene, "block name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidScene, "block name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "block name contains invalid control characters")
		}
	}
	return nil
}

// ValidateDimension checks that a size or spacing value is finite and not
// negative. field names the value in the error message.
func ValidateDimension(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite", field)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative (got %g)", field, v)
	}
	return nil
}

// layoutIDRegex matches stored layout identifiers (hex digests).
var layoutIDRegex = regexp.MustCompile(`^[a-f0-9]{16,64}$`)

// ValidateLayoutID validates a stored layout identifier.
func ValidateLayoutID(id string) error {
	if !layoutIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid layout id: %q", id)
	}
	return nil
}
