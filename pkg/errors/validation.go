package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// tourIDRegex matches identifiers safe for file names, Redis keys and Mongo ids.
var tourIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateTourID validates a tour identifier used as a checkpoint key.
//
// The rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - Only letters, digits, '.', '_' and '-', starting with a letter or digit
//   - No path traversal sequences (..)
func ValidateTourID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTourID, "tour id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidTourID, "tour id too long (max 128 characters)")
	}

	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidTourID, "tour id cannot contain path traversal sequences (..)")
	}

	if !tourIDRegex.MatchString(id) {
		return New(ErrCodeInvalidTourID, "invalid tour id: %q", id)
	}

	return nil
}

// ValidatePath validates a script path given on the command line or in an
// HTTP request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
