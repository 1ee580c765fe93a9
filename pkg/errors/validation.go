package errors

import (
	"unicode"
)

// maxPathLength bounds the length of user-supplied file paths.
const maxPathLength = 4096

// ValidatePath checks a user-supplied input or output path.
// An empty path is valid (callers substitute a default). Paths containing
// NUL or other control characters, or exceeding maxPathLength, are rejected
// with ErrCodeConfigurationError.
func ValidatePath(flag, path string) error {
	if len(path) > maxPathLength {
		return New(ErrCodeConfigurationError, "%s: path too long (max %d characters)", flag, maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeConfigurationError, "%s: path contains invalid characters", flag)
		}
	}

	return nil
}
