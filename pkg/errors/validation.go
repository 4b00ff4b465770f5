package errors

import (
	"strings"
	"unicode"
)

// maxFileNameLength bounds project names; they end up in exported file names.
const maxFileNameLength = 128

// ValidateFileName validates a project file name for safety.
// The name is used as the stem of exported shape and project files, so it
// must be a simple basename:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFileName, "file name cannot be empty")
	}

	if len(name) > maxFileNameLength {
		return New(ErrCodeInvalidFileName, "file name too long (max %d characters)", maxFileNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFileName, "file name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidFileName, "file name cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidFileName, "file name cannot be %q", name)
	}

	return nil
}

// ValidateBoard validates board dimensions. Every dimension must be positive;
// the board does not otherwise restrict which cells can be painted.
func ValidateBoard(width, height, tileSize int) error {
	if width <= 0 {
		return New(ErrCodeInvalidBoard, "board width must be positive, got %d", width)
	}
	if height <= 0 {
		return New(ErrCodeInvalidBoard, "board height must be positive, got %d", height)
	}
	if tileSize <= 0 {
		return New(ErrCodeInvalidBoard, "tile size must be positive, got %d", tileSize)
	}
	return nil
}
