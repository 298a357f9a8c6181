package errors

import (
	"slices"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// ValidateDatasetName validates a dataset or chart name for safety.
// Names end up in cache keys, object-store keys and file names, so the rules
// are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateDatasetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidDataset, "dataset name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidDataset, "dataset name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "dataset name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "//", "\x00", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidDataset, "dataset name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a dataset URL. Only http and https are accepted.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateColor validates a "#rgb" or "#rrggbb" fill color.
func ValidateColor(color string) error {
	if (len(color) != 4 && len(color) != 7) || strings.ContainsFunc(color[1:], notHexDigit) {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", color)
	}
	if _, err := colorful.Hex(color); err != nil {
		return Wrap(ErrCodeInvalidColor, err, "invalid color %q (want #rgb or #rrggbb)", color)
	}
	return nil
}

func notHexDigit(r rune) bool {
	return !unicode.Is(unicode.ASCII_Hex_Digit, r)
}

// ValidateSortDirection validates a series sort direction flag value.
func ValidateSortDirection(dir string) error {
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "none", "asc", "ascending", "desc", "descending":
		return nil
	}
	return New(ErrCodeInvalidOption, "invalid sort direction %q (must be none, asc or desc)", dir)
}

// ValidateFormat validates an output format against the supported set.
func ValidateFormat(format string, supported []string) error {
	if !slices.Contains(supported, format) {
		return New(ErrCodeInvalidFormat, "invalid format %q (must be one of: %s)", format, strings.Join(supported, ", "))
	}
	return nil
}

// ValidateChartID validates a stored chart identifier (a UUID).
func ValidateChartID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid chart id %q", id)
	}
	return nil
}
