package utils

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyFilename is returned when nothing usable survives sanitizing.
	ErrEmptyFilename = errors.New("filename is empty after sanitizing")

	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._ -]`)
)

// SanitizeFilename reduces an uploaded filename to a safe display name.
// Any path information (forward or backward slashes) is stripped, reserved
// characters are replaced, and names that collapse to nothing or to dot
// sequences are rejected. The result is display metadata only; files on
// disk are keyed by a generated storage key, never by this name.
func SanitizeFilename(name string) (string, error) {
	// Take the last path segment regardless of separator style.
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}

	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " ")

	if name == "" || strings.Trim(name, "._") == "" {
		return "", ErrEmptyFilename
	}

	return name, nil
}
