package errors

import (
	"strings"
	"unicode"
)

// ValidateSnapshotName validates a snapshot name for safety and
// correctness. Names end up in file paths and database keys, so the
// rules are intentionally conservative:
//
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - No leading dots (hidden files)
//   - Maximum length of 128 characters
func ValidateSnapshotName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "snapshot name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "snapshot name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "snapshot name contains control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "snapshot name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "snapshot name cannot contain traversal sequences (..)")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidName, "snapshot name cannot start with a dot")
	}

	return nil
}

// ValidateVertexQuery validates a vertex selector given on the command
// line or in an API request. Selectors are matched against vertex ids
// and labels, so the only hard rules are non-emptiness, a sane length
// and the absence of control characters.
func ValidateVertexQuery(query string) error {
	if query == "" {
		return New(ErrCodeInvalidInput, "vertex selector cannot be empty")
	}

	if len(query) > 256 {
		return New(ErrCodeInvalidInput, "vertex selector too long (max 256 characters)")
	}

	for _, r := range query {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "vertex selector contains control characters")
		}
	}

	return nil
}
