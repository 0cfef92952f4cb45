package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// diagramNameRegex matches the names the document store accepts. Names are
// used as storage keys and in URLs, so the set is intentionally small.
var diagramNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateDiagramName validates a stored diagram's name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateDiagramName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "diagram name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "diagram name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "diagram name contains control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "diagram name cannot contain path components")
	}

	if !diagramNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid diagram name: %q", name)
	}

	return nil
}

// ValidateManifestFilename validates a sync-manifest filename.
// It ensures the filename is a simple basename without path components.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "manifest filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidInput, "manifest filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidInput, "manifest filename cannot be a hidden file")
	}

	return nil
}
