package sanitizer

import "strings"

var filenameChars = AlnumOr(".-")

// SecureFilename maps name onto [A-Za-z0-9.-], replacing everything else with '_'.
// Path separators are replaced too, so the result is always a single key segment.
// fallback is returned when name is empty or would reduce to dots only.
func SecureFilename(name, fallback string) string {
	if name == "" {
		return fallback
	}

	safe := ReplaceOutside(name, filenameChars, '_')
	if strings.Trim(safe, ".") == "" {
		return fallback
	}
	return safe
}
