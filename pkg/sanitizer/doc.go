// Package sanitizer holds small pure string transforms for untrusted input:
// query parameters, form fields and uploaded file names.
//
// Transforms are plain functions, so they compose with Apply and Compose:
//
//	clean := sanitizer.Apply(raw,
//		sanitizer.Trim,
//		func(s string) string { return sanitizer.KeepChars(s, sanitizer.AlnumOr("-_")) },
//	)
//
// Character classes work on bytes, not runes. Any non-ASCII byte falls outside
// an AlnumOr class.
package sanitizer
