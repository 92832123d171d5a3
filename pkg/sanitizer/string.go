package sanitizer

import "strings"

// ByteClass reports whether a byte is allowed.
type ByteClass func(c byte) bool

// AlnumOr allows ASCII letters, digits, and any byte in extra.
func AlnumOr(extra string) ByteClass {
	return func(c byte) bool {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			return true
		}
		return strings.IndexByte(extra, c) >= 0
	}
}

func Trim(s string) string {
	return strings.TrimSpace(s)
}

// KeepChars drops every byte not in allowed.
// Multi-byte UTF-8 sequences are dropped whole unless allowed accepts each of their bytes.
func KeepChars(s string, allowed ByteClass) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if allowed(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// ReplaceOutside replaces every byte not in allowed with repl.
// A multi-byte character therefore becomes one repl per byte.
func ReplaceOutside(s string, allowed ByteClass, repl byte) string {
	b := []byte(s)
	for i, c := range b {
		if !allowed(c) {
			b[i] = repl
		}
	}
	return string(b)
}

// MaxLength truncates s to at most maxLen runes.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	n := 0
	for i := range s {
		if n == maxLen {
			return s[:i]
		}
		n++
	}
	return s
}
