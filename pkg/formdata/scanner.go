package formdata

import (
	"bytes"
	"iter"
)

// Span is a half-open byte range [Start, End) of one part inside a body.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

var closeDelimiter = []byte("--")

// Scan yields the span of every part delimited by marker in body, in document order.
// A part runs from just after one marker occurrence to the start of the next one.
// Scanning stops at a marker followed by "--" (the close delimiter), so the epilogue never
// becomes a part. A body with fewer than two markers yields nothing.
//
// The sequence is lazy and single pass; body is never copied or decoded as text.
func Scan(body, marker []byte) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		if len(marker) == 0 {
			return
		}

		first := bytes.Index(body, marker)
		if first < 0 {
			return
		}
		pos := first + len(marker)

		for pos <= len(body) {
			if bytes.HasPrefix(body[pos:], closeDelimiter) {
				return
			}
			next := bytes.Index(body[pos:], marker)
			if next < 0 {
				return
			}
			if !yield(Span{Start: pos, End: pos + next}) {
				return
			}
			pos += next + len(marker)
		}
	}
}
