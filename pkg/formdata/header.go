package formdata

import (
	"mime"
	"regexp"
	"strings"
)

const (
	headerContentDisposition = "Content-Disposition"
	headerContentType        = "Content-Type"
)

var boundaryPattern = regexp.MustCompile(`(?i)boundary=([^;]+)`)

// IsMultipart reports whether contentType declares multipart/form-data.
func IsMultipart(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "multipart/form-data")
	}
	return mediaType == "multipart/form-data"
}

// Boundary extracts the boundary parameter from a Content-Type header value.
// Headers that mime.ParseMediaType rejects are matched leniently, the way browsers and
// hand-written clients tend to format them.
func Boundary(contentType string) (string, error) {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if b := params["boundary"]; b != "" {
			return b, nil
		}
		return "", ErrInvalidBoundary
	}

	m := boundaryPattern.FindStringSubmatch(contentType)
	if m == nil {
		return "", ErrInvalidBoundary
	}
	b := strings.Trim(strings.TrimSpace(m[1]), `"`)
	if b == "" {
		return "", ErrInvalidBoundary
	}
	return b, nil
}

// partHeader holds the few header values the decoder cares about.
type partHeader struct {
	disposition string
	contentType string
}

// parsePartHeader reads CRLF separated "Key: value" lines. Names are case-insensitive,
// empty lines are ignored and the first occurrence of a header wins.
func parsePartHeader(block string) partHeader {
	var h partHeader
	for line := range strings.SplitSeq(block, "\r\n") {
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch {
		case strings.EqualFold(key, headerContentDisposition) && h.disposition == "":
			h.disposition = value
		case strings.EqualFold(key, headerContentType) && h.contentType == "":
			h.contentType = value
		}
	}
	return h
}

// descriptor is the name/filename pair carried by a Content-Disposition header.
// The has* flags separate an absent attribute from an empty quoted one.
type descriptor struct {
	name        string
	filename    string
	hasName     bool
	hasFilename bool
}

var (
	namePattern     = regexp.MustCompile(`(?i)(?:^|;)\s*name\s*=\s*(?:"([^"]*)"|([^;\s]*))`)
	filenamePattern = regexp.MustCompile(`(?i)(?:^|;)\s*filename\s*=\s*(?:"([^"]*)"|([^;\s]*))`)
)

// parseDisposition reads name and filename. A disposition that parses as a media type has
// quoted values unescaped (a backslash before '"' or '\\' is dropped, other backslashes
// stay); the regex fallback keeps quoted bytes literally.
func parseDisposition(value string) descriptor {
	var d descriptor
	if value == "" {
		return d
	}

	if _, params, err := mime.ParseMediaType(value); err == nil {
		d.name, d.hasName = params["name"]
		d.filename, d.hasFilename = params["filename"]
		return d
	}

	d.name, d.hasName = matchAttr(namePattern, value)
	d.filename, d.hasFilename = matchAttr(filenamePattern, value)
	return d
}

func matchAttr(re *regexp.Regexp, value string) (string, bool) {
	m := re.FindStringSubmatch(value)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}
