package formdata

import (
	"bytes"
	"encoding/base64"
	"log/slog"
	"strings"
)

var (
	crlf            = []byte("\r\n")
	headerSeparator = []byte("\r\n\r\n")
)

// RawBody undoes the transport encoding of a request body. API gateways deliver binary
// payloads base64 encoded and flag them; plain bodies are used byte for byte.
func RawBody(body string, base64Encoded bool) ([]byte, error) {
	if !base64Encoded {
		return []byte(body), nil
	}
	b, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	return b, nil
}

// Decode parses a multipart/form-data body.
//
// The boundary is taken from contentType. Parts without a header/body separator or without
// a name are skipped and counted; the body is rejected with ErrNoParts only when no part is
// well formed. Decode never validates business rules: a missing field is simply absent from
// the result.
//
// Example:
//
//	form, err := formdata.Decode(body, r.Header.Get("Content-Type"),
//		formdata.WithFileField("reviewedPdf"),
//	)
//	if errors.Is(err, formdata.ErrMalformedBody) {
//		// 400
//	}
//	pdf, ok := form.Upload()
func Decode(body []byte, contentType string, opts ...Option) (*Form, error) {
	o := newOptions(opts)

	boundary, err := Boundary(contentType)
	if err != nil {
		return nil, err
	}
	marker := []byte("--" + boundary)

	form := newForm(o.fileField)
	wellFormed := 0

	for span := range Scan(body, marker) {
		header, content, ok := splitPart(body[span.Start:span.End])
		if !ok {
			form.Skipped++
			o.logger.Debug("skipping multipart part without header separator",
				slog.Int("offset", span.Start),
				slog.Int("size", span.Len()),
			)
			continue
		}
		wellFormed++
		form.add(header, content, o)
	}

	if wellFormed == 0 {
		return nil, ErrNoParts
	}
	return form, nil
}

// splitPart trims exactly one leading and one trailing CRLF and splits the chunk at the
// first blank line.
func splitPart(chunk []byte) (partHeader, []byte, bool) {
	chunk = bytes.TrimPrefix(chunk, crlf)
	chunk = bytes.TrimSuffix(chunk, crlf)

	i := bytes.Index(chunk, headerSeparator)
	if i < 0 {
		return partHeader{}, nil, false
	}
	return parsePartHeader(string(chunk[:i])), chunk[i+len(headerSeparator):], true
}

func (f *Form) add(h partHeader, content []byte, o options) {
	d := parseDisposition(h.disposition)
	if !d.hasName || d.name == "" {
		f.Skipped++
		return
	}

	if d.hasFilename && d.name == f.FileField {
		if existing, ok := f.Fields[d.name]; ok && existing.IsFile {
			f.Duplicates++
			o.logger.Warn("ignoring repeated file upload",
				slog.String("field", d.name),
				slog.String("filename", d.filename),
				slog.String("kept", existing.Filename),
			)
			return
		}
		f.Filename = d.filename
		f.Fields[d.name] = Field{
			Name:        d.name,
			Filename:    d.filename,
			ContentType: h.contentType,
			Content:     content,
			IsFile:      true,
		}
		return
	}

	if existing, ok := f.Fields[d.name]; ok && existing.IsFile {
		f.Duplicates++
		o.logger.Warn("ignoring text part that shadows a file upload", slog.String("field", d.name))
		return
	}

	f.Fields[d.name] = Field{
		Name:        d.name,
		Filename:    d.filename,
		ContentType: h.contentType,
		Content:     content,
		Value:       strings.TrimSpace(decodeText(content, h.contentType)),
	}
}
