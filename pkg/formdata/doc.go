// Package formdata decodes multipart/form-data request bodies held fully in memory.
//
// It is built for upload endpoints that receive a whole request body at once (for example
// from an API gateway event) and need the text fields plus one uploaded file out of it.
// Unlike mime/multipart it never fails a whole request because of one stray part, and the
// field expected to carry the upload is a per-call option.
//
// # Architecture
//
// Decoding runs in two steps over the same immutable byte slice:
//
//   - Scan locates the "--boundary" markers and yields the span of each part. It works on
//     raw bytes only, so binary file content is never passed through a text decoder.
//   - Each span is trimmed of one leading and one trailing CRLF and split at the first
//     blank line. Only the header block is read as text; the body stays a []byte.
//
// A part is a file when its Content-Disposition carries a filename and its name equals the
// configured file field. Other named parts are text fields whose value is decoded (UTF-8 or
// the part's declared charset) and trimmed.
//
// # Usage
//
//	body, err := formdata.RawBody(event.Body, event.IsBase64Encoded)
//	if err != nil {
//		return badRequest(err)
//	}
//
//	form, err := formdata.Decode(body, contentType, formdata.WithFileField("reviewedPdf"))
//	if err != nil {
//		return badRequest(err) // errors.Is(err, formdata.ErrMalformedBody)
//	}
//
//	doctorID := form.Value("doctorId")
//	pdf, ok := form.Upload()
//
// # Leniency
//
// Parts without a header separator or without a name are skipped and counted in
// Form.Skipped. A second upload on the file field is ignored (the first one wins) and
// counted in Form.Duplicates. Decode fails only when the boundary is missing or no part is
// well formed.
//
// # Concurrency
//
// Decode keeps all of its state on the stack and is safe for concurrent use.
package formdata
