package formdata

import "log/slog"

// Field is one decoded form field.
//
// For a file field Content holds the exact bytes of the uploaded file and Value is empty.
// For a text field Value is the decoded, whitespace-trimmed text and Content keeps the raw
// bytes as they appeared between the structural CRLFs.
// Content aliases the decoded body; copy it if the body buffer is reused.
type Field struct {
	Name        string
	Filename    string
	ContentType string
	Content     []byte
	Value       string
	IsFile      bool
}

// Size returns the length of the raw content in bytes.
func (f Field) Size() int { return len(f.Content) }

// Form is the result of decoding one multipart body.
type Form struct {
	// Fields maps a field name to its decoded value.
	Fields map[string]Field
	// FileField is the field name that was expected to carry the upload.
	FileField string
	// Filename is the original filename of the first upload on FileField.
	Filename string
	// Skipped counts parts dropped for lacking a header separator or a name.
	Skipped int
	// Duplicates counts parts ignored because FileField already held an upload.
	Duplicates int
}

func newForm(fileField string) *Form {
	return &Form{
		Fields:    make(map[string]Field),
		FileField: fileField,
	}
}

// Value returns the text value of a field, or "" when the field is absent.
func (f *Form) Value(name string) string {
	return f.Fields[name].Value
}

// Lookup returns the field stored under name.
func (f *Form) Lookup(name string) (Field, bool) {
	field, ok := f.Fields[name]
	return field, ok
}

// File returns the field stored under name if it was classified as a file.
func (f *Form) File(name string) (Field, bool) {
	field, ok := f.Fields[name]
	if !ok || !field.IsFile {
		return Field{}, false
	}
	return field, true
}

// Upload returns the file received on the expected file field.
func (f *Form) Upload() (Field, bool) {
	return f.File(f.FileField)
}

// Has reports whether a field with the given name was decoded.
func (f *Form) Has(name string) bool {
	_, ok := f.Fields[name]
	return ok
}

// Len returns the number of distinct field names.
func (f *Form) Len() int {
	return len(f.Fields)
}

// LogValue summarises the form for structured logs without dumping content.
func (f *Form) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("fields", f.Len()),
		slog.String("file_field", f.FileField),
		slog.String("filename", f.Filename),
		slog.Int("skipped", f.Skipped),
		slog.Int("duplicates", f.Duplicates),
	)
}

var _ slog.LogValuer = (*Form)(nil)
