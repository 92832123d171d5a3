package binder

import (
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/cardmia/ecgportal/pkg/formdata"
)

var (
	fieldType    = reflect.TypeFor[formdata.Field]()
	fieldPtrType = reflect.TypeFor[*formdata.Field]()
)

// Multipart decodes a multipart/form-data body with pkg/formdata.
//
// Text values fill fields tagged `form:"name"`. The first field tagged `file:"name"`
// of type formdata.Field or *formdata.Field names the designated file field and receives
// the upload; a *formdata.Field stays nil when nothing was uploaded.
//
//	type ReviewedUpload struct {
//		DoctorID         string          `form:"doctorId"`
//		OriginalFileName string          `form:"originalFileName"`
//		PDF              *formdata.Field `file:"reviewedPdf"`
//	}
//
// Decoding errors are returned unchanged, so they still match formdata.ErrMalformedBody.
func Multipart(opts ...formdata.Option) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv, err := structValue(v)
		if err != nil {
			return err
		}

		fileIdx, fileName := fileFieldOf(rv.Type())
		if fileIdx < 0 && !hasTag(rv.Type(), "form") {
			return ErrBinderNotApplicable
		}

		ct := r.Header.Get("Content-Type")
		if !formdata.IsMultipart(ct) {
			return ErrNotMultipart
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
		}

		decodeOpts := opts
		if fileName != "" {
			decodeOpts = append([]formdata.Option{formdata.WithFileField(fileName)}, opts...)
		}
		form, err := formdata.Decode(body, ct, decodeOpts...)
		if err != nil {
			return err
		}

		err = bindTagged(rv, "form", func(name string) (string, bool) {
			f, ok := form.Lookup(name)
			if !ok || f.IsFile {
				return "", false
			}
			return f.Value, true
		}, ErrFailedToParseForm)
		if err != nil {
			return err
		}

		if fileIdx >= 0 {
			if upload, ok := form.Upload(); ok {
				target := rv.Field(fileIdx)
				if target.Type() == fieldPtrType {
					target.Set(reflect.ValueOf(&upload))
				} else {
					target.Set(reflect.ValueOf(upload))
				}
			}
		}
		return nil
	}
}

// fileFieldOf returns the index and tag name of the first exported file field, or -1.
func fileFieldOf(t reflect.Type) (int, string) {
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || (f.Type != fieldType && f.Type != fieldPtrType) {
			continue
		}
		if name := tagName(f, "file"); name != "" {
			return i, name
		}
	}
	return -1, ""
}
