// Package binder fills typed request structs from HTTP requests.
//
// Each constructor returns a func(*http.Request, any) error that handler.Wrap applies
// in order:
//
//   - JSON() decodes the body and trims every string field.
//   - Query() fills fields tagged `query:"name"`.
//   - Multipart() decodes multipart/form-data through pkg/formdata, filling
//     `form:"name"` text fields and the `file:"name"` upload.
//
// Query and Multipart return ErrBinderNotApplicable when the target struct has none of
// their tags, so one request type can combine several binders.
//
// Only tagged fields are bound. Supported field types are strings, integers, floats,
// booleans and pointers to them; file fields are formdata.Field or *formdata.Field.
package binder
