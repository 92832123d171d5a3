package binder

import "net/http"

// Query binds URL query parameters into fields tagged `query:"name"`.
// Only the first value of a repeated parameter is used.
//
//	type ReportsQuery struct {
//		DoctorID string `query:"doctorId"`
//		Status   string `query:"status"`
//	}
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv, err := structValue(v)
		if err != nil {
			return err
		}
		if !hasTag(rv.Type(), "query") {
			return ErrBinderNotApplicable
		}

		values := r.URL.Query()
		return bindTagged(rv, "query", func(name string) (string, bool) {
			vs, ok := values[name]
			if !ok || len(vs) == 0 {
				return "", false
			}
			return vs[0], true
		}, ErrFailedToParseQuery)
	}
}
