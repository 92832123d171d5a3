package formdata

import (
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// decodeText turns a text part body into a Go string. Parts that declare a non UTF-8
// charset in their own Content-Type are transcoded; everything else is read as UTF-8 with
// invalid sequences replaced by U+FFFD.
func decodeText(b []byte, contentType string) string {
	if cs := charsetOf(contentType); cs != "" && !isUTF8(cs) {
		if enc, err := htmlindex.Get(cs); err == nil {
			if out, err := enc.NewDecoder().Bytes(b); err == nil {
				return string(out)
			}
		}
	}
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}

func charsetOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(params["charset"])
}

func isUTF8(charset string) bool {
	return charset == "utf-8" || charset == "utf8"
}
