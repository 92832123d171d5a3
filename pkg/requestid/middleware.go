package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header = "X-Request-ID"
	// GatewayHeader carries the API Gateway request ID when the API runs behind Lambda.
	GatewayHeader = "X-Amzn-RequestId"

	maxIDLength = 128
)

// HTTP API gateway IDs are base64 ("JKJaXmPLvHcESHA="), so "=" is allowed.
var validIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_=-]+$`)

// Middleware makes sure every request carries an ID. A valid client supplied X-Request-ID
// wins, then the API Gateway request ID, then a fresh UUID. The chosen ID is echoed in the
// response header and stored in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if !IsValid(requestID) {
			requestID = r.Header.Get(GatewayHeader)
		}
		if !IsValid(requestID) {
			requestID = New()
		}
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
	})
}

// New returns a fresh random request ID.
func New() string {
	return uuid.NewString()
}

// IsValid reports whether id is safe to echo back and log.
func IsValid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
