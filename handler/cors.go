package handler

import (
	"net/http"
	"strings"
)

// CORSConfig lists the values sent in Access-Control-Allow-* headers.
type CORSConfig struct {
	AllowOrigin  string   `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`
	AllowMethods []string `env:"CORS_ALLOW_METHODS" envDefault:"GET,POST,OPTIONS" envSeparator:","`
	AllowHeaders []string `env:"CORS_ALLOW_HEADERS" envDefault:"Content-Type,Authorization,X-Request-ID" envSeparator:","`
}

// DefaultCORSConfig allows any origin, matching the browser clients of the portal.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigin:  "*",
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
	}
}

// CORS adds the Access-Control-Allow-* headers to every response and answers
// OPTIONS preflight requests with 200 before they reach the router.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", cfg.AllowOrigin)
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)

			if r.Method == http.MethodOptions {
				_ = JSON(map[string]string{"message": "CORS preflight"}).Render(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
