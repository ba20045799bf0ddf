package middleware

import (
	"net/http"
)

// apiCSP is strict: the service only ever returns JSON.
const apiCSP = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeaders sets the response headers a JSON API should always carry.
// HSTS is only sent when the service is reached over HTTPS.
func SecurityHeaders(isHTTPS bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			headers.Set("X-Frame-Options", "DENY")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Referrer-Policy", "no-referrer")
			headers.Set("Cross-Origin-Opener-Policy", "same-origin")
			headers.Set("Cross-Origin-Resource-Policy", "same-origin")
			headers.Set("X-DNS-Prefetch-Control", "off")
			headers.Set("Content-Security-Policy", apiCSP)
			if isHTTPS {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
