// internal/middleware/security.go
//
// Security-header middleware for the public business pages.
//
// Injects standard headers on every response:
//
//   - Strict-Transport-Security  –  forces HTTPS (2 years + preload)
//   - Content-Security-Policy    –  tuned for the generated pages, which
//     carry inline styles, inline behavior scripts, CDN images, and
//     YouTube embeds
//   - X-Frame-Options            –  click-jacking defence
//   - X-Content-Type-Options     –  MIME-sniffing defence
//   - Referrer-Policy            –  drops path/query from Referer
//   - Permissions-Policy         –  disables powerful features by default
//
// Notes
// -----
// • Headers are set before the handler runs so they land even when the
//   handler writes immediately; existing values are never overwritten.
// • Oxford commas, two spaces after periods.
package middleware

import "net/http"

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		hsts = "max-age=63072000; includeSubDomains; preload"
		csp  = "default-src 'self'; img-src https: data:; " +
			"style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'; " +
			"frame-src https://www.youtube.com; connect-src *; " +
			"object-src 'none'; base-uri 'self'"
		xfo   = "DENY"
		nosn  = "nosniff"
		refer = "strict-origin-when-cross-origin"
		perm  = "geolocation=(), microphone=(), camera=()"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		set := func(k, v string) {
			if w.Header().Get(k) == "" {
				w.Header().Set(k, v)
			}
		}
		set("Strict-Transport-Security", hsts)
		set("Content-Security-Policy", csp)
		set("X-Frame-Options", xfo)
		set("X-Content-Type-Options", nosn)
		set("Referrer-Policy", refer)
		set("Permissions-Policy", perm)

		next.ServeHTTP(w, r)
	})
}
