// internal/server/timeouts.go
//
// Hardened *http.Server construction.
//
// Context
// -------
// Every response Vitrine serves is small: a rendered page is a few tens
// of kilobytes, and the API payloads are smaller still.  That makes
// tight timeouts cheap, so slow-loris headers, stalled request bodies,
// and idle keep-alive hoards are all cut off aggressively.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package server

import (
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// New wraps handler in an *http.Server with the timeout profile above.
// Callers may still adjust TLSConfig before ListenAndServe.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
