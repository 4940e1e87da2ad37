package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

// accessLog writes one structured line per request to the palettepro log.
type accessLog struct{}

func (accessLog) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &accessEntry{
		method: r.Method,
		uri:    redactedURI(r.URL),
		remote: r.RemoteAddr,
		id:     middleware.GetReqID(r.Context()),
	}
}

type accessEntry struct {
	method, uri, remote, id string
}

func (e *accessEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ any) {
	log := tuilog.Log.Info
	if status >= http.StatusInternalServerError {
		log = tuilog.Log.Warn
	}
	log("HTTP request",
		"method", e.method,
		"uri", e.uri,
		"status", status,
		"bytes", bytes,
		"elapsed", elapsed.Round(time.Microsecond),
		"remote", e.remote,
		"request_id", e.id)
}

func (e *accessEntry) Panic(v any, stack []byte) {
	tuilog.Log.Error("HTTP handler panic", "uri", e.uri, "panic", v, "stack", string(stack))
}

// redactedURI returns u's request URI with credential query values masked.
func redactedURI(u *url.URL) string {
	if u == nil {
		return ""
	}
	if u.RawQuery == "" {
		return u.RequestURI()
	}
	q := u.Query()
	for key := range q {
		if isSensitiveQueryKey(key) {
			q.Set(key, "[REDACTED]")
		}
	}
	masked := *u
	masked.RawQuery = q.Encode()
	return masked.RequestURI()
}

func isSensitiveQueryKey(key string) bool {
	switch strings.ToLower(key) {
	case "token", "access_token", "api_key", "apikey":
		return true
	}
	return false
}
