package server

import (
	"net/http"

	"github.com/felixge/httpsnoop"

	"cue-cards/internal/logging"
)

// AccessLog logs one line per request with status, size and latency
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		logging.Infof("%s %s %d %dB %s", r.Method, r.URL.Path, m.Code, m.Written, m.Duration)
	})
}
