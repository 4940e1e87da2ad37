package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "palettepro",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests, by route pattern, method and status code.",
	}, []string{"route", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "palettepro",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds, by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	palettesGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "palettepro",
		Subsystem: "server",
		Name:      "palettes_generated_total",
		Help:      "Total palettes delivered, by surface (api, ws or mcp).",
	}, []string{"surface"})

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "palettepro",
		Subsystem: "server",
		Name:      "ws_connections_active",
		Help:      "Number of open generation-stream WebSocket connections.",
	})

	mcpToolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "palettepro",
		Subsystem: "mcp",
		Name:      "tool_calls_total",
		Help:      "Total MCP tool calls, by tool and outcome.",
	}, []string{"tool", "outcome"})
)

// instrument records request counts and latency under the matched chi
// route pattern so path parameters do not explode label cardinality.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
