package export

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "palettepro",
		Subsystem: "export",
		Name:      "exports_total",
		Help:      "Total palettes exported, by format.",
	}, []string{"format"})

	exportErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "palettepro",
		Subsystem: "export",
		Name:      "errors_total",
		Help:      "Total failed exports, by format.",
	}, []string{"format"})

	exportBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "palettepro",
		Subsystem: "export",
		Name:      "output_bytes",
		Help:      "Size of exported output in bytes, by format.",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
	}, []string{"format"})
)
