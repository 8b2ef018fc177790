package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	ReservationsIngested prometheus.Counter
	IngestRejections     *prometheus.CounterVec
	CheckinsScheduled    prometheus.Counter
	IngestDuration       prometheus.Histogram
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ReservationsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_ingested_total",
			Help:      "The total number of reservations ingested successfully",
		}),
		IngestRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_rejections_total",
			Help:      "The total number of rejected ingestion attempts",
		}, []string{"reason"}),
		CheckinsScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkins_scheduled_total",
			Help:      "The total number of check-in jobs scheduled",
		}),
		IngestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Time taken to ingest a reservation end to end",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
