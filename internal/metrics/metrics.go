package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "photovault_uploads_total",
		Help: "Photo uploads by outcome",
	}, []string{"outcome"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "photovault_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})

	BlobCacheEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "photovault_blob_cache_entries",
		Help: "Blobs resident in the in-memory cache",
	})

	StoriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "photovault_stories_total",
		Help: "Narrative generation requests by outcome",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(UploadsTotal, RequestDuration, BlobCacheEntries, StoriesTotal)
}

// Handler exposes the registry for Prometheus scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
