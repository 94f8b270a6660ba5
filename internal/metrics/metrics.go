// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BusinessesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "businesses_created_total",
			Help: "Cumulative number of businesses registered.",
		})

	SlugConflictRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "slug_conflict_retries_total",
			Help: "Cumulative number of slug allocations retried after an insert conflict.",
		})

	PagesRenderedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pages_rendered_total",
			Help: "Cumulative number of business pages rendered.",
		})

	PageCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "page_cache_hits_total",
			Help: "Cumulative number of page requests served from the render cache.",
		})

	AnalyticsEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_events_total",
			Help: "Cumulative number of analytics events recorded, by type.",
		},
		[]string{"type"})

	AnalyticsErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_errors_total",
			Help: "Cumulative number of analytics writes absorbed after failing.",
		})
)

func init() {
	prometheus.MustRegister(
		BusinessesCreatedTotal,
		SlugConflictRetriesTotal,
		PagesRenderedTotal,
		PageCacheHitsTotal,
		AnalyticsEventsTotal,
		AnalyticsErrorsTotal,
	)
}
