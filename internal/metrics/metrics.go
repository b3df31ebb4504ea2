package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Inventory Metrics
var (
	InventoryTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInventoryTransactions,
			Help: HelpTextInventoryTransactions,
		},
		[]string{LabelOperation, LabelResult},
	)

	ItemsPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsPlaced,
			Help: HelpTextItemsPlaced,
		},
		[]string{LabelItem},
	)

	ItemsDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsDeleted,
			Help: HelpTextItemsDeleted,
		},
		[]string{LabelItem},
	)

	ItemsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsConsumed,
			Help: HelpTextItemsConsumed,
		},
		[]string{LabelItem},
	)

	SnapshotCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotCacheLookups,
			Help: HelpTextSnapshotCacheLookups,
		},
		[]string{LabelResult},
	)
)
