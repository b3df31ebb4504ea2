package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Inventory metric names
const (
	MetricNameInventoryTransactions = "inventory_transactions_total"
	MetricNameItemsPlaced           = "inventory_items_placed_total"
	MetricNameItemsDeleted          = "inventory_items_deleted_total"
	MetricNameItemsConsumed         = "inventory_items_consumed_total"
	MetricNameSnapshotCacheLookups  = "inventory_snapshot_cache_lookups_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published on the internal bus"
)

// Inventory metric help text
const (
	HelpTextInventoryTransactions = "Inventory transactions by operation and result"
	HelpTextItemsPlaced           = "Units of each item placed into inventories"
	HelpTextItemsDeleted          = "Units of each item deleted from inventories"
	HelpTextItemsConsumed         = "Units of each item consumed"
	HelpTextSnapshotCacheLookups  = "Snapshot cache lookups by result"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelOperation = "op"
	LabelResult    = "result"
	LabelItem      = "item"
)

// Label values
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultError    = "error"
	ResultHit      = "hit"
	ResultMiss     = "miss"

	// UnmatchedRoute labels requests no route matched
	UnmatchedRoute = "unmatched"
)

// HTTPLatencyBuckets are the request duration histogram buckets in seconds
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Log messages
const (
	LogMsgMetricsRecorded = "Event metrics recorded"
)
