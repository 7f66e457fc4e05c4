package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameItemsAdded        = "items_added_total"
	MetricNameItemsRemoved      = "items_removed_total"
	MetricNameItemsEquipped     = "items_equipped_total"
	MetricNameItemsUsed         = "items_used_total"
	MetricNamePlayersRegistered = "players_registered_total"
	MetricNameLevelUps          = "level_ups_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextItemsAdded        = "Total number of items added to inventories"
	HelpTextItemsRemoved      = "Total number of items removed from inventories"
	HelpTextItemsEquipped     = "Total number of equip operations"
	HelpTextItemsUsed         = "Total number of items used"
	HelpTextPlayersRegistered = "Total number of player registrations"
	HelpTextLevelUps          = "Total number of level-ups"
)

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelItem     = "item"
	LabelCategory = "category"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request
// duration in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
