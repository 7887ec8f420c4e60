package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the aggregation code from the Prometheus implementation.
type Metrics interface {
	IncFeedFetch(source string, ok bool)
	IncCommand(command string)
	ObserveCommandDuration(command string, seconds float64)
	IncRegistryWrite(ok bool)
}
