package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus collectors for the application.
type Service struct {
	FeedFetches     *prometheus.CounterVec
	Commands        *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	RegistryWrites  *prometheus.CounterVec
}
