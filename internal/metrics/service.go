package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus collectors.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "digest_feed_fetches_total",
			Help: "Upstream feed fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "digest_commands_total",
			Help: "Commands served by name.",
		}, []string{"command"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "digest_command_duration_seconds",
			Help:    "Time spent building a command response.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"command"}),
		RegistryWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "digest_registry_writes_total",
			Help: "Destination registry rewrites by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		s.FeedFetches,
		s.Commands,
		s.CommandDuration,
		s.RegistryWrites,
	)

	return s
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

func (s *Service) IncFeedFetch(source string, ok bool) {
	s.FeedFetches.WithLabelValues(source, outcome(ok)).Inc()
}

func (s *Service) IncCommand(command string) {
	s.Commands.WithLabelValues(command).Inc()
}

func (s *Service) ObserveCommandDuration(command string, seconds float64) {
	s.CommandDuration.WithLabelValues(command).Observe(seconds)
}

func (s *Service) IncRegistryWrite(ok bool) {
	s.RegistryWrites.WithLabelValues(outcome(ok)).Inc()
}
