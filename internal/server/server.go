package server

import (
	"net/http"

	"esports-digest/internal/api"
	"esports-digest/internal/config"
	"esports-digest/internal/markup"
	"esports-digest/internal/metrics"
	"esports-digest/internal/middleware"
	"esports-digest/internal/registry"
	"esports-digest/internal/service"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
)

const (
	CommandScheduleValorant = "schedule_valorant"
	CommandScheduleLoL      = "schedule_lol"
	CommandBracket          = "bracket"
	CommandStats            = "stats"
	CommandSlack            = "slack"
)

// DigestServer exposes every command over HTTP.
type DigestServer struct {
	schedule *service.ScheduleService
	lol      *service.LoLScheduleService
	brackets *service.BracketService
	stats    *service.StatsService
	registry *registry.Registry
	hdev     *api.HDevClient
	metrics  metrics.Metrics
	cfg      *config.Config
	logger   zerolog.Logger
}

func NewDigestServer(
	schedule *service.ScheduleService,
	lol *service.LoLScheduleService,
	brackets *service.BracketService,
	stats *service.StatsService,
	reg *registry.Registry,
	hdev *api.HDevClient,
	m metrics.Metrics,
	cfg *config.Config,
	logger zerolog.Logger,
) *DigestServer {
	if cfg.SlackSigningSecret == "" {
		logger.Warn().Msg("SLACK_SIGNING_SECRET is not set, slash commands are accepted unsigned")
	}
	return &DigestServer{
		schedule: schedule,
		lol:      lol,
		brackets: brackets,
		stats:    stats,
		registry: reg,
		hdev:     hdev,
		metrics:  m,
		cfg:      cfg,
		logger:   logger,
	}
}

// Routes builds the application mux. Metrics are served separately.
func (s *DigestServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	command := func(name string, h http.HandlerFunc) http.Handler {
		return middleware.Chain(h,
			middleware.Instrument(s.metrics, name),
			middleware.Destinations(s.registry),
		)
	}

	mux.Handle("GET /v1/schedule/valorant", command(CommandScheduleValorant, s.handleValorantSchedule))
	mux.Handle("GET /v1/schedule/lol", command(CommandScheduleLoL, s.handleLoLSchedule))
	mux.HandleFunc("GET /v1/bracket/regions", s.handleBracketRegions)
	mux.Handle("GET /v1/bracket", command(CommandBracket, s.handleBracket))
	mux.Handle("GET /v1/stats", command(CommandStats, s.handleStats))
	mux.HandleFunc("GET /v1/destinations", s.handleListDestinations)
	mux.HandleFunc("POST /v1/destinations", s.handleRegisterDestination)
	mux.Handle("POST /slack/commands", middleware.Instrument(s.metrics, CommandSlack)(http.HandlerFunc(s.handleSlackCommand)))
	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

type DocResponse struct {
	Format string `json:"format"`
	Text   string `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *DigestServer) writeDoc(w http.ResponseWriter, r *http.Request, status int, doc markup.Doc) {
	renderer := markup.RendererFor(r.URL.Query().Get("format"))
	s.writeJSON(w, status, DocResponse{Format: renderer.Format(), Text: renderer.Render(doc)})
}

func (s *DigestServer) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
