package server

import (
	"errors"
	"net/http"
	"strings"

	"esports-digest/internal/api"
	"esports-digest/internal/domain"
	"esports-digest/internal/registry"
	"esports-digest/internal/service"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
)

func (s *DigestServer) handleValorantSchedule(w http.ResponseWriter, r *http.Request) {
	s.writeDoc(w, r, http.StatusOK, s.schedule.Digest(r.Context()))
}

func (s *DigestServer) handleLoLSchedule(w http.ResponseWriter, r *http.Request) {
	s.writeDoc(w, r, http.StatusOK, s.lol.Digest(r.Context()))
}

func (s *DigestServer) handleBracketRegions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"regions": service.BracketRegions})
}

func (s *DigestServer) handleBracket(w http.ResponseWriter, r *http.Request) {
	region := strings.TrimSpace(r.URL.Query().Get("region"))
	if region == "" {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "region is required, one of: " + strings.Join(service.BracketRegions, ", "),
		})
		return
	}

	img, err := s.brackets.Bracket(r.Context(), region)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("region", region).Msg("bracket unavailable")
		s.writeDoc(w, r, http.StatusBadGateway, service.ErrorDoc(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Bracket-Path", string(img.Path))
	w.Header().Set("X-Bracket-Source", img.PageURL)
	w.WriteHeader(http.StatusOK)
	w.Write(img.PNG)
}

func (s *DigestServer) handleStats(w http.ResponseWriter, r *http.Request) {
	name, tag, err := service.ParseRiotID(r.URL.Query().Get("player"))
	if err != nil {
		s.writeDoc(w, r, http.StatusBadRequest, service.ErrorDoc(err))
		return
	}

	doc, err := s.stats.Digest(r.Context(), name, tag)
	switch {
	case err == nil:
		s.writeDoc(w, r, http.StatusOK, doc)
	case errors.Is(err, service.ErrAccountNotFound), errors.Is(err, service.ErrNoRecentMatches):
		s.writeDoc(w, r, http.StatusNotFound, service.ErrorDoc(err))
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("stats failed")
		s.writeDoc(w, r, http.StatusInternalServerError, service.ErrorDoc(err))
	}
}

type DestinationRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DestinationsResponse struct {
	Destinations []domain.ChatDestination `json:"destinations"`
}

func (s *DigestServer) handleListDestinations(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, DestinationsResponse{Destinations: s.registry.List()})
}

func (s *DigestServer) handleRegisterDestination(w http.ResponseWriter, r *http.Request) {
	var req DestinationRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	changed, err := s.registry.Register(r.Context(), req.ID, req.Name)
	switch {
	case errors.Is(err, registry.ErrEmptyID):
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to persist destination"})
		return
	}

	status := http.StatusOK
	if changed {
		status = http.StatusCreated
	}
	s.writeJSON(w, status, DestinationsResponse{Destinations: s.registry.List()})
}

type HealthResponse struct {
	Status        string            `json:"status"`
	Destinations  int               `json:"destinations"`
	HDevRateLimit api.RateLimitInfo `json:"hdev_rate_limit"`
}

func (s *DigestServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Destinations:  len(s.registry.List()),
		HDevRateLimit: s.hdev.GetRateLimitInfo(),
	})
}
