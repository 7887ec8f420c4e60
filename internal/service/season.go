package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"esports-digest/internal/api"
	"esports-digest/internal/clock"
	"esports-digest/internal/config"
	"esports-digest/internal/constants"
	"esports-digest/internal/domain"
	"esports-digest/internal/markup"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

type SeasonFeed interface {
	GetCompetitiveSeasons(ctx context.Context) (*api.SeasonsResponse, bool)
}

// SeasonService reports how long the current competitive act has left.
// Parsed end dates are cached; concurrent misses share one fetch.
type SeasonService struct {
	feed   SeasonFeed
	clock  clock.Clock
	ttl    time.Duration
	logger zerolog.Logger

	group   singleflight.Group
	mu      sync.RWMutex
	ends    []time.Time
	expires time.Time
}

func NewSeasonService(feed SeasonFeed, clk clock.Clock, cfg *config.Config, logger zerolog.Logger) *SeasonService {
	return &SeasonService{
		feed:   feed,
		clock:  clk,
		ttl:    cfg.CacheTTL,
		logger: logger,
	}
}

// Countdown returns the time left until the earliest season end still in
// the future. The bool is false when the feed had no seasons at all.
func (s *SeasonService) Countdown(ctx context.Context) (domain.SeasonCountdown, bool) {
	ends, ok := s.endDates(ctx)
	if !ok {
		return domain.SeasonCountdown{}, false
	}

	now := s.clock.Now()
	var target time.Time
	for _, end := range ends {
		if !end.After(now) {
			continue
		}
		if target.IsZero() || end.Before(target) {
			target = end
		}
	}
	if target.IsZero() {
		return domain.SeasonCountdown{}, true
	}

	days, hours := clock.Remaining(target, now)
	return domain.SeasonCountdown{EndsAt: target, Days: days, Hours: hours, Found: true}, true
}

func (s *SeasonService) endDates(ctx context.Context) ([]time.Time, bool) {
	now := s.clock.Now()

	s.mu.RLock()
	if s.ends != nil && now.Before(s.expires) {
		ends := s.ends
		s.mu.RUnlock()
		return ends, true
	}
	s.mu.RUnlock()

	// The shared fetch outlives any single caller; each caller still
	// stops waiting at its own deadline.
	ch := s.group.DoChan("seasons", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.ExternalAPITimeout)
		defer cancel()

		resp, ok := s.feed.GetCompetitiveSeasons(fetchCtx)
		if !ok || len(resp.Data) == 0 {
			return nil, nil
		}

		ends := make([]time.Time, 0, len(resp.Data))
		for _, season := range resp.Data {
			if season.EndTime == "" {
				continue
			}
			end, err := clock.ParseRFC3339(season.EndTime)
			if err != nil {
				s.logger.Debug().Err(err).Str("season", season.UUID).Msg("skipping season with unparseable end")
				continue
			}
			ends = append(ends, end.Add(constants.SeasonEndGrace))
		}

		s.mu.Lock()
		s.ends = ends
		s.expires = s.clock.Now().Add(s.ttl)
		s.mu.Unlock()

		return ends, nil
	})

	select {
	case res := <-ch:
		ends, ok := res.Val.([]time.Time)
		return ends, ok && ends != nil
	case <-ctx.Done():
		return nil, false
	}
}

// SeasonLine renders a countdown. It returns nil when the feed had nothing.
func SeasonLine(c domain.SeasonCountdown, known bool) markup.Line {
	if !known {
		return nil
	}
	if !c.Found {
		return markup.Line{markup.B(markup.Text("No scheduled season end."))}
	}
	return markup.Line{
		markup.Text(fmt.Sprintf("Season ends in %d days %d hours (", c.Days, c.Hours)),
		markup.Code(c.EndsAt.Format("2006-01-02")),
		markup.Text(")"),
	}
}
