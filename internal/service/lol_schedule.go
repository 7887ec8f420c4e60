package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"esports-digest/internal/api"
	"esports-digest/internal/clock"
	"esports-digest/internal/constants"
	"esports-digest/internal/domain"
	"esports-digest/internal/markup"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

type LoLFeed interface {
	GetSchedule(ctx context.Context, leagueID string) (*api.ScheduleResponse, bool)
}

type LoLScheduleService struct {
	feed    LoLFeed
	clock   clock.Clock
	leagues []api.League
	logger  zerolog.Logger
}

func NewLoLScheduleService(feed LoLFeed, clk clock.Clock, logger zerolog.Logger) *LoLScheduleService {
	return &LoLScheduleService{
		feed:    feed,
		clock:   clk,
		leagues: api.Leagues,
		logger:  logger,
	}
}

// Matches returns every decided match from today until the lookahead
// window closes, ordered by start, league and title.
func (s *LoLScheduleService) Matches(ctx context.Context) []domain.LoLMatch {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	now := s.clock.Now()
	from := clock.StartOfDay(now)
	until := now.Add(constants.LoLLookahead)

	p := pool.NewWithResults[[]domain.LoLMatch]()
	for _, league := range s.leagues {
		p.Go(func() []domain.LoLMatch {
			resp, ok := s.feed.GetSchedule(apiCtx, league.ID)
			if !ok {
				return nil
			}
			return s.collect(league.Name, resp.Data.Schedule.Events, now, from, until)
		})
	}

	var matches []domain.LoLMatch
	for _, batch := range p.Wait() {
		matches = append(matches, batch...)
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.StartsAt.Equal(b.StartsAt) {
			return a.StartsAt.Before(b.StartsAt)
		}
		if a.League != b.League {
			return a.League < b.League
		}
		return a.TeamA+" vs "+a.TeamB < b.TeamA+" vs "+b.TeamB
	})

	s.logger.Debug().Int("matches", len(matches)).Msg("lol schedule merged")
	return matches
}

func (s *LoLScheduleService) collect(league string, events []api.ScheduleEvent, now, from, until time.Time) []domain.LoLMatch {
	var out []domain.LoLMatch
	for _, evt := range events {
		if evt.StartTime == "" || evt.Match == nil {
			continue
		}
		startsAt, err := clock.ParseRFC3339(evt.StartTime)
		if err != nil {
			s.logger.Debug().Err(err).Str("league", league).Msg("dropping event with unparseable start")
			continue
		}
		if !startsAt.After(from) || !startsAt.Before(until) {
			continue
		}
		teams := evt.Match.Teams
		if len(teams) < 2 || teams[0].Code == tbd || teams[1].Code == tbd {
			continue
		}
		out = append(out, domain.LoLMatch{
			League:   league,
			Year:     startsAt.Year(),
			TeamA:    teams[0].Code,
			TeamB:    teams[1].Code,
			BestOf:   evt.Match.Strategy.Count,
			StartsAt: startsAt,
			Today:    clock.SameDay(startsAt, now),
		})
	}
	return out
}

func (s *LoLScheduleService) Digest(ctx context.Context) markup.Doc {
	return LoLScheduleDoc(s.Matches(ctx), s.clock.Now())
}

func LoLScheduleDoc(matches []domain.LoLMatch, generatedAt time.Time) markup.Doc {
	var d markup.Doc
	if len(matches) == 0 {
		d.Add(markup.B(markup.Text("No scheduled matches.")))
		return d
	}

	current := ""
	for _, m := range matches {
		if title := m.Title(); title != current {
			if current != "" {
				d.Blank()
			}
			d.Add(markup.B(markup.Text("[" + title + "]")))
			current = title
		}

		line := []markup.Node{
			markup.Text(m.TeamA + " vs " + m.TeamB + " "),
			markup.B(markup.Text(fmt.Sprintf("(Bo%d)", m.BestOf))),
			markup.Text(" "),
			markup.I(markup.Text("(" + m.StartsAt.Format("01.02 15:04") + ")")),
		}
		if m.Today {
			d.Add(markup.U(line...))
			continue
		}
		d.Add(line...)
	}
	d.Blank()
	d.Add(footer(generatedAt))
	return d
}
