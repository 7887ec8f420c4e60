package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"esports-digest/internal/api"
	"esports-digest/internal/clock"
	"esports-digest/internal/constants"
	"esports-digest/internal/domain"
	"esports-digest/internal/markup"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrNoRecentMatches = errors.New("no recent matches")
	ErrMalformedRiotID = errors.New("expected name#tag, e.g. lissa#vlr")
)

// ParseRiotID splits "name#tag". Exactly one '#' with text on both sides is
// accepted.
func ParseRiotID(s string) (name, tag string, err error) {
	parts := strings.Split(strings.TrimSpace(s), "#")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: got %q", ErrMalformedRiotID, s)
	}
	name, tag = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if name == "" || tag == "" {
		return "", "", fmt.Errorf("%w: got %q", ErrMalformedRiotID, s)
	}
	return name, tag, nil
}

type PlayerFeed interface {
	GetAccount(ctx context.Context, name, tag string) (*api.AccountResponse, bool)
	GetMMR(ctx context.Context, region, puuid string) (*api.MMRResponse, bool)
	GetMMRHistory(ctx context.Context, region, puuid string) (*api.MMRHistoryResponse, bool)
	GetMatches(ctx context.Context, region, name, tag string) (*api.MatchesResponse, bool)
}

type SeasonSource interface {
	Countdown(ctx context.Context) (domain.SeasonCountdown, bool)
}

type StatsService struct {
	feed    PlayerFeed
	seasons SeasonSource
	clock   clock.Clock
	logger  zerolog.Logger
}

func NewStatsService(feed PlayerFeed, seasons SeasonSource, clk clock.Clock, logger zerolog.Logger) *StatsService {
	return &StatsService{feed: feed, seasons: seasons, clock: clk, logger: logger}
}

func (s *StatsService) Stats(ctx context.Context, name, tag string) (*domain.PlayerStatsSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Str("name", name).Str("tag", tag).Msg("getting player stats")

	accCtx, accCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer accCancel()

	acc, ok := s.feed.GetAccount(accCtx, name, tag)
	if !ok || acc.Data.Puuid == "" {
		return nil, fmt.Errorf("%w: %s#%s", ErrAccountNotFound, name, tag)
	}

	account := domain.PlayerAccount{
		PUUID:  acc.Data.Puuid,
		Name:   name,
		Tag:    tag,
		Region: acc.Data.Region,
	}
	if account.Region == "" {
		account.Region = constants.DefaultRegion
	}

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	var (
		mmr         *api.MMRResponse
		history     *api.MMRHistoryResponse
		matches     *api.MatchesResponse
		season      domain.SeasonCountdown
		seasonKnown bool
	)

	g, gCtx := errgroup.WithContext(apiCtx)
	g.Go(func() error {
		mmr, _ = s.feed.GetMMR(gCtx, account.Region, account.PUUID)
		return nil
	})
	g.Go(func() error {
		history, _ = s.feed.GetMMRHistory(gCtx, account.Region, account.PUUID)
		return nil
	})
	g.Go(func() error {
		matches, _ = s.feed.GetMatches(gCtx, account.Region, name, tag)
		return nil
	})
	g.Go(func() error {
		season, seasonKnown = s.seasons.Countdown(gCtx)
		return nil
	})
	_ = g.Wait()

	summary := correlate(account, mmr, history, matches)
	if len(summary.Matches) == 0 {
		return nil, fmt.Errorf("%w: %s#%s", ErrNoRecentMatches, name, tag)
	}

	summary.Season = season
	summary.SeasonKnown = seasonKnown
	summary.GeneratedAt = s.clock.Now()

	s.logger.Debug().
		Str("puuid", account.PUUID).
		Int("matches", len(summary.Matches)).
		Msg("player stats correlated")

	return summary, nil
}

func (s *StatsService) Digest(ctx context.Context, name, tag string) (markup.Doc, error) {
	summary, err := s.Stats(ctx, name, tag)
	if err != nil {
		return markup.Doc{}, err
	}
	return StatsDoc(summary), nil
}

// correlate joins match history with rank deltas. Any of the responses may
// be nil.
func correlate(account domain.PlayerAccount, mmr *api.MMRResponse, history *api.MMRHistoryResponse, matches *api.MatchesResponse) *domain.PlayerStatsSummary {
	summary := &domain.PlayerStatsSummary{Account: account}

	if mmr != nil && mmr.Data.Current.Tier != nil {
		summary.Rank = domain.RankSnapshot{Tier: mmr.Data.Current.Tier.Name, Known: true}
		if rr := mmr.Data.Current.RR; rr != nil {
			summary.Rank.RR = *rr
		}
	}

	deltas := make(map[string]int)
	if history != nil {
		for _, h := range history.Data.History {
			deltas[h.MatchID] = h.LastChange
		}
	}

	if matches == nil {
		return summary
	}

	for _, m := range matches.Data {
		meta := m.Metadata
		if meta == nil || meta.GameStart == 0 {
			continue
		}

		var me *api.MatchPlayer
		for i := range m.Players.AllPlayers {
			if m.Players.AllPlayers[i].Puuid == account.PUUID {
				me = &m.Players.AllPlayers[i]
				break
			}
		}
		if me == nil {
			continue
		}

		rounds := 1
		if meta.RoundsPlayed != nil {
			rounds = *meta.RoundsPlayed
		}

		summary.TotalKills += me.Stats.Kills
		summary.TotalDeaths += me.Stats.Deaths
		summary.TotalScore += me.Stats.Score
		summary.TotalRounds += rounds

		perf := domain.MatchPerformance{
			MatchID:   meta.MatchID,
			Kills:     me.Stats.Kills,
			Deaths:    me.Stats.Deaths,
			Assists:   me.Stats.Assists,
			Score:     me.Stats.Score,
			Rounds:    rounds,
			Map:       meta.Map,
			StartedAt: time.Unix(meta.GameStart, 0).In(clock.Reference),
			RankDelta: deltas[meta.MatchID],
		}

		if team, ok := m.Teams[strings.ToLower(me.Team)]; ok {
			perf.Outcome = outcome(team)
			perf.Listed = true
		}

		summary.Matches = append(summary.Matches, perf)
	}

	return summary
}

func outcome(t api.MatchTeam) domain.Outcome {
	switch {
	case t.HasWon || t.RoundsWon > t.RoundsLost:
		return domain.OutcomeWin
	case t.RoundsWon == t.RoundsLost:
		return domain.OutcomeDraw
	default:
		return domain.OutcomeLoss
	}
}

const NoMatchDetails = "no match details available"

func SignedDelta(d int) string {
	if d > 0 {
		return "+" + strconv.Itoa(d)
	}
	return strconv.Itoa(d)
}

func ProfileURL(name, tag string) string {
	return fmt.Sprintf("https://tracker.gg/valorant/profile/riot/%s%%23%s/overview",
		url.PathEscape(name), url.PathEscape(tag))
}

func MatchLine(m domain.MatchPerformance) string {
	played := strings.ToLower(m.StartedAt.Format("01.02 03:04PM"))
	return fmt.Sprintf("%s  [%d/%d/%d]  %s  (%s)  %s",
		m.Outcome, m.Kills, m.Deaths, m.Assists, m.Map, played, SignedDelta(m.RankDelta))
}

func StatsDoc(s *domain.PlayerStatsSummary) markup.Doc {
	riotID := s.Account.Name + "#" + s.Account.Tag

	rank := "Unranked"
	if s.Rank.Known {
		rank = fmt.Sprintf("%s, %d", s.Rank.Tier, s.Rank.RR)
	}

	lines := make([]string, 0, len(s.Matches))
	for _, m := range s.Matches {
		if m.Listed {
			lines = append(lines, MatchLine(m))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, NoMatchDetails)
	}

	var d markup.Doc
	d.Add(markup.B(markup.A(ProfileURL(s.Account.Name, s.Account.Tag), markup.Text(riotID)), markup.Text(" recent matches")))
	d.Add(markup.Text("server: " + s.Account.Region))
	d.Add(
		markup.Text("K/D: "), markup.B(markup.Text(fmt.Sprintf("%.2f", s.KD()))),
		markup.Text("  |  ACS: "), markup.B(markup.Text(strconv.Itoa(s.ACS()))),
	)
	d.Add(markup.Text("current rank: "), markup.B(markup.Text(rank)))
	d.Add(markup.Text(strings.Repeat("-", 46)))
	d.Add(markup.CodeBlock{Lines: lines})
	if line := SeasonLine(s.Season, s.SeasonKnown); line != nil {
		d.Add(line...)
	}
	d.Blank()
	d.Add(footer(s.GeneratedAt))
	return d
}
