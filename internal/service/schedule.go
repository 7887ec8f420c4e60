package service

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"esports-digest/internal/api"
	"esports-digest/internal/clock"
	"esports-digest/internal/constants"
	"esports-digest/internal/domain"
	"esports-digest/internal/markup"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	youtubeSearchURL = "https://www.youtube.com/results?search_query="
	tbd              = "TBD"
)

// Tier1Teams is the allow-list of organizations a match must involve to be
// listed. Names are compared exactly as the feed spells them.
var Tier1Teams = []string{
	"100 Thieves", "Cloud9", "Evil Geniuses", "FURIA", "KRÜ Esports",
	"Leviatán", "LOUD", "MIBR", "NRG", "Sentinels", "G2 Esports", "ENVY",
	"All Gamers", "Bilibili Gaming", "EDward Gaming", "FunPlus Phoenix",
	"JDG Esports", "Nova Esports", "Titan Esports Club", "Trace Esports",
	"TYLOO", "Wolves Esports", "Dragon Ranger Gaming", "Xi Lai Gaming",
	"BBL Esports", "FNATIC", "FUT Esports", "Karmine Corp", "Team Vitality",
	"Natus Verni", "Team Heretics", "Team Liquid", "PCIFIC Espor",
	"Gentle Mates", "GIANTX", "ULP Esports", "DetonatioN FocusMe", "DRX",
	"Gen.G", "Global Esports", "Paper Rex", "Rex Regum Qeon", "T1", "TALON",
	"Team Secret", "ZETA DIVISION", "Nongshim RedForce", "VARREL",
}

// liveRegions maps event-name substrings to search-query region words.
// The first match wins.
var liveRegions = []struct{ marker, region string }{
	{"Americas", "americas"},
	{"EMEA", "emea"},
	{"Pacific", "pacific"},
	{"CN", "cn"},
}

type MatchFeed interface {
	GetLive(ctx context.Context) (*api.SegmentsResponse, bool)
	GetUpcoming(ctx context.Context) (*api.SegmentsResponse, bool)
}

type ScheduleService struct {
	feed   MatchFeed
	clock  clock.Clock
	allow  map[string]struct{}
	logger zerolog.Logger
}

func NewScheduleService(feed MatchFeed, clk clock.Clock, logger zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		feed:   feed,
		clock:  clk,
		allow:  allowList(Tier1Teams),
		logger: logger,
	}
}

func allowList(teams []string) map[string]struct{} {
	m := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		m[t] = struct{}{}
	}
	return m
}

// Schedule merges the live and upcoming feeds into tournament groups.
// An absent feed contributes nothing.
func (s *ScheduleService) Schedule(ctx context.Context) domain.Schedule {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	var live, upcoming []api.Segment

	g, gCtx := errgroup.WithContext(apiCtx)
	g.Go(func() error {
		if resp, ok := s.feed.GetLive(gCtx); ok {
			live = resp.Data.Segments
		}
		return nil
	})
	g.Go(func() error {
		if resp, ok := s.feed.GetUpcoming(gCtx); ok {
			upcoming = resp.Data.Segments
		}
		return nil
	})
	_ = g.Wait()

	now := s.clock.Now()
	records := make([]domain.MatchRecord, 0, len(live)+len(upcoming))

	for _, seg := range live {
		t1, t2 := teamName(seg.Team1), teamName(seg.Team2)
		if !s.relevant(t1, t2) {
			continue
		}
		records = append(records, domain.MatchRecord{
			Tournament: seg.MatchEvent,
			TeamA:      t1,
			TeamB:      t2,
			Status:     domain.StatusLive,
			Link:       searchLink(seg.MatchEvent, t1, t2),
		})
	}

	for _, seg := range upcoming {
		t1, t2 := teamName(seg.Team1), teamName(seg.Team2)
		if !s.relevant(t1, t2) {
			continue
		}
		if seg.UnixTimestamp == "" {
			continue
		}
		startsAt, err := clock.ParseUTC(clock.FeedLayout, seg.UnixTimestamp)
		if err != nil {
			s.logger.Debug().Err(err).Str("event", seg.MatchEvent).Msg("dropping match with unparseable start")
			continue
		}
		if startsAt.Before(now) {
			continue
		}
		records = append(records, domain.MatchRecord{
			Tournament: seg.MatchEvent,
			TeamA:      t1,
			TeamB:      t2,
			Status:     domain.StatusUpcoming,
			StartsAt:   &startsAt,
			SortKey:    startsAt.Unix(),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SortKey < records[j].SortKey
	})

	s.logger.Debug().
		Int("live", len(live)).
		Int("upcoming", len(upcoming)).
		Int("kept", len(records)).
		Msg("schedule merged")

	return domain.Schedule{Groups: groupByTournament(records), GeneratedAt: now}
}

// Digest renders the current schedule.
func (s *ScheduleService) Digest(ctx context.Context) markup.Doc {
	return ScheduleDoc(s.Schedule(ctx))
}

func (s *ScheduleService) relevant(t1, t2 string) bool {
	_, ok1 := s.allow[t1]
	_, ok2 := s.allow[t2]
	return ok1 || ok2
}

func teamName(name string) string {
	if name == "" {
		return tbd
	}
	return name
}

func searchLink(event, t1, t2 string) string {
	region := "vct"
	for _, r := range liveRegions {
		if strings.Contains(event, r.marker) {
			region += " " + r.region
			break
		}
	}
	query := strings.ToLower(region + " " + t1 + " " + t2)
	return youtubeSearchURL + url.QueryEscape(query)
}

// groupByTournament keeps the first-occurrence order of tournaments and the
// incoming order of matches within each.
func groupByTournament(records []domain.MatchRecord) []domain.TournamentGroup {
	var groups []domain.TournamentGroup
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.Tournament]
		if !ok {
			i = len(groups)
			index[r.Tournament] = i
			groups = append(groups, domain.TournamentGroup{Name: r.Tournament})
		}
		groups[i].Matches = append(groups[i].Matches, r)
	}
	return groups
}

func ScheduleDoc(s domain.Schedule) markup.Doc {
	var d markup.Doc
	if s.Empty() {
		d.Add(markup.B(markup.Text("No live or upcoming tier-1 matches.")))
		return d
	}

	for _, g := range s.Groups {
		d.Add(markup.B(markup.Text("[" + g.Name + "]")))
		for _, m := range g.Matches {
			title := markup.Text(m.TeamA + " vs " + m.TeamB)
			if m.Status == domain.StatusLive {
				d.Add(markup.A(m.Link, title), markup.Text(" "), markup.B(markup.Text("(Live)")))
				continue
			}
			d.Add(title, markup.Text(" "), markup.I(markup.Text("("+m.StartsAt.Format("01.02 15:04")+")")))
		}
		d.Blank()
	}
	d.Add(footer(s.GeneratedAt))
	return d
}
