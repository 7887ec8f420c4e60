package service

import (
	"context"
	"strings"
	"testing"

	"esports-digest/internal/api"
	"esports-digest/internal/domain"
	"esports-digest/internal/markup"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduleService(feed *fakeMatchFeed, teams ...string) *ScheduleService {
	s := NewScheduleService(feed, fixedClock(), zerolog.Nop())
	if len(teams) > 0 {
		s.allow = allowList(teams)
	}
	return s
}

func render(d markup.Doc) string {
	return markup.HTML{}.Render(d)
}

func TestSchedule_LiveMatchGetsRegionSearchLink(t *testing.T) {
	feed := &fakeMatchFeed{
		liveOK: true,
		live:   []api.Segment{{Team1: "A", Team2: "B", MatchEvent: "EMEA Showdown"}},
		upOK:   true,
	}
	s := newScheduleService(feed, "A", "B")

	out := render(s.Digest(context.Background()))

	assert.Contains(t, out, "<a href='https://www.youtube.com/results?search_query=vct+emea+a+b'>A vs B</a> <b>(Live)</b>")
	assert.Contains(t, out, "<b>[EMEA Showdown]</b>")
}

func TestSchedule_UpcomingMatchShowsStartTime(t *testing.T) {
	feed := &fakeMatchFeed{
		liveOK:   true,
		upOK:     true,
		upcoming: []api.Segment{{Team1: "Sentinels", Team2: "LOUD", MatchEvent: "VCT Americas", UnixTimestamp: "2026-03-01 12:00:00"}},
	}
	s := newScheduleService(feed)

	sched := s.Schedule(context.Background())
	require.Len(t, sched.Groups, 1)
	require.Len(t, sched.Groups[0].Matches, 1)
	assert.Equal(t, domain.StatusUpcoming, sched.Groups[0].Matches[0].Status)

	out := render(ScheduleDoc(sched))
	assert.Contains(t, out, "Sentinels vs LOUD <i>(03.01 21:00)</i>")
	assert.NotContains(t, out, "(Live)")
}

func TestSchedule_PastMatchesExcludedBoundaryInclusive(t *testing.T) {
	feed := &fakeMatchFeed{
		upOK: true,
		upcoming: []api.Segment{
			{Team1: "DRX", Team2: "T1", MatchEvent: "Pacific", UnixTimestamp: "2026-03-01 09:59:59"},
			{Team1: "Gen.G", Team2: "T1", MatchEvent: "Pacific", UnixTimestamp: "2026-03-01 10:00:00"},
		},
	}
	s := newScheduleService(feed)

	sched := s.Schedule(context.Background())
	require.Len(t, sched.Groups, 1)
	require.Len(t, sched.Groups[0].Matches, 1)
	assert.Equal(t, "Gen.G", sched.Groups[0].Matches[0].TeamA)
	assert.Equal(t, testNow.Unix(), sched.Groups[0].Matches[0].SortKey)
}

func TestSchedule_AllowListNeedsOneTeam(t *testing.T) {
	feed := &fakeMatchFeed{
		liveOK: true,
		live: []api.Segment{
			{Team1: "Nobody", Team2: "Also Nobody", MatchEvent: "Challengers"},
			{Team1: "Nobody", Team2: "FNATIC", MatchEvent: "Challengers"},
			{Team1: "fnatic", Team2: "Nobody", MatchEvent: "Challengers"},
		},
	}
	s := newScheduleService(feed)

	sched := s.Schedule(context.Background())
	require.Len(t, sched.Groups, 1)
	require.Len(t, sched.Groups[0].Matches, 1)
	assert.Equal(t, "FNATIC", sched.Groups[0].Matches[0].TeamB)
}

func TestSchedule_OrderingAndGrouping(t *testing.T) {
	feed := &fakeMatchFeed{
		liveOK: true,
		live: []api.Segment{
			{Team1: "DRX", Team2: "T1", MatchEvent: "Pacific"},
			{Team1: "LOUD", Team2: "NRG", MatchEvent: "Americas"},
		},
		upOK: true,
		upcoming: []api.Segment{
			{Team1: "FNATIC", Team2: "Team Liquid", MatchEvent: "EMEA", UnixTimestamp: "2026-03-02 10:00:00"},
			{Team1: "Paper Rex", Team2: "TALON", MatchEvent: "Pacific", UnixTimestamp: "2026-03-01 11:00:00"},
			{Team1: "MIBR", Team2: "FURIA", MatchEvent: "Americas", UnixTimestamp: "2026-03-03 10:00:00"},
		},
	}
	s := newScheduleService(feed)

	sched := s.Schedule(context.Background())

	names := make([]string, 0, len(sched.Groups))
	for _, g := range sched.Groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Pacific", "Americas", "EMEA"}, names)

	pacific := sched.Groups[0].Matches
	require.Len(t, pacific, 2)
	assert.Equal(t, domain.StatusLive, pacific[0].Status)
	assert.Equal(t, "Paper Rex", pacific[1].TeamA)

	americas := sched.Groups[1].Matches
	require.Len(t, americas, 2)
	assert.Equal(t, "LOUD", americas[0].TeamA)
	assert.Equal(t, "MIBR", americas[1].TeamA)

	for _, g := range sched.Groups {
		for i := 1; i < len(g.Matches); i++ {
			assert.LessOrEqual(t, g.Matches[i-1].SortKey, g.Matches[i].SortKey)
		}
	}
}

func TestSchedule_LiveOrderIsStable(t *testing.T) {
	feed := &fakeMatchFeed{
		liveOK: true,
		live: []api.Segment{
			{Team1: "DRX", Team2: "T1", MatchEvent: "Pacific"},
			{Team1: "Gen.G", Team2: "TALON", MatchEvent: "Pacific"},
			{Team1: "Paper Rex", Team2: "TALON", MatchEvent: "Pacific"},
		},
	}
	s := newScheduleService(feed)

	matches := s.Schedule(context.Background()).Groups[0].Matches
	require.Len(t, matches, 3)
	assert.Equal(t, []string{"DRX", "Gen.G", "Paper Rex"}, []string{matches[0].TeamA, matches[1].TeamA, matches[2].TeamA})
}

func TestSchedule_PartialRecordsDroppedSilently(t *testing.T) {
	feed := &fakeMatchFeed{
		upOK: true,
		upcoming: []api.Segment{
			{Team1: "DRX", Team2: "T1", MatchEvent: "Pacific"},
			{Team1: "DRX", Team2: "T1", MatchEvent: "Pacific", UnixTimestamp: "soon"},
			{Team1: "T1", MatchEvent: "Pacific", UnixTimestamp: "2026-03-05 10:00:00"},
		},
	}
	s := newScheduleService(feed)

	sched := s.Schedule(context.Background())
	require.Len(t, sched.Groups, 1)
	require.Len(t, sched.Groups[0].Matches, 1)
	assert.Equal(t, "TBD", sched.Groups[0].Matches[0].TeamB)
}

func TestSchedule_AbsentFeedsYieldFixedMessage(t *testing.T) {
	s := newScheduleService(&fakeMatchFeed{})

	sched := s.Schedule(context.Background())
	assert.True(t, sched.Empty())
	assert.Equal(t, "<b>No live or upcoming tier-1 matches.</b>", render(ScheduleDoc(sched)))
}

func TestSchedule_OneAbsentFeedDoesNotAbort(t *testing.T) {
	feed := &fakeMatchFeed{
		liveOK: false,
		upOK:   true,
		upcoming: []api.Segment{
			{Team1: "DRX", Team2: "T1", MatchEvent: "Pacific", UnixTimestamp: "2026-03-05 10:00:00"},
		},
	}
	s := newScheduleService(feed)

	assert.False(t, s.Schedule(context.Background()).Empty())
}

func TestScheduleDoc_FullRender(t *testing.T) {
	feed := &fakeMatchFeed{
		liveOK: true,
		live:   []api.Segment{{Team1: "Sentinels", Team2: "LOUD", MatchEvent: "Champions Tour Americas"}},
		upOK:   true,
		upcoming: []api.Segment{
			{Team1: "DRX", Team2: "T1", MatchEvent: "Champions Tour Pacific", UnixTimestamp: "2026-03-02 08:00:00"},
		},
	}
	s := newScheduleService(feed)

	want := strings.Join([]string{
		"<b>[Champions Tour Americas]</b>",
		"<a href='https://www.youtube.com/results?search_query=vct+americas+sentinels+loud'>Sentinels vs LOUD</a> <b>(Live)</b>",
		"",
		"<b>[Champions Tour Pacific]</b>",
		"DRX vs T1 <i>(03.02 17:00)</i>",
		"",
		"<code>#updated 26.03.01 19:00:00</code>",
	}, "\n")

	assert.Equal(t, want, render(s.Digest(context.Background())))
}

func TestSearchLink(t *testing.T) {
	tests := []struct {
		event string
		want  string
	}{
		{"Champions Tour Americas", "vct+americas+a+b"},
		{"EMEA Americas crossover", "vct+americas+a+b"},
		{"Pacific Stage 1", "vct+pacific+a+b"},
		{"CN Evolution", "vct+cn+a+b"},
		{"Masters Toronto", "vct+a+b"},
	}

	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			assert.Equal(t, youtubeSearchURL+tt.want, searchLink(tt.event, "A", "B"))
		})
	}
}
