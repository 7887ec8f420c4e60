package service

import (
	"context"
	"strings"
	"testing"

	"esports-digest/internal/api"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lolEvent(start string, a, b string, bestOf int) api.ScheduleEvent {
	match := &api.ScheduleMatch{Teams: []api.ScheduleTeam{{Code: a}, {Code: b}}}
	match.Strategy.Count = bestOf
	return api.ScheduleEvent{StartTime: start, Match: match}
}

func leagueID(name string) string {
	for _, l := range api.Leagues {
		if l.Name == name {
			return l.ID
		}
	}
	return ""
}

func TestLoLSchedule_WindowAndFilters(t *testing.T) {
	feed := &fakeLoLFeed{events: map[string][]api.ScheduleEvent{
		leagueID("LCK"): {
			lolEvent("2026-02-28T14:59:59Z", "T1", "GEN", 3),  // before start of today
			lolEvent("2026-02-28T15:00:00Z", "T1", "HLE", 3),  // exactly start of today
			lolEvent("2026-03-01T11:00:00Z", "T1", "DK", 3),   // today
			lolEvent("2026-03-05T08:00:00Z", "TBD", "KT", 3),  // undecided
			lolEvent("2026-03-11T09:59:59Z", "GEN", "KT", 3),  // inside window
			lolEvent("2026-03-11T10:00:00Z", "GEN", "HLE", 3), // window end
			{StartTime: "2026-03-03T08:00:00Z"},                // no match block
			lolEvent("", "DRX", "BRO", 3),
		},
	}}
	s := NewLoLScheduleService(feed, fixedClock(), zerolog.Nop())

	matches := s.Matches(context.Background())
	require.Len(t, matches, 2)

	assert.Equal(t, "DK", matches[0].TeamB)
	assert.True(t, matches[0].Today)
	assert.Equal(t, "KT", matches[1].TeamB)
	assert.False(t, matches[1].Today)
	assert.Len(t, feed.calls, len(api.Leagues))
}

func TestLoLSchedule_SortsAcrossLeagues(t *testing.T) {
	feed := &fakeLoLFeed{events: map[string][]api.ScheduleEvent{
		leagueID("MSI"): {
			lolEvent("2026-03-02T08:00:00Z", "BLG", "G2", 5),
		},
		leagueID("LCK"): {
			lolEvent("2026-03-02T08:00:00Z", "T1", "GEN", 3),
			lolEvent("2026-03-02T06:00:00Z", "DK", "KT", 3),
		},
	}}
	s := NewLoLScheduleService(feed, fixedClock(), zerolog.Nop())

	matches := s.Matches(context.Background())
	require.Len(t, matches, 3)
	assert.Equal(t, []string{"LCK", "LCK", "MSI"}, []string{matches[0].League, matches[1].League, matches[2].League})
	assert.Equal(t, "DK", matches[0].TeamA)
	assert.Equal(t, "T1", matches[1].TeamA)
}

func TestLoLScheduleDoc(t *testing.T) {
	feed := &fakeLoLFeed{events: map[string][]api.ScheduleEvent{
		leagueID("First Stand"): {
			lolEvent("2026-03-01T11:00:00Z", "HLE", "BLG", 5),
		},
		leagueID("LCK"): {
			lolEvent("2026-03-02T08:00:00Z", "T1", "GEN", 3),
			lolEvent("2026-03-02T10:00:00Z", "DK", "KT", 3),
		},
	}}
	s := NewLoLScheduleService(feed, fixedClock(), zerolog.Nop())

	want := strings.Join([]string{
		"<b>[First Stand 2026]</b>",
		"<u>HLE vs BLG <b>(Bo5)</b> <i>(03.01 20:00)</i></u>",
		"",
		"<b>[LCK 2026]</b>",
		"T1 vs GEN <b>(Bo3)</b> <i>(03.02 17:00)</i>",
		"DK vs KT <b>(Bo3)</b> <i>(03.02 19:00)</i>",
		"",
		"<code>#updated 26.03.01 19:00:00</code>",
	}, "\n")

	assert.Equal(t, want, render(s.Digest(context.Background())))
}

func TestLoLSchedule_NothingScheduled(t *testing.T) {
	s := NewLoLScheduleService(&fakeLoLFeed{}, fixedClock(), zerolog.Nop())

	assert.Empty(t, s.Matches(context.Background()))
	assert.Equal(t, "<b>No scheduled matches.</b>", render(s.Digest(context.Background())))
}
