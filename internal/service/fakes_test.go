package service

import (
	"context"
	"sync"
	"time"

	"esports-digest/internal/api"
	"esports-digest/internal/clock"
	"esports-digest/internal/domain"
)

// 2026-03-01 19:00:00 in the reference zone.
var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() clock.Clock { return clock.Fixed(testNow) }

type fakeMatchFeed struct {
	live     []api.Segment
	upcoming []api.Segment
	liveOK   bool
	upOK     bool
}

func (f *fakeMatchFeed) GetLive(ctx context.Context) (*api.SegmentsResponse, bool) {
	return segments(f.live, f.liveOK)
}

func (f *fakeMatchFeed) GetUpcoming(ctx context.Context) (*api.SegmentsResponse, bool) {
	return segments(f.upcoming, f.upOK)
}

func segments(s []api.Segment, ok bool) (*api.SegmentsResponse, bool) {
	if !ok {
		return nil, false
	}
	resp := &api.SegmentsResponse{}
	resp.Data.Segments = s
	return resp, true
}

type fakeLoLFeed struct {
	mu     sync.Mutex
	events map[string][]api.ScheduleEvent
	calls  []string
}

func (f *fakeLoLFeed) GetSchedule(ctx context.Context, leagueID string) (*api.ScheduleResponse, bool) {
	f.mu.Lock()
	f.calls = append(f.calls, leagueID)
	f.mu.Unlock()

	events, ok := f.events[leagueID]
	if !ok {
		return nil, false
	}
	resp := &api.ScheduleResponse{}
	resp.Data.Schedule.Events = events
	return resp, true
}

type fakeSeasonFeed struct {
	mu      sync.Mutex
	calls   int
	seasons []api.Season
	ok      bool
	block   chan struct{}
}

func (f *fakeSeasonFeed) GetCompetitiveSeasons(ctx context.Context) (*api.SeasonsResponse, bool) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, false
		}
	}
	if !f.ok {
		return nil, false
	}
	return &api.SeasonsResponse{Data: f.seasons}, true
}

func (f *fakeSeasonFeed) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePlayerFeed struct {
	account *api.AccountResponse
	mmr     *api.MMRResponse
	history *api.MMRHistoryResponse
	matches *api.MatchesResponse

	mu             sync.Mutex
	matchesRegion  string
	downstreamHits int
}

func (f *fakePlayerFeed) GetAccount(ctx context.Context, name, tag string) (*api.AccountResponse, bool) {
	return f.account, f.account != nil
}

func (f *fakePlayerFeed) GetMMR(ctx context.Context, region, puuid string) (*api.MMRResponse, bool) {
	f.hit()
	return f.mmr, f.mmr != nil
}

func (f *fakePlayerFeed) GetMMRHistory(ctx context.Context, region, puuid string) (*api.MMRHistoryResponse, bool) {
	f.hit()
	return f.history, f.history != nil
}

func (f *fakePlayerFeed) GetMatches(ctx context.Context, region, name, tag string) (*api.MatchesResponse, bool) {
	f.hit()
	f.mu.Lock()
	f.matchesRegion = region
	f.mu.Unlock()
	return f.matches, f.matches != nil
}

func (f *fakePlayerFeed) hit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downstreamHits++
}

type fakeSeasons struct {
	countdown domain.SeasonCountdown
	known     bool
}

func (f fakeSeasons) Countdown(ctx context.Context) (domain.SeasonCountdown, bool) {
	return f.countdown, f.known
}

type fakeCapturer struct {
	png []byte
	err error
	got api.CaptureRequest
}

func (f *fakeCapturer) Capture(ctx context.Context, r api.CaptureRequest) ([]byte, error) {
	f.got = r
	return f.png, f.err
}

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.In(clock.Reference)
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
