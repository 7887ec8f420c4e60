package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"esports-digest/internal/clock"
	"esports-digest/internal/config"
	"esports-digest/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(month time.Month) time.Time {
	return time.Date(2026, month, 15, 12, 0, 0, 0, clock.Reference)
}

func TestResolveLeaguePath_Finals(t *testing.T) {
	tests := []struct {
		month time.Month
		want  domain.LeaguePath
	}{
		{time.January, "VCT/2026/Stage_1/Masters"},
		{time.April, "VCT/2026/Stage_1/Masters"},
		{time.May, "VCT/2026/Stage_2/Masters"},
		{time.July, "VCT/2026/Stage_2/Masters"},
		{time.August, "VCT/2026/Champions"},
		{time.December, "VCT/2026/Champions"},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLeaguePath(RegionFinals, day(tt.month), 2026))
		})
	}
}

func TestResolveLeaguePath_Regions(t *testing.T) {
	tests := []struct {
		region string
		month  time.Month
		want   domain.LeaguePath
	}{
		{"Pacific", time.January, "VCT/2026/Pacific_League/Kickoff"},
		{"Americas", time.February, "VCT/2026/Americas_League/Kickoff"},
		{"EMEA", time.March, "VCT/2026/EMEA_League/Stage_1"},
		{"China", time.May, "VCT/2026/China_League/Stage_1"},
		{"Pacific", time.June, "VCT/2026/Pacific_League/Stage_2"},
		{"Americas", time.August, "VCT/2026/Americas_League/Stage_2"},
		{"EMEA", time.November, "VCT/2026/EMEA_League/Stage_2"},
		{"Atlantis", time.March, "VCT/2026/Pacific_League/Stage_1"},
		{"", time.January, "VCT/2026/Pacific_League/Kickoff"},
	}

	for _, tt := range tests {
		t.Run(tt.region+"/"+tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLeaguePath(tt.region, day(tt.month), 2026))
		})
	}
}

func TestResolveLeaguePath_TotalOverAllMonths(t *testing.T) {
	for _, region := range append([]string{"unknown"}, BracketRegions...) {
		for m := time.January; m <= time.December; m++ {
			assert.NotEmpty(t, ResolveLeaguePath(region, day(m), 2027))
			assert.Contains(t, string(ResolveLeaguePath(region, day(m), 2027)), "VCT/2027/")
		}
	}
}

func TestBracketService_Success(t *testing.T) {
	capturer := &fakeCapturer{png: []byte("png")}
	s := NewBracketService(capturer, fixedClock(), &config.Config{SeasonYear: 2026}, zerolog.Nop())

	img, err := s.Bracket(context.Background(), "EMEA")
	require.NoError(t, err)

	assert.Equal(t, domain.LeaguePath("VCT/2026/EMEA_League/Stage_1"), img.Path)
	assert.Equal(t, "https://liquipedia.net/valorant/VCT/2026/EMEA_League/Stage_1", capturer.got.URL)
	assert.Equal(t, ".brkts-bracket", capturer.got.Selector)
	assert.Equal(t, []byte("png"), img.PNG)
	assert.Equal(t,
		"<b><a href='https://liquipedia.net/valorant/VCT/2026/EMEA_League/Stage_1'>EMEA current bracket</a></b>",
		render(img.Caption))
}

func TestBracketService_Failure(t *testing.T) {
	capturer := &fakeCapturer{err: errors.New("render timeout")}
	s := NewBracketService(capturer, fixedClock(), &config.Config{SeasonYear: 2026}, zerolog.Nop())

	img, err := s.Bracket(context.Background(), RegionFinals)
	assert.Nil(t, img)
	assert.ErrorIs(t, err, ErrBracketUnavailable)
	assert.Equal(t, "Could not fetch the bracket.", UserMessage(err))
	assert.Equal(t, "https://liquipedia.net/valorant/VCT/2026/Stage_1/Masters", capturer.got.URL)
}
