package api

import (
	"context"

	"esports-digest/internal/config"
	"esports-digest/internal/feed"
)

const (
	SourceVLRLive     = "vlr_live"
	SourceVLRUpcoming = "vlr_upcoming"
)

// VLRClient reads the community vlr.gg match feed.
type VLRClient struct {
	feed    *feed.Client
	baseURL string
}

func NewVLRClient(cfg *config.Config, f *feed.Client) *VLRClient {
	return &VLRClient{feed: f, baseURL: cfg.VLRBaseURL}
}

func (c *VLRClient) GetLive(ctx context.Context) (*SegmentsResponse, bool) {
	return c.matches(ctx, SourceVLRLive, "live_score")
}

func (c *VLRClient) GetUpcoming(ctx context.Context) (*SegmentsResponse, bool) {
	return c.matches(ctx, SourceVLRUpcoming, "upcoming")
}

func (c *VLRClient) matches(ctx context.Context, source, q string) (*SegmentsResponse, bool) {
	return feed.Fetch[SegmentsResponse](ctx, c.feed, feed.Request{
		Source: source,
		URL:    c.baseURL + "/match",
		Query:  map[string]string{"q": q},
	})
}

type SegmentsResponse struct {
	Data struct {
		Status   int       `json:"status"`
		Segments []Segment `json:"segments"`
	} `json:"data"`
}

// Segment is one match entry. UnixTimestamp is, despite its name, a
// zone-naive "2006-01-02 15:04:05" string in UTC. Live entries omit it.
type Segment struct {
	Team1         string `json:"team1"`
	Team2         string `json:"team2"`
	MatchEvent    string `json:"match_event"`
	MatchSeries   string `json:"match_series"`
	UnixTimestamp string `json:"unix_timestamp"`
	MatchPage     string `json:"match_page"`
}
