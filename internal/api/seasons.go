package api

import (
	"context"

	"esports-digest/internal/config"
	"esports-digest/internal/feed"
)

const SourceSeasons = "valorant_seasons"

type SeasonsClient struct {
	feed *feed.Client
	url  string
}

func NewSeasonsClient(cfg *config.Config, f *feed.Client) *SeasonsClient {
	return &SeasonsClient{feed: f, url: cfg.SeasonsURL}
}

func (c *SeasonsClient) GetCompetitiveSeasons(ctx context.Context) (*SeasonsResponse, bool) {
	return feed.Fetch[SeasonsResponse](ctx, c.feed, feed.Request{
		Source: SourceSeasons,
		URL:    c.url,
	})
}

type SeasonsResponse struct {
	Status int      `json:"status"`
	Data   []Season `json:"data"`
}

type Season struct {
	UUID      string `json:"uuid"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	SeasonID  string `json:"seasonUuid"`
}
