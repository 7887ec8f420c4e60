package api

import (
	"context"

	"esports-digest/internal/config"
	"esports-digest/internal/feed"
)

const SourceLoL = "lolesports"

// League is one tracked LoL competition.
type League struct {
	Name string
	ID   string
}

// Leagues are listed in the order their schedules are requested.
var Leagues = []League{
	{Name: "First Stand", ID: "113464388705111224"},
	{Name: "LCK", ID: "98767991310872058"},
	{Name: "MSI", ID: "98767991325878492"},
	{Name: "Worlds", ID: "98767975604431411"},
}

type LoLClient struct {
	feed    *feed.Client
	apiKey  string
	baseURL string
}

func NewLoLClient(cfg *config.Config, f *feed.Client) *LoLClient {
	return &LoLClient{feed: f, apiKey: cfg.LoLAPIKey, baseURL: cfg.LoLBaseURL}
}

func (c *LoLClient) GetSchedule(ctx context.Context, leagueID string) (*ScheduleResponse, bool) {
	return feed.Fetch[ScheduleResponse](ctx, c.feed, feed.Request{
		Source:  SourceLoL,
		URL:     c.baseURL + "/persisted/gw/getSchedule",
		Headers: map[string]string{"x-api-key": c.apiKey},
		Query:   map[string]string{"hl": "en-US", "leagueId": leagueID},
	})
}

type ScheduleResponse struct {
	Data struct {
		Schedule struct {
			Events []ScheduleEvent `json:"events"`
		} `json:"schedule"`
	} `json:"data"`
}

type ScheduleEvent struct {
	StartTime string `json:"startTime"`
	State     string `json:"state"`
	League    struct {
		Name string `json:"name"`
	} `json:"league"`
	Match *ScheduleMatch `json:"match"`
}

type ScheduleMatch struct {
	Teams    []ScheduleTeam `json:"teams"`
	Strategy struct {
		Type  string `json:"type"`
		Count int    `json:"count"`
	} `json:"strategy"`
}

type ScheduleTeam struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
