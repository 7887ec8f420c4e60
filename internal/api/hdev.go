package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"esports-digest/internal/config"
	"esports-digest/internal/constants"
	"esports-digest/internal/feed"

	"github.com/valyala/fasthttp"
)

const SourceHDev = "henrikdev"

type HDevClient struct {
	feed        *feed.Client
	apiKey      string
	baseURL     string
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Bucket    string `json:"bucket"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewHDevClient(cfg *config.Config, f *feed.Client) *HDevClient {
	return &HDevClient{
		feed:    f,
		apiKey:  cfg.HDevAPIKey,
		baseURL: cfg.HDevBaseURL,
		rateLimit: RateLimitInfo{
			Limit:     90,
			Remaining: 90,
			Reset:     60,
			UpdatedAt: time.Now(),
		},
	}
}

func (c *HDevClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *HDevClient) updateRateLimit(h *fasthttp.ResponseHeader) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if bucket := string(h.Peek("X-Ratelimit-Bucket")); bucket != "" {
		c.rateLimit.Bucket = bucket
	}
	if val, ok := headerInt(h, "X-Ratelimit-Limit"); ok {
		c.rateLimit.Limit = val
	}
	if val, ok := headerInt(h, "X-Ratelimit-Remaining"); ok {
		c.rateLimit.Remaining = val
	}
	if val, ok := headerInt(h, "X-Ratelimit-Reset"); ok {
		c.rateLimit.Reset = val
	}
	c.rateLimit.UpdatedAt = time.Now()
}

func headerInt(h *fasthttp.ResponseHeader, key string) (int, bool) {
	raw := string(h.Peek(key))
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return val, true
}

func (c *HDevClient) request(path string, query map[string]string) feed.Request {
	return feed.Request{
		Source:  SourceHDev,
		URL:     c.baseURL + path,
		Headers: map[string]string{"Authorization": c.apiKey, "Accept": "*/*"},
		Query:   query,
		Inspect: c.updateRateLimit,
	}
}

func (c *HDevClient) GetAccount(ctx context.Context, name, tag string) (*AccountResponse, bool) {
	path := fmt.Sprintf("/valorant/v1/account/%s/%s", url.PathEscape(name), url.PathEscape(tag))
	return feed.Fetch[AccountResponse](ctx, c.feed, c.request(path, nil))
}

func (c *HDevClient) GetMMR(ctx context.Context, region, puuid string) (*MMRResponse, bool) {
	path := fmt.Sprintf("/valorant/v3/by-puuid/mmr/%s/pc/%s", region, puuid)
	return feed.Fetch[MMRResponse](ctx, c.feed, c.request(path, nil))
}

func (c *HDevClient) GetMMRHistory(ctx context.Context, region, puuid string) (*MMRHistoryResponse, bool) {
	path := fmt.Sprintf("/valorant/v2/by-puuid/mmr-history/%s/pc/%s", region, puuid)
	return feed.Fetch[MMRHistoryResponse](ctx, c.feed, c.request(path, nil))
}

// GetMatches returns the most recent competitive matches of name#tag,
// newest first.
func (c *HDevClient) GetMatches(ctx context.Context, region, name, tag string) (*MatchesResponse, bool) {
	path := fmt.Sprintf("/valorant/v3/matches/%s/%s/%s", region, url.PathEscape(name), url.PathEscape(tag))
	query := map[string]string{
		"mode": "competitive",
		"size": strconv.Itoa(constants.MatchHistory),
	}
	return feed.Fetch[MatchesResponse](ctx, c.feed, c.request(path, query))
}

type AccountResponse struct {
	Status int         `json:"status"`
	Data   AccountData `json:"data"`
}

type AccountData struct {
	Puuid        string `json:"puuid"`
	Region       string `json:"region"`
	AccountLevel int    `json:"account_level"`
	Name         string `json:"name"`
	Tag          string `json:"tag"`
}

type MMRResponse struct {
	Status int     `json:"status"`
	Data   MMRData `json:"data"`
}

type MMRData struct {
	Current struct {
		Tier *struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"tier"`
		RR *int `json:"rr"`
	} `json:"current"`
}

type MMRHistoryResponse struct {
	Status int `json:"status"`
	Data   struct {
		History []MMRHistoryItem `json:"history"`
	} `json:"data"`
}

type MMRHistoryItem struct {
	MatchID    string `json:"match_id"`
	LastChange int    `json:"last_change"`
	RR         int    `json:"rr"`
}

type MatchesResponse struct {
	Status int     `json:"status"`
	Data   []Match `json:"data"`
}

type Match struct {
	Metadata *MatchMetadata `json:"metadata"`
	Players  struct {
		AllPlayers []MatchPlayer `json:"all_players"`
	} `json:"players"`
	// Keyed by lower-case team name, "red" or "blue".
	Teams map[string]MatchTeam `json:"teams"`
}

type MatchMetadata struct {
	MatchID      string `json:"matchid"`
	Map          string `json:"map"`
	GameStart    int64  `json:"game_start"`
	RoundsPlayed *int   `json:"rounds_played"`
}

type MatchPlayer struct {
	Puuid string `json:"puuid"`
	Name  string `json:"name"`
	Tag   string `json:"tag"`
	Team  string `json:"team"`
	Stats struct {
		Kills   int `json:"kills"`
		Deaths  int `json:"deaths"`
		Assists int `json:"assists"`
		Score   int `json:"score"`
	} `json:"stats"`
}

type MatchTeam struct {
	HasWon     bool `json:"has_won"`
	RoundsWon  int  `json:"rounds_won"`
	RoundsLost int  `json:"rounds_lost"`
}
