package constants

import "time"

const (
	SeasonCacheTTL = 30 * time.Minute
	SeasonEndGrace = 20*time.Hour + 30*time.Minute
	LoLLookahead   = 10 * 24 * time.Hour
	MatchHistory   = 10
)

const (
	ExternalAPITimeout = 10 * time.Second
	CaptureTimeout     = 45 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultSeasonYear = 2026
	DefaultRegion     = "kr"
)
