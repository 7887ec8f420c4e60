package domain

import (
	"strconv"
	"time"
)

type MatchStatus string

const (
	StatusLive     MatchStatus = "live"
	StatusUpcoming MatchStatus = "upcoming"
)

// MatchRecord is one Valorant match after filtering. Live records carry a
// zero SortKey and no start time, so they order ahead of every upcoming one.
type MatchRecord struct {
	Tournament string
	TeamA      string
	TeamB      string
	Status     MatchStatus
	StartsAt   *time.Time
	SortKey    int64
	Link       string
}

type TournamentGroup struct {
	Name    string
	Matches []MatchRecord
}

type Schedule struct {
	Groups      []TournamentGroup
	GeneratedAt time.Time
}

func (s Schedule) Empty() bool {
	return len(s.Groups) == 0
}

type LoLMatch struct {
	League   string
	Year     int
	TeamA    string
	TeamB    string
	BestOf   int
	StartsAt time.Time
	Today    bool
}

// Title is the group header a match is listed under.
func (m LoLMatch) Title() string {
	return m.League + " " + strconv.Itoa(m.Year)
}

type PlayerAccount struct {
	PUUID  string
	Name   string
	Tag    string
	Region string
}

type RankSnapshot struct {
	Tier  string
	RR    int
	Known bool
}

type RankChangeEntry struct {
	MatchID string
	Delta   int
}

type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLoss Outcome = "LOSS"
	OutcomeDraw Outcome = "DRAW"
)

type MatchPerformance struct {
	MatchID   string
	Kills     int
	Deaths    int
	Assists   int
	Score     int
	Rounds    int
	Map       string
	StartedAt time.Time
	Outcome   Outcome
	RankDelta int
	// Listed is false when the player's team block was missing. The match
	// still counts toward totals but gets no line of its own.
	Listed bool
}

type SeasonCountdown struct {
	EndsAt time.Time
	Days   int
	Hours  int
	Found  bool
}

type PlayerStatsSummary struct {
	Account     PlayerAccount
	Rank        RankSnapshot
	Matches     []MatchPerformance
	TotalKills  int
	TotalDeaths int
	TotalScore  int
	TotalRounds int
	Season      SeasonCountdown
	// SeasonKnown is false when the seasons feed was absent altogether.
	SeasonKnown bool
	GeneratedAt time.Time
}

// KD is kills per death, or raw kills when the player never died.
func (s PlayerStatsSummary) KD() float64 {
	if s.TotalDeaths == 0 {
		return float64(s.TotalKills)
	}
	return float64(s.TotalKills) / float64(s.TotalDeaths)
}

// ACS is the integer average combat score per round.
func (s PlayerStatsSummary) ACS() int {
	if s.TotalRounds == 0 {
		return 0
	}
	return s.TotalScore / s.TotalRounds
}

type LeaguePath string

type ChatDestination struct {
	ID   string
	Name string
}
