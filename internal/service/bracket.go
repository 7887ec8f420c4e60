package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"esports-digest/internal/api"
	"esports-digest/internal/clock"
	"esports-digest/internal/config"
	"esports-digest/internal/constants"
	"esports-digest/internal/domain"
	"esports-digest/internal/markup"

	"github.com/rs/zerolog"
)

const (
	liquipediaURL   = "https://liquipedia.net/valorant/"
	bracketSelector = ".brkts-bracket"
	RegionFinals    = "Masters/Champions"
)

// BracketRegions are the regions offered to users, in display order.
var BracketRegions = []string{"Pacific", "Americas", "EMEA", "China", RegionFinals}

var leaguePrefixes = map[string]string{
	"Pacific":  "Pacific_League",
	"Americas": "Americas_League",
	"EMEA":     "EMEA_League",
	"China":    "China_League",
}

var ErrBracketUnavailable = errors.New("could not fetch bracket")

// ResolveLeaguePath maps a region and date to the wiki page of the stage
// running at that time. Unknown regions resolve to the Pacific league.
func ResolveLeaguePath(region string, today time.Time, year int) domain.LeaguePath {
	month := today.Month()

	if region == RegionFinals {
		switch {
		case month <= time.April:
			return domain.LeaguePath(fmt.Sprintf("VCT/%d/Stage_1/Masters", year))
		case month <= time.July:
			return domain.LeaguePath(fmt.Sprintf("VCT/%d/Stage_2/Masters", year))
		default:
			return domain.LeaguePath(fmt.Sprintf("VCT/%d/Champions", year))
		}
	}

	prefix, ok := leaguePrefixes[region]
	if !ok {
		prefix = leaguePrefixes["Pacific"]
	}

	stage := "Stage_2"
	switch {
	case month <= time.February:
		stage = "Kickoff"
	case month <= time.May:
		stage = "Stage_1"
	}
	return domain.LeaguePath(fmt.Sprintf("VCT/%d/%s/%s", year, prefix, stage))
}

func PageURL(path domain.LeaguePath) string {
	return liquipediaURL + string(path)
}

type Capturer interface {
	Capture(ctx context.Context, r api.CaptureRequest) ([]byte, error)
}

type BracketImage struct {
	Region  string
	Path    domain.LeaguePath
	PageURL string
	PNG     []byte
	Caption markup.Doc
}

type BracketService struct {
	capturer Capturer
	clock    clock.Clock
	year     int
	logger   zerolog.Logger
}

func NewBracketService(capturer Capturer, clk clock.Clock, cfg *config.Config, logger zerolog.Logger) *BracketService {
	return &BracketService{
		capturer: capturer,
		clock:    clk,
		year:     cfg.SeasonYear,
		logger:   logger,
	}
}

// Path resolves region against the current date.
func (s *BracketService) Path(region string) domain.LeaguePath {
	return ResolveLeaguePath(region, s.clock.Now(), s.year)
}

func (s *BracketService) Bracket(ctx context.Context, region string) (*BracketImage, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.CaptureTimeout)
	defer cancel()

	path := s.Path(region)
	page := PageURL(path)

	s.logger.Info().Str("region", region).Str("path", string(path)).Msg("capturing bracket")

	png, err := s.capturer.Capture(ctx, api.CaptureRequest{
		URL:         page,
		Selector:    bracketSelector,
		Width:       5000,
		Height:      2000,
		ColorScheme: "dark",
		Unclip:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBracketUnavailable, err)
	}

	return &BracketImage{
		Region:  region,
		Path:    path,
		PageURL: page,
		PNG:     png,
		Caption: markup.Single(markup.B(markup.A(page, markup.Text(region+" current bracket")))),
	}, nil
}
