package service

import (
	"errors"
	"time"

	"esports-digest/internal/clock"
	"esports-digest/internal/markup"
)

func footer(t time.Time) markup.Node {
	return markup.Code("#updated " + clock.Stamp(t))
}

// UserMessage is the text shown for a failed command. Only failures the
// user can act on are spelled out.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrNoRecentMatches),
		errors.Is(err, ErrMalformedRiotID):
		return err.Error()
	case errors.Is(err, ErrBracketUnavailable):
		return "Could not fetch the bracket."
	default:
		return "Something went wrong, try again later."
	}
}

func ErrorDoc(err error) markup.Doc {
	return markup.Single(markup.Text(UserMessage(err)))
}
