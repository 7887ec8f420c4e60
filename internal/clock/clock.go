package clock

import (
	"fmt"
	"time"
)

// Reference is the zone every instant is normalized to before it is
// compared, sorted or rendered.
var Reference = time.FixedZone("KST", 9*60*60)

const (
	StampLayout = "06.01.02 15:04:05"
	FeedLayout  = "2006-01-02 15:04:05"
)

type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time {
	return time.Now().In(Reference)
}

// Fixed always reports the same instant. Used by tests and replays.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f).In(Reference)
}

func ToReference(t time.Time) time.Time {
	return t.In(Reference)
}

// ParseUTC reads a zone-naive timestamp as UTC and converts it to the
// reference zone.
func ParseUTC(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}
	return ToReference(t), nil
}

// ParseRFC3339 converts a zone-tagged RFC3339 timestamp to the reference zone.
func ParseRFC3339(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}
	return ToReference(t), nil
}

// Remaining decomposes target-ref into whole days and leftover hours,
// clamped to zero once target has passed.
func Remaining(target, ref time.Time) (days, hours int) {
	d := target.Sub(ref)
	if d <= 0 {
		return 0, 0
	}
	days = int(d / (24 * time.Hour))
	hours = int((d % (24 * time.Hour)) / time.Hour)
	return days, hours
}

func StartOfDay(t time.Time) time.Time {
	t = ToReference(t)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Reference)
}

func SameDay(a, b time.Time) bool {
	a, b = ToReference(a), ToReference(b)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func Stamp(t time.Time) string {
	return ToReference(t).Format(StampLayout)
}
