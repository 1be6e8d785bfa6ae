package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ClockLayout renders kickoff times for thread titles (e.g. 7:00 PM EST).
const ClockLayout = "3:04 PM MST"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FromEpoch converts epoch seconds to a UTC instant.
func FromEpoch(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// SameMinute reports whether two instants fall in the same UTC minute.
func SameMinute(a, b time.Time) bool {
	return a.UTC().Truncate(time.Minute).Equal(b.UTC().Truncate(time.Minute))
}

// BeforeMinute reports whether a falls in an earlier minute than b.
func BeforeMinute(a, b time.Time) bool {
	return a.UTC().Truncate(time.Minute).Before(b.UTC().Truncate(time.Minute))
}

// FormatClock renders t in loc using ClockLayout; nil loc means UTC.
func FormatClock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(ClockLayout)
}

// ResolveLocation returns a location for a tz name, or nil if invalid.
func ResolveLocation(tz string) *time.Location {
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	return loc
}
