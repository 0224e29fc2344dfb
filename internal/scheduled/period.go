package scheduled

import "time"

const day = 24 * time.Hour

// Day truncates t to its calendar date in t's own location and returns that
// date as midnight UTC. Every date the scheduler compares goes through Day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Period is a closed interval of calendar days.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod truncates both endpoints with Day. It does not check ordering.
func NewPeriod(start, end time.Time) Period {
	return Period{Start: Day(start), End: Day(end)}
}

// Valid reports whether End is not before Start.
func (p Period) Valid() bool {
	return !p.End.Before(p.Start)
}

// Overlaps reports whether p and o share at least one day.
// Touching periods (one ends the day the other starts) overlap.
func (p Period) Overlaps(o Period) bool {
	return !p.Start.After(o.End) && !o.Start.After(p.End)
}

// Contains reports whether the day d falls inside p.
func (p Period) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Span is the number of days between Start and End. A single-day period has span 0.
func (p Period) Span() int {
	return daysBetween(p.Start, p.End)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / day)
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Today returns the current calendar date in loc, as produced by Day.
func Today(c Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Day(c.Now().In(loc))
}
