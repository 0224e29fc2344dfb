package scheduled

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func period(start, end string) Period {
	return NewPeriod(date(start), date(end))
}

func TestDayTruncates(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	assert.NoError(t, err)

	late := time.Date(2025, time.March, 12, 23, 30, 0, 0, berlin)
	assert.Equal(t, date("2025-03-12"), Day(late))
	assert.Equal(t, time.UTC, Day(late).Location())
	assert.Equal(t, date("2025-03-12"), Day(date("2025-03-12")))
}

func TestPeriodOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Period
		want bool
	}{
		{"shared boundary day", period("2025-03-10", "2025-03-12"), period("2025-03-12", "2025-03-14"), true},
		{"adjacent days", period("2025-03-10", "2025-03-12"), period("2025-03-13", "2025-03-14"), false},
		{"nested", period("2025-03-01", "2025-03-31"), period("2025-03-10", "2025-03-11"), true},
		{"single day inside", period("2025-03-10", "2025-03-12"), period("2025-03-11", "2025-03-11"), true},
		{"disjoint", period("2025-01-01", "2025-01-05"), period("2025-02-01", "2025-02-05"), false},
		{"identical", period("2025-03-10", "2025-03-12"), period("2025-03-10", "2025-03-12"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestPeriodOverlapsItself(t *testing.T) {
	for _, p := range []Period{
		period("2025-03-10", "2025-03-10"),
		period("2025-03-10", "2025-04-10"),
		NewPeriod(time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)),
	} {
		assert.True(t, p.Overlaps(p))
	}
}

func TestPeriodTimeOfDayIgnored(t *testing.T) {
	a := NewPeriod(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC))
	b := NewPeriod(time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC), time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	assert.True(t, a.Overlaps(b))
}

func TestPeriodValidAndSpan(t *testing.T) {
	assert.True(t, period("2025-03-10", "2025-03-10").Valid())
	assert.False(t, period("2025-03-11", "2025-03-10").Valid())
	assert.Equal(t, 0, period("2025-03-10", "2025-03-10").Span())
	assert.Equal(t, 2, period("2025-03-10", "2025-03-12").Span())
	// Span counts calendar days across a DST change.
	assert.Equal(t, 2, period("2025-03-29", "2025-03-31").Span())
}

func TestToday(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	assert.NoError(t, err)

	// 2025-03-12 20:00 UTC is already 2025-03-13 in Tokyo.
	clock := ClockFunc(func() time.Time { return time.Date(2025, 3, 12, 20, 0, 0, 0, time.UTC) })
	assert.Equal(t, date("2025-03-12"), Today(clock, time.UTC))
	assert.Equal(t, date("2025-03-13"), Today(clock, tokyo))
	assert.Equal(t, date("2025-03-12"), Today(clock, nil))
}
