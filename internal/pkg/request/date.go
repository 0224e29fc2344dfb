package request

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = time.DateOnly

// ParseDate accepts YYYY-MM-DD, or an RFC3339 timestamp whose time of day is
// dropped. The result is midnight UTC of the calendar date as written.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders a calendar date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
