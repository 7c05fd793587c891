package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultLookahead = 14
	DateLayout       = "2006-01-02"
	compactLayout    = "20060102"
)

var ErrInvalidDate = errors.New("invalid date")

// BuildWindow lists the UTC calendar days to query: yesterday, today and
// tomorrow first to absorb the gap between local time and the remote day
// boundary, then day+2 through day+lookahead.
func BuildWindow(now time.Time, lookahead int) []time.Time {
	today := Day(now)

	days := make([]time.Time, 0, 3+max(lookahead-1, 0))
	for _, offset := range []int{-1, 0, 1} {
		days = append(days, today.AddDate(0, 0, offset))
	}
	for i := 2; i <= lookahead; i++ {
		days = append(days, today.AddDate(0, 0, i))
	}
	return days
}

// Day truncates t to midnight UTC of its UTC calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts YYYY-MM-DD or YYYYMMDD.
func ParseDay(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{DateLayout, compactLayout} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, value)
}
