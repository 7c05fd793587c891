package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/omarshaarawi/scorebot/internal/schedule"
)

// MaxLookahead bounds user supplied lookaheads; every day is one request.
const MaxLookahead = 30

// Window is what a request asks for: either one explicit day or a
// lookahead from today.
type Window struct {
	Day       time.Time
	Lookahead int
}

func LookaheadWindow(days int) Window {
	return Window{Lookahead: days}
}

func DayWindow(day time.Time) Window {
	return Window{Day: schedule.Day(day)}
}

func (w Window) IsDay() bool {
	return !w.Day.IsZero()
}

// Days expands the window into the candidate days to query.
func (w Window) Days(now time.Time) []time.Time {
	if w.IsDay() {
		return []time.Time{w.Day}
	}
	return schedule.BuildWindow(now, w.Lookahead)
}

// Token is the compact form carried in selection callbacks.
func (w Window) Token() string {
	if w.IsDay() {
		return "d" + w.Day.Format("20060102")
	}
	return "n" + strconv.Itoa(w.Lookahead)
}

func ParseWindowToken(token string) (Window, error) {
	if len(token) < 2 {
		return Window{}, fmt.Errorf("malformed window %q", token)
	}
	switch token[0] {
	case 'd':
		day, err := schedule.ParseDay(token[1:])
		if err != nil {
			return Window{}, err
		}
		return DayWindow(day), nil
	case 'n':
		n, err := strconv.Atoi(token[1:])
		if err != nil || n < 0 || n > MaxLookahead {
			return Window{}, fmt.Errorf("malformed window %q", token)
		}
		return LookaheadWindow(n), nil
	default:
		return Window{}, fmt.Errorf("malformed window %q", token)
	}
}

// ParseWindowArg reads the optional argument of a league command: nothing
// for the default lookahead, a number of days, or a date.
func ParseWindowArg(arg string, defaultLookahead int) (Window, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return LookaheadWindow(defaultLookahead), nil
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 0 || n > MaxLookahead {
			return Window{}, fmt.Errorf("lookahead must be between 0 and %d days", MaxLookahead)
		}
		return LookaheadWindow(n), nil
	}
	day, err := schedule.ParseDay(arg)
	if err != nil {
		return Window{}, err
	}
	return DayWindow(day), nil
}
