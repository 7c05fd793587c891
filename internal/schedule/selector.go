package schedule

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/omarshaarawi/scorebot/internal/league"
	"github.com/omarshaarawi/scorebot/internal/models"
)

const (
	DefaultRecentWindow = 18 * time.Hour

	scoreLive   = 100
	scoreRecent = 50
	scoreAny    = 1
)

// Fetcher returns one league's events for one UTC day.
type Fetcher interface {
	FetchScoreboard(ctx context.Context, key league.Key, day time.Time) ([]models.Event, error)
}

type Options struct {
	RecentWindow time.Duration
	GraceWindow  time.Duration
	Now          func() time.Time
}

type Selector struct {
	fetcher Fetcher
	recent  time.Duration
	grace   time.Duration
	now     func() time.Time
}

func NewSelector(fetcher Fetcher, opts Options) *Selector {
	if opts.RecentWindow <= 0 {
		opts.RecentWindow = DefaultRecentWindow
	}
	if opts.GraceWindow <= 0 {
		opts.GraceWindow = DefaultGraceWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Selector{
		fetcher: fetcher,
		recent:  opts.RecentWindow,
		grace:   opts.GraceWindow,
		now:     opts.Now,
	}
}

// Now is the clock the selector scores against.
func (s *Selector) Now() time.Time {
	return s.now()
}

// Select walks days in order, one fetch at a time, and keeps the best
// scoring day. It stops at the first day with a live game. A fetch error on
// any day fails the whole selection.
func (s *Selector) Select(ctx context.Context, key league.Key, days []time.Time) (models.DaySelection, error) {
	now := s.now()

	var (
		best      models.DaySelection
		bestScore int
	)

	for _, day := range days {
		events, err := s.fetcher.FetchScoreboard(ctx, key, day)
		if err != nil {
			return models.DaySelection{}, err
		}
		if len(events) == 0 {
			continue
		}

		list := SortByStart(events)
		hasLive, hasRecent := s.assess(list, now)
		score := scoreAny
		if hasLive {
			score += scoreLive
		}
		if hasRecent {
			score += scoreRecent
		}

		slog.Debug("Scored day", "league", key, "day", day.Format(DateLayout), "events", len(list), "score", score)

		if !best.Found || score > bestScore {
			best = models.DaySelection{Found: true, Day: day, Events: list}
			bestScore = score
		}
		if hasLive {
			break
		}
	}

	if !best.Found {
		return models.DaySelection{}, nil
	}

	best.Pick = Pick(best.Events, now, s.grace)
	return best, nil
}

func (s *Selector) assess(events []models.Event, now time.Time) (hasLive, hasRecent bool) {
	since := now.Add(-s.recent)
	for _, e := range events {
		live := StateOf(e) == models.StateIn
		if live {
			hasLive = true
			hasRecent = true
			continue
		}
		if start, ok := ParseStart(e.Date); ok && !start.After(now) && !start.Before(since) {
			hasRecent = true
		}
	}
	return hasLive, hasRecent
}

// SortByStart returns a copy of events ordered by start time. Events with
// no parseable start sort as the Unix epoch, ahead of everything else.
func SortByStart(events []models.Event) []models.Event {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return startOrEpoch(sorted[i]).Before(startOrEpoch(sorted[j]))
	})
	return sorted
}

func startOrEpoch(e models.Event) time.Time {
	if start, ok := ParseStart(e.Date); ok {
		return start
	}
	return time.Unix(0, 0)
}
