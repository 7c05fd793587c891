package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/omarshaarawi/scorebot/internal/config"
	"github.com/omarshaarawi/scorebot/internal/league"
	"github.com/omarshaarawi/scorebot/internal/metrics"
	"github.com/omarshaarawi/scorebot/internal/models"
	"github.com/omarshaarawi/scorebot/internal/schedule"
)

var ErrGameNotFound = errors.New("game not found")

// ScoreboardAPI is the remote schedule source.
type ScoreboardAPI interface {
	schedule.Fetcher
	FetchSummary(ctx context.Context, key league.Key, eventID string) (*models.SummaryResponse, error)
}

type GameService struct {
	api       ScoreboardAPI
	selector  *schedule.Selector
	recorder  *metrics.Recorder
	lookahead int
}

func NewGameService(api ScoreboardAPI, cfg config.Selection, recorder *metrics.Recorder) *GameService {
	return newGameService(api, cfg, recorder, time.Now)
}

func newGameService(api ScoreboardAPI, cfg config.Selection, recorder *metrics.Recorder, now func() time.Time) *GameService {
	lookahead := cfg.LookaheadDays
	if lookahead < 0 {
		lookahead = schedule.DefaultLookahead
	}
	lookahead = min(lookahead, MaxLookahead)
	return &GameService{
		api: api,
		selector: schedule.NewSelector(api, schedule.Options{
			RecentWindow: cfg.RecentWindow,
			GraceWindow:  cfg.GraceWindow,
			Now:          now,
		}),
		recorder:  recorder,
		lookahead: lookahead,
	}
}

func (s *GameService) DefaultLookahead() int {
	return s.lookahead
}

// Lookup selects the day to show for a league and its main game. A result
// with Found == false means nothing is scheduled in the window.
func (s *GameService) Lookup(ctx context.Context, key league.Key, w Window) (models.DaySelection, error) {
	if _, ok := key.Info(); !ok {
		return models.DaySelection{}, fmt.Errorf("%w: %q", league.ErrInvalidLeague, key)
	}

	started := time.Now()
	sel, err := s.selector.Select(ctx, key, w.Days(s.selector.Now()))
	if err != nil {
		s.recorder.ObserveSelection(key.String(), "error")
		return models.DaySelection{}, fmt.Errorf("error selecting %s games: %w", key, err)
	}

	s.recorder.ObserveSelection(key.String(), outcome(sel))
	if sel.Found {
		slog.Info("Selected day", "league", key, "day", sel.Day.Format(schedule.DateLayout),
			"events", len(sel.Events), "duration", time.Since(started))
	} else {
		slog.Info("No games found", "league", key, "window", w.Token())
	}
	return sel, nil
}

// Find recomputes the selection for the window and returns the game with
// the given event id. The window may have moved since the list was shown,
// in which case ErrGameNotFound is returned.
func (s *GameService) Find(ctx context.Context, key league.Key, w Window, eventID string) (models.Game, models.DaySelection, error) {
	sel, err := s.Lookup(ctx, key, w)
	if err != nil {
		return models.Game{}, models.DaySelection{}, err
	}

	event, ok := sel.EventByID(eventID)
	if !ok {
		return models.Game{}, sel, fmt.Errorf("%w: %s event %s", ErrGameNotFound, key, eventID)
	}
	return schedule.Normalize(event), sel, nil
}

// Describe looks a single event up through the summary endpoint.
func (s *GameService) Describe(ctx context.Context, key league.Key, eventID string) (models.Game, error) {
	summary, err := s.api.FetchSummary(ctx, key, eventID)
	if err != nil {
		return models.Game{}, err
	}
	if summary.Header.ID == "" {
		return models.Game{}, fmt.Errorf("%w: %s event %s", ErrGameNotFound, key, eventID)
	}
	return schedule.Normalize(summary.Event()), nil
}

func outcome(sel models.DaySelection) string {
	switch {
	case !sel.Found:
		return "empty"
	case sel.Pick != nil && schedule.StateOf(*sel.Pick) == models.StateIn:
		return "live"
	default:
		return "found"
	}
}
