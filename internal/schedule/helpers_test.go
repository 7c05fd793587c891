package schedule

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/omarshaarawi/scorebot/internal/league"
	"github.com/omarshaarawi/scorebot/internal/models"
)

var testNow = time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)

func event(id string, state models.State, start time.Time) models.Event {
	e := models.Event{
		ID:     id,
		Status: &models.Status{Type: &models.StatusType{State: string(state)}},
	}
	if !start.IsZero() {
		e.Date = start.UTC().Format("2006-01-02T15:04Z")
	}
	return e
}

func untimed(id string, state models.State) models.Event {
	return event(id, state, time.Time{})
}

func ids(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchScoreboard(ctx context.Context, key league.Key, day time.Time) ([]models.Event, error) {
	args := m.Called(ctx, key, day)
	events, _ := args.Get(0).([]models.Event)
	return events, args.Error(1)
}

func newTestSelector(fetcher Fetcher) *Selector {
	return NewSelector(fetcher, Options{Now: func() time.Time { return testNow }})
}
