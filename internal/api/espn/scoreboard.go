package espn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/omarshaarawi/scorebot/internal/league"
	"github.com/omarshaarawi/scorebot/internal/models"
)

const datesLayout = "20060102"

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

// FetchScoreboard returns the events ESPN lists for one league on one UTC
// calendar day. An empty slice means nothing is scheduled.
func (a *API) FetchScoreboard(ctx context.Context, key league.Key, day time.Time) ([]models.Event, error) {
	info, ok := key.Info()
	if !ok {
		return nil, fmt.Errorf("%w: %q", league.ErrInvalidLeague, key)
	}

	var scoreboard models.ScoreboardResponse
	endpoint := fmt.Sprintf("/%s/%s/scoreboard", info.Sport, info.Competition)
	params := map[string]string{
		"dates": day.UTC().Format(datesLayout),
	}

	if err := a.client.Get(ctx, endpoint, params, &scoreboard); err != nil {
		return nil, fmt.Errorf("fetching %s scoreboard for %s: %w", key, params["dates"], err)
	}

	if scoreboard.Events == nil {
		return []models.Event{}, nil
	}
	return scoreboard.Events, nil
}

// FetchSummary looks up a single event through the summary endpoint.
func (a *API) FetchSummary(ctx context.Context, key league.Key, eventID string) (*models.SummaryResponse, error) {
	info, ok := key.Info()
	if !ok {
		return nil, fmt.Errorf("%w: %q", league.ErrInvalidLeague, key)
	}
	if eventID == "" {
		return nil, errors.New("missing event id")
	}

	var summary models.SummaryResponse
	endpoint := fmt.Sprintf("/%s/%s/summary", info.Sport, info.Competition)
	params := map[string]string{
		"event": eventID,
	}

	if err := a.client.Get(ctx, endpoint, params, &summary); err != nil {
		return nil, fmt.Errorf("fetching %s summary for event %s: %w", key, eventID, err)
	}

	return &summary, nil
}
