package schedule

import (
	"sort"
	"time"

	"github.com/omarshaarawi/scorebot/internal/models"
)

const DefaultGraceWindow = 5 * time.Minute

type timedEvent struct {
	index int
	start time.Time
	state models.State
}

// Pick chooses the main game of a day: the first live game, else the next
// upcoming one (allowing grace for games that started but have not flipped
// state yet), else the latest finished one, else the earliest game.
// Events without a parseable start never take part. The returned pointer
// aliases events.
func Pick(events []models.Event, now time.Time, grace time.Duration) *models.Event {
	timed := make([]timedEvent, 0, len(events))
	for i, e := range events {
		if start, ok := ParseStart(e.Date); ok {
			timed = append(timed, timedEvent{index: i, start: start, state: StateOf(e)})
		}
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].start.Before(timed[j].start)
	})

	for _, t := range timed {
		if t.state == models.StateIn {
			return &events[t.index]
		}
	}

	cutoff := now.Add(-grace)
	for _, t := range timed {
		if t.state == models.StatePre && !t.start.Before(cutoff) {
			return &events[t.index]
		}
	}

	for i := len(timed) - 1; i >= 0; i-- {
		if timed[i].state == models.StatePost && !timed[i].start.After(now) {
			return &events[timed[i].index]
		}
	}

	if len(timed) > 0 {
		return &events[timed[0].index]
	}
	return nil
}
