package schedule

import (
	"strings"
	"time"

	"github.com/omarshaarawi/scorebot/internal/models"
)

const (
	unknownID      = "Unknown"
	unknownMatchup = "Unknown matchup"
	unknownStatus  = "Status unknown"
	unknownVenue   = "Unknown Venue"
	noScore        = "-"
	homeName       = "Home"
	awayName       = "Away"
)

// ESPN emits both full RFC3339 stamps and the shorter minute-precision form.
var startLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// ParseStart parses an event date. ok is false for empty or malformed values.
func ParseStart(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range startLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// extractor yields a field value and whether it was present.
type extractor func(models.Event) (string, bool)

// firstOf runs extractors in order and returns the first present value, or
// fallback when none match.
func firstOf(e models.Event, fallback string, rules ...extractor) string {
	for _, rule := range rules {
		if v, ok := rule(e); ok {
			return v
		}
	}
	return fallback
}

func nonEmpty(v string) (string, bool) {
	return v, v != ""
}

func competition(e models.Event) *models.Competition {
	if len(e.Competitions) == 0 {
		return nil
	}
	return &e.Competitions[0]
}

func eventStatusType(e models.Event) *models.StatusType {
	if e.Status == nil {
		return nil
	}
	return e.Status.Type
}

func competitionStatusType(e models.Event) *models.StatusType {
	comp := competition(e)
	if comp == nil || comp.Status == nil {
		return nil
	}
	return comp.Status.Type
}

// displayStatusType is the event's status object when it has one, else the
// first competition's.
func displayStatusType(e models.Event) *models.StatusType {
	if st := eventStatusType(e); st != nil {
		return st
	}
	return competitionStatusType(e)
}

func statusField(source func(models.Event) *models.StatusType, field func(*models.StatusType) string) extractor {
	return func(e models.Event) (string, bool) {
		st := source(e)
		if st == nil {
			return "", false
		}
		return nonEmpty(field(st))
	}
}

var (
	stateRules = []extractor{
		statusField(eventStatusType, func(st *models.StatusType) string { return st.State }),
		statusField(competitionStatusType, func(st *models.StatusType) string { return st.State }),
	}

	// Status text comes from a single status object, never mixed across
	// the event and its competition.
	statusRules = []extractor{
		statusField(displayStatusType, func(st *models.StatusType) string { return st.Detail }),
		statusField(displayStatusType, func(st *models.StatusType) string { return st.Description }),
	}

	venueRules = []extractor{
		func(e models.Event) (string, bool) {
			if comp := competition(e); comp != nil && comp.Venue != nil {
				return nonEmpty(comp.Venue.FullName)
			}
			return "", false
		},
		func(e models.Event) (string, bool) {
			if comp := competition(e); comp != nil && comp.Venue != nil {
				return nonEmpty(comp.Venue.Name)
			}
			return "", false
		},
	}

	idRules = []extractor{
		func(e models.Event) (string, bool) { return nonEmpty(e.ID) },
	}

	nameRules = []extractor{
		func(e models.Event) (string, bool) { return nonEmpty(e.ShortName) },
		func(e models.Event) (string, bool) { return nonEmpty(e.Name) },
	}
)

// StateOf reports the lifecycle state of an event.
func StateOf(e models.Event) models.State {
	switch s := firstOf(e, string(models.StateUnknown), stateRules...); s {
	case string(models.StatePre), string(models.StateIn), string(models.StatePost):
		return models.State(s)
	default:
		return models.StateUnknown
	}
}

// Normalize maps one raw event to a Game. It never fails: anything missing
// falls back to its placeholder.
func Normalize(e models.Event) models.Game {
	game := models.Game{
		ID:     firstOf(e, unknownID, idRules...),
		Name:   firstOf(e, unknownMatchup, nameRules...),
		Status: firstOf(e, unknownStatus, statusRules...),
		State:  StateOf(e),
		Venue:  firstOf(e, unknownVenue, venueRules...),
		Watch:  watchList(e),
		Home:   side(findCompetitor(e, "home"), homeName),
		Away:   side(findCompetitor(e, "away"), awayName),
	}
	if start, ok := ParseStart(e.Date); ok {
		game.Start = &start
	}
	return game
}

func findCompetitor(e models.Event, role string) *models.Competitor {
	comp := competition(e)
	if comp == nil {
		return nil
	}
	for i := range comp.Competitors {
		if comp.Competitors[i].HomeAway == role {
			return &comp.Competitors[i]
		}
	}
	return nil
}

func side(c *models.Competitor, defaultName string) models.TeamSide {
	s := models.TeamSide{Name: defaultName, Score: noScore}
	if c == nil {
		return s
	}
	if c.Score != nil && c.Score.Value != "" {
		s.Score = c.Score.Value
	}
	if c.Team == nil {
		return s
	}
	if c.Team.DisplayName != "" {
		s.Name = c.Team.DisplayName
	}
	s.Abbreviation = optional(c.Team.Abbreviation)
	s.Logo = optional(c.Team.Logo)
	return s
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func watchList(e models.Event) []string {
	watch := []string{}
	comp := competition(e)
	if comp == nil {
		return watch
	}
	for _, b := range comp.Broadcasts {
		for _, name := range b.Names {
			if name != "" {
				watch = append(watch, name)
			}
		}
	}
	return watch
}
