package models

import "time"

type State string

const (
	StatePre     State = "pre"
	StateIn      State = "in"
	StatePost    State = "post"
	StateUnknown State = "unknown"
)

// Game is the normalized, always fully populated view of one Event.
type Game struct {
	ID     string
	Name   string
	Start  *time.Time
	Status string
	State  State
	Venue  string
	Watch  []string
	Home   TeamSide
	Away   TeamSide
}

// TeamSide carries nil Abbreviation/Logo when the payload had none.
type TeamSide struct {
	Name         string
	Abbreviation *string
	Logo         *string
	Score        string
}

// DaySelection is the chosen day, its time-sorted events and the main pick.
// Found is false when no candidate day had any events.
type DaySelection struct {
	Found  bool
	Day    time.Time
	Events []Event
	Pick   *Event
}

func (d DaySelection) Label() string {
	if !d.Found {
		return ""
	}
	return "Games for " + d.Day.Format("2006-01-02")
}

func (d DaySelection) EventByID(id string) (Event, bool) {
	for _, e := range d.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}
