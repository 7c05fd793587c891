package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Scoreboard payloads are read defensively: every field may be missing, so
// nested objects are pointers and strings stay empty when absent.

type ScoreboardResponse struct {
	Events []Event `json:"events"`
}

type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Competitions []Competition `json:"competitions"`
	Status       *Status       `json:"status"`
}

type Competition struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Competitors []Competitor `json:"competitors"`
	Venue       *Venue       `json:"venue"`
	Broadcasts  []Broadcast  `json:"broadcasts"`
	Status      *Status      `json:"status"`
}

type Competitor struct {
	ID       string `json:"id"`
	HomeAway string `json:"homeAway"`
	Team     *Team  `json:"team"`
	Score    *Score `json:"score"`
}

type Team struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
}

type Venue struct {
	FullName string `json:"fullName"`
	Name     string `json:"name"`
}

type Broadcast struct {
	Market string   `json:"market"`
	Names  []string `json:"names"`
}

type Status struct {
	DisplayClock string      `json:"displayClock"`
	Period       int         `json:"period"`
	Type         *StatusType `json:"type"`
}

type StatusType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
	Detail      string `json:"detail"`
	ShortDetail string `json:"shortDetail"`
}

// Score accepts both the string scores of the scoreboard endpoint and the
// object form {"value": 3, "displayValue": "3"} some summaries use. Any
// other shape is treated as absent.
type Score struct {
	Value string
}

func (s *Score) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	switch b[0] {
	case '{':
		var obj struct {
			DisplayValue string   `json:"displayValue"`
			Value        *float64 `json:"value"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		if obj.DisplayValue != "" {
			s.Value = obj.DisplayValue
		} else if obj.Value != nil {
			s.Value = strconv.FormatFloat(*obj.Value, 'f', -1, 64)
		}
		return nil
	default:
		s.Value = looseString(b)
		return nil
	}
}

func (e *Event) UnmarshalJSON(b []byte) error {
	type plain Event
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	e.ID = looseString(aux.ID)
	return nil
}

// UnmarshalJSON keeps the string entries of names and ignores the field
// when it is not an array.
func (bc *Broadcast) UnmarshalJSON(b []byte) error {
	type plain Broadcast
	aux := struct {
		*plain
		Names json.RawMessage `json:"names"`
	}{plain: (*plain)(bc)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	bc.Names = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(aux.Names, &raw); err != nil {
		return nil
	}
	for _, item := range raw {
		var name string
		if json.Unmarshal(item, &name) == nil {
			bc.Names = append(bc.Names, name)
		}
	}
	return nil
}

// looseString reads a JSON string or number as text. Any other value is
// treated as absent.
func looseString(b json.RawMessage) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}
	var str string
	if json.Unmarshal(b, &str) == nil {
		return str
	}
	var n json.Number
	if json.Unmarshal(b, &n) == nil {
		return n.String()
	}
	return ""
}

// SummaryResponse is the subset of the summary endpoint that can be folded
// back into an Event.
type SummaryResponse struct {
	Header   SummaryHeader `json:"header"`
	GameInfo struct {
		Venue *Venue `json:"venue"`
	} `json:"gameInfo"`
}

type SummaryHeader struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Competitions []Competition `json:"competitions"`
}

// Event folds the summary header into scoreboard shape.
func (s SummaryResponse) Event() Event {
	event := Event{
		ID:           s.Header.ID,
		Name:         s.Header.Name,
		ShortName:    s.Header.ShortName,
		Competitions: s.Header.Competitions,
	}
	if len(event.Competitions) > 0 {
		comp := &event.Competitions[0]
		event.Date = comp.Date
		if comp.Venue == nil {
			comp.Venue = s.GameInfo.Venue
		}
	}
	return event
}
