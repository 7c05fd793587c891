package bot

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/scorebot/internal/league"
	"github.com/omarshaarawi/scorebot/internal/models"
	"github.com/omarshaarawi/scorebot/internal/schedule"
	"github.com/omarshaarawi/scorebot/internal/service"
)

const (
	maxOptions       = 25
	buttonsPerRow    = 2
	maxLabelRunes    = 64
	maxCallbackBytes = 64
	selectPrefix     = "sel"
)

var errNotSelection = errors.New("not a game selection")

// Selection is a decoded game-list callback.
type Selection struct {
	League  league.Key
	Window  service.Window
	EventID string
}

func selectionData(key league.Key, w service.Window, eventID string) string {
	return strings.Join([]string{selectPrefix, string(key), w.Token(), eventID}, ":")
}

func ParseSelection(data string) (Selection, error) {
	parts := strings.SplitN(data, ":", 4)
	if len(parts) != 4 || parts[0] != selectPrefix || parts[3] == "" {
		return Selection{}, errNotSelection
	}
	key, err := league.Parse(parts[1])
	if err != nil {
		return Selection{}, err
	}
	w, err := service.ParseWindowToken(parts[2])
	if err != nil {
		return Selection{}, err
	}
	return Selection{League: key, Window: w, EventID: parts[3]}, nil
}

// SelectionKeyboard lists the day's first 25 games, leaving out any that
// cannot be keyed. ok is false when there is nothing to offer.
func SelectionKeyboard(key league.Key, w service.Window, events []models.Event) (tgbotapi.InlineKeyboardMarkup, bool) {
	var (
		rows [][]tgbotapi.InlineKeyboardButton
		row  []tgbotapi.InlineKeyboardButton
	)

	if len(events) > maxOptions {
		events = events[:maxOptions]
	}
	for _, e := range events {
		data := selectionData(key, w, e.ID)
		if e.ID == "" || len(data) > maxCallbackBytes {
			continue
		}

		row = append(row, tgbotapi.NewInlineKeyboardButtonData(optionLabel(e), data))
		if len(row) == buttonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func optionLabel(e models.Event) string {
	game := schedule.Normalize(e)

	var label string
	switch {
	case game.Away.Abbreviation != nil && game.Home.Abbreviation != nil:
		label = fmt.Sprintf("%s @ %s", *game.Away.Abbreviation, *game.Home.Abbreviation)
	case e.ShortName != "":
		label = e.ShortName
	case e.Name != "":
		label = e.Name
	default:
		label = e.ID
	}

	runes := []rune(label)
	if len(runes) > maxLabelRunes {
		label = string(runes[:maxLabelRunes])
	}
	return label
}
