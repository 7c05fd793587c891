package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/scorebot/internal/league"
	"github.com/omarshaarawi/scorebot/internal/models"
	"github.com/omarshaarawi/scorebot/internal/schedule"
	"github.com/omarshaarawi/scorebot/internal/service"
)

const gameNotFoundText = "Could not find that game."

type GameService interface {
	DefaultLookahead() int
	Lookup(ctx context.Context, key league.Key, w service.Window) (models.DaySelection, error)
	Find(ctx context.Context, key league.Key, w service.Window, eventID string) (models.Game, models.DaySelection, error)
	Describe(ctx context.Context, key league.Key, eventID string) (models.Game, error)
}

type Subscriptions interface {
	Follow(chatID int64, key league.Key) bool
	Unfollow(chatID int64, key league.Key) bool
	Following(chatID int64) []league.Key
}

type Handler struct {
	games GameService
	subs  Subscriptions
}

func NewHandler(games GameService, subs Subscriptions) *Handler {
	return &Handler{games: games, subs: subs}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = tgbotapi.ModeMarkdown

	switch command {
	case "start":
		msg.Text = "Welcome to ScoreBot! Use /help to see available commands."
	case "help":
		msg.Text = helpText()
	case "leagues":
		msg.Text = leaguesText()
	case "game":
		h.handleGame(ctx, &msg, args)
	case "follow":
		h.handleFollow(&msg, args)
	case "unfollow":
		h.handleUnfollow(&msg, args)
	case "following":
		h.handleFollowing(&msg)
	default:
		key, err := league.Parse(command)
		if err != nil {
			if _, ok := league.Suggest(command); ok {
				msg.Text = errorText(err)
			} else {
				msg.Text = "Unknown command. Use /help to see available commands."
			}
			return msg
		}
		h.handleLeague(ctx, &msg, key, args)
	}

	return msg
}

func (h *Handler) handleLeague(ctx context.Context, msg *tgbotapi.MessageConfig, key league.Key, args string) {
	w, err := service.ParseWindowArg(args, h.games.DefaultLookahead())
	if err != nil {
		msg.Text = errorText(err)
		return
	}

	card, _, err := h.GameMessage(ctx, msg.ChatID, key, w)
	if err != nil {
		slog.Error("Error looking up games", "league", key, "error", err)
		msg.Text = errorText(err)
		return
	}
	*msg = card
}

// GameMessage builds the main game card for a league plus the day's game
// list, or a "no games" notice. found is false for the notice.
func (h *Handler) GameMessage(ctx context.Context, chatID int64, key league.Key, w service.Window) (tgbotapi.MessageConfig, bool, error) {
	msg := tgbotapi.NewMessage(chatID, "")
	msg.ParseMode = tgbotapi.ModeMarkdown

	sel, err := h.games.Lookup(ctx, key, w)
	if err != nil {
		return msg, false, err
	}
	if sel.Pick == nil {
		msg.Text = noGamesText(w)
		return msg, false, nil
	}

	msg.Text = FormatGame(key, schedule.Normalize(*sel.Pick), sel.Label())
	if keyboard, ok := SelectionKeyboard(key, w, sel.Events); ok {
		msg.ReplyMarkup = keyboard
	}
	return msg, true, nil
}

// HandleCallback answers a selection from a game list by redrawing the
// card for the chosen game.
func (h *Handler) HandleCallback(ctx context.Context, update tgbotapi.Update) []tgbotapi.Chattable {
	query := update.CallbackQuery
	selection, err := ParseSelection(query.Data)
	if err != nil {
		slog.Warn("Ignoring callback", "data", query.Data, "error", err)
		return []tgbotapi.Chattable{tgbotapi.NewCallback(query.ID, "")}
	}

	game, sel, err := h.games.Find(ctx, selection.League, selection.Window, selection.EventID)
	if errors.Is(err, service.ErrGameNotFound) {
		return []tgbotapi.Chattable{tgbotapi.NewCallbackWithAlert(query.ID, gameNotFoundText)}
	}
	if err != nil {
		slog.Error("Error finding game", "league", selection.League, "event_id", selection.EventID, "error", err)
		return []tgbotapi.Chattable{tgbotapi.NewCallbackWithAlert(query.ID, alertText(err))}
	}

	answer := tgbotapi.NewCallback(query.ID, "")
	if query.Message == nil {
		return []tgbotapi.Chattable{answer}
	}

	text := FormatGame(selection.League, game, sel.Label())
	var edit tgbotapi.EditMessageTextConfig
	if keyboard, ok := SelectionKeyboard(selection.League, selection.Window, sel.Events); ok {
		edit = tgbotapi.NewEditMessageTextAndMarkup(query.Message.Chat.ID, query.Message.MessageID, text, keyboard)
	} else {
		edit = tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, text)
	}
	edit.ParseMode = tgbotapi.ModeMarkdown

	return []tgbotapi.Chattable{edit, answer}
}

func (h *Handler) handleGame(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		msg.Text = "Please provide a league and an event id. Usage: /game <league> <event id>"
		return
	}
	key, err := league.Parse(fields[0])
	if err != nil {
		msg.Text = errorText(err)
		return
	}

	game, err := h.games.Describe(ctx, key, fields[1])
	if err != nil {
		msg.Text = errorText(err)
		return
	}
	msg.Text = FormatGame(key, game, "")
}

func (h *Handler) handleFollow(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a league. Usage: /follow <league>"
		return
	}
	key, err := league.Parse(args)
	if err != nil {
		msg.Text = errorText(err)
		return
	}
	if h.subs.Follow(msg.ChatID, key) {
		msg.Text = fmt.Sprintf("Following %s. The daily digest will include it.", key)
	} else {
		msg.Text = fmt.Sprintf("Already following %s.", key)
	}
}

func (h *Handler) handleUnfollow(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a league. Usage: /unfollow <league>"
		return
	}
	key, err := league.Parse(args)
	if err != nil {
		msg.Text = errorText(err)
		return
	}
	if h.subs.Unfollow(msg.ChatID, key) {
		msg.Text = fmt.Sprintf("Stopped following %s.", key)
	} else {
		msg.Text = fmt.Sprintf("You were not following %s.", key)
	}
}

func (h *Handler) handleFollowing(msg *tgbotapi.MessageConfig) {
	keys := h.subs.Following(msg.ChatID)
	if len(keys) == 0 {
		msg.Text = "Not following any leagues. Use /follow <league> to add one."
		return
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	msg.Text = "Following: " + strings.Join(names, ", ")
}

func helpText() string {
	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, k := range league.All() {
		info, _ := k.Info()
		sb.WriteString(fmt.Sprintf("/%s - Show the next or live %s game\n", k.Command(), info.Name))
	}
	sb.WriteString("Add a date (YYYY-MM-DD) or a number of days, e.g. /nba 3\n")
	sb.WriteString("/game <league> <event id> - Look up one game\n")
	sb.WriteString("/follow <league> - Add a league to the daily digest\n")
	sb.WriteString("/unfollow <league> - Remove a league from the daily digest\n")
	sb.WriteString("/following - List followed leagues\n")
	sb.WriteString("/leagues - List supported leagues")
	return esc(sb.String())
}

func leaguesText() string {
	var sb strings.Builder
	sb.WriteString("*Supported leagues*\n\n")
	for _, k := range league.All() {
		info, _ := k.Info()
		sb.WriteString(fmt.Sprintf("%s /%s - %s\n", info.Emoji, k.Command(), esc(info.Name)))
	}
	return sb.String()
}

func noGamesText(w service.Window) string {
	if w.IsDay() {
		return fmt.Sprintf("No games found on %s.", w.Day.Format(schedule.DateLayout))
	}
	return fmt.Sprintf("No games found in the next %d days.", w.Lookahead)
}

func errorText(err error) string {
	return esc(alertText(err))
}

// alertText is errorText for plain-text surfaces such as callback alerts.
func alertText(err error) string {
	return fmt.Sprintf("Error: %v", err)
}
