package bot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/scorebot/internal/league"
	"github.com/omarshaarawi/scorebot/internal/models"
	"github.com/omarshaarawi/scorebot/internal/repository/memory"
	"github.com/omarshaarawi/scorebot/internal/service"
)

const testChatID = 42

type fakeGames struct {
	selection models.DaySelection
	game      models.Game
	err       error

	lookups []service.Window
	finds   []string
}

func (f *fakeGames) DefaultLookahead() int { return 14 }

func (f *fakeGames) Lookup(_ context.Context, _ league.Key, w service.Window) (models.DaySelection, error) {
	f.lookups = append(f.lookups, w)
	return f.selection, f.err
}

func (f *fakeGames) Find(_ context.Context, _ league.Key, _ service.Window, eventID string) (models.Game, models.DaySelection, error) {
	f.finds = append(f.finds, eventID)
	return f.game, f.selection, f.err
}

func (f *fakeGames) Describe(_ context.Context, _ league.Key, _ string) (models.Game, error) {
	return f.game, f.err
}

func commandUpdate(text string) tgbotapi.Update {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text:     text,
			Chat:     &tgbotapi.Chat{ID: testChatID},
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
		},
	}
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			Data: data,
			Message: &tgbotapi.Message{
				MessageID: 7,
				Chat:      &tgbotapi.Chat{ID: testChatID},
			},
		},
	}
}

func daySelection() models.DaySelection {
	events := []models.Event{
		matchup("1", "BOS", "NYK"),
		matchup("2", "LAL", "GSW"),
	}
	return models.DaySelection{
		Found:  true,
		Day:    time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Events: events,
		Pick:   &events[1],
	}
}

func newTestHandler(games *fakeGames) *Handler {
	return NewHandler(games, memory.NewRepository())
}

func TestHandleLeagueCommand(t *testing.T) {
	games := &fakeGames{selection: daySelection()}

	msg := newTestHandler(games).HandleCommand(context.Background(), commandUpdate("/nba"))

	assert.Equal(t, int64(testChatID), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.Contains(t, msg.Text, "*Teams:* LAL – GSW")
	assert.Contains(t, msg.Text, "_Games for 2026-10-18_")

	keyboard, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, keyboard.InlineKeyboard, 1)
	assert.Equal(t, "BOS @ NYK", keyboard.InlineKeyboard[0][0].Text)

	require.Len(t, games.lookups, 1)
	assert.Equal(t, service.LookaheadWindow(14), games.lookups[0])
}

func TestHandleLeagueCommandWindowArgument(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "/nhl 3", want: "No games found in the next 3 days."},
		{text: "/nhl 2026-10-25", want: "No games found on 2026-10-25."},
		{text: "/NHL@scorebot 20261025", want: "No games found on 2026-10-25."},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			games := &fakeGames{}
			msg := newTestHandler(games).HandleCommand(context.Background(), commandUpdate(tt.text))
			assert.Equal(t, tt.want, msg.Text)
			assert.Nil(t, msg.ReplyMarkup)
		})
	}
}

func TestHandleLeagueCommandRejectsBadArgument(t *testing.T) {
	for _, text := range []string{"/nfl soon", "/nfl 99", "/nfl -1"} {
		games := &fakeGames{}
		msg := newTestHandler(games).HandleCommand(context.Background(), commandUpdate(text))
		assert.Contains(t, msg.Text, "Error:", text)
		assert.Empty(t, games.lookups, text)
	}
}

func TestHandleLeagueCommandLookupError(t *testing.T) {
	games := &fakeGames{err: errors.New("ESPN request failed (503) upstream down")}

	msg := newTestHandler(games).HandleCommand(context.Background(), commandUpdate("/mlb"))

	assert.Equal(t, "Error: ESPN request failed (503) upstream down", msg.Text)
	assert.Nil(t, msg.ReplyMarkup)
}

func TestHandleUnknownCommand(t *testing.T) {
	h := newTestHandler(&fakeGames{})

	msg := h.HandleCommand(context.Background(), commandUpdate("/nbb"))
	assert.Contains(t, msg.Text, "did you mean /nba?")

	msg = h.HandleCommand(context.Background(), commandUpdate("/weather"))
	assert.Equal(t, "Unknown command. Use /help to see available commands.", msg.Text)
}

func TestHandleHelpAndLeagues(t *testing.T) {
	h := newTestHandler(&fakeGames{})

	help := h.HandleCommand(context.Background(), commandUpdate("/help"))
	leagues := h.HandleCommand(context.Background(), commandUpdate("/leagues"))

	for _, k := range league.All() {
		assert.Contains(t, help.Text, "/"+k.Command())
		assert.Contains(t, leagues.Text, "/"+k.Command())
	}
	assert.Contains(t, help.Text, "/follow")
}

func TestHandleGameCommand(t *testing.T) {
	games := &fakeGames{game: models.Game{
		Venue: "Anfield",
		Home:  models.TeamSide{Name: "Liverpool", Score: "2"},
		Away:  models.TeamSide{Name: "Everton", Score: "0"},
	}}
	h := newTestHandler(games)

	msg := h.HandleCommand(context.Background(), commandUpdate("/game epl 740812"))
	assert.Contains(t, msg.Text, "*Everton at Liverpool*")

	msg = h.HandleCommand(context.Background(), commandUpdate("/game epl"))
	assert.Contains(t, msg.Text, "Usage: /game")

	games.err = fmt.Errorf("%w: EPL event 1", service.ErrGameNotFound)
	msg = h.HandleCommand(context.Background(), commandUpdate("/game epl 1"))
	assert.Equal(t, "Error: game not found: EPL event 1", msg.Text)
}

func TestHandleFollowCommands(t *testing.T) {
	h := newTestHandler(&fakeGames{})
	ctx := context.Background()

	assert.Equal(t, "Not following any leagues. Use /follow <league> to add one.",
		h.HandleCommand(ctx, commandUpdate("/following")).Text)

	assert.Contains(t, h.HandleCommand(ctx, commandUpdate("/follow nfl")).Text, "Following NFL")
	assert.Contains(t, h.HandleCommand(ctx, commandUpdate("/follow NFL")).Text, "Already following NFL")
	assert.Contains(t, h.HandleCommand(ctx, commandUpdate("/follow f1")).Text, "Following F1")
	assert.Equal(t, "Following: NFL, F1", h.HandleCommand(ctx, commandUpdate("/following")).Text)

	assert.Equal(t, "Stopped following NFL.", h.HandleCommand(ctx, commandUpdate("/unfollow nfl")).Text)
	assert.Equal(t, "You were not following NFL.", h.HandleCommand(ctx, commandUpdate("/unfollow nfl")).Text)
	assert.Contains(t, h.HandleCommand(ctx, commandUpdate("/follow")).Text, "Usage: /follow")
	assert.Contains(t, h.HandleCommand(ctx, commandUpdate("/follow xfl")).Text, "Error:")
}

func TestHandleCallbackRedrawsCard(t *testing.T) {
	games := &fakeGames{
		selection: daySelection(),
		game: models.Game{
			Venue: "Madison Square Garden",
			Home:  models.TeamSide{Name: "New York Knicks", Score: "-"},
			Away:  models.TeamSide{Name: "Boston Celtics", Score: "-"},
		},
	}

	out := newTestHandler(games).HandleCallback(context.Background(), callbackUpdate("sel:NBA:n14:1"))

	require.Len(t, out, 2)
	edit, ok := out[0].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, int64(testChatID), edit.ChatID)
	assert.Equal(t, 7, edit.MessageID)
	assert.Equal(t, tgbotapi.ModeMarkdown, edit.ParseMode)
	assert.Contains(t, edit.Text, "*Boston Celtics at New York Knicks*")
	require.NotNil(t, edit.ReplyMarkup)

	answer, ok := out[1].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	assert.Equal(t, "cb-1", answer.CallbackQueryID)
	assert.False(t, answer.ShowAlert)

	assert.Equal(t, []string{"1"}, games.finds)
}

func TestHandleCallbackGameNotFound(t *testing.T) {
	games := &fakeGames{err: fmt.Errorf("%w: NBA event 9", service.ErrGameNotFound)}

	out := newTestHandler(games).HandleCallback(context.Background(), callbackUpdate("sel:NBA:n14:9"))

	require.Len(t, out, 1)
	answer, ok := out[0].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	assert.True(t, answer.ShowAlert)
	assert.Equal(t, gameNotFoundText, answer.Text)
}

func TestHandleCallbackRemoteError(t *testing.T) {
	games := &fakeGames{err: errors.New("ESPN request failed (500)")}

	out := newTestHandler(games).HandleCallback(context.Background(), callbackUpdate("sel:NBA:n14:1"))

	require.Len(t, out, 1)
	answer := out[0].(tgbotapi.CallbackConfig)
	assert.True(t, answer.ShowAlert)
	assert.Equal(t, "Error: ESPN request failed (500)", answer.Text)
}

func TestHandleCallbackAlertIsPlainText(t *testing.T) {
	games := &fakeGames{err: errors.New("upstream_gateway [timeout]")}

	out := newTestHandler(games).HandleCallback(context.Background(), callbackUpdate("sel:NBA:n14:1"))

	require.Len(t, out, 1)
	answer := out[0].(tgbotapi.CallbackConfig)
	assert.Equal(t, "Error: upstream_gateway [timeout]", answer.Text)
	assert.NotContains(t, answer.Text, `\`)
}

func TestHandleCommandErrorIsEscaped(t *testing.T) {
	games := &fakeGames{err: errors.New("upstream_gateway")}

	msg := newTestHandler(games).HandleCommand(context.Background(), commandUpdate("/nba"))

	assert.Equal(t, `Error: upstream\_gateway`, msg.Text)
}

func TestHandleCallbackIgnoresForeignData(t *testing.T) {
	games := &fakeGames{}

	out := newTestHandler(games).HandleCallback(context.Background(), callbackUpdate("something-else"))

	require.Len(t, out, 1)
	answer := out[0].(tgbotapi.CallbackConfig)
	assert.False(t, answer.ShowAlert)
	assert.Empty(t, games.finds)
}
