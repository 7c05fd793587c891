package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/scorebot/internal/league"
	"github.com/omarshaarawi/scorebot/internal/service"
)

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	games   GameService
}

func NewTelegramBot(token string, games GameService, subs Subscriptions) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(games, subs),
		games:   games,
	}, nil
}

// RegisterCommands publishes the command list shown in Telegram clients.
func (t *TelegramBot) RegisterCommands() error {
	commands := make([]tgbotapi.BotCommand, 0, len(league.All())+5)
	for _, k := range league.All() {
		info, _ := k.Info()
		commands = append(commands, tgbotapi.BotCommand{
			Command:     k.Command(),
			Description: fmt.Sprintf("Show the next or live %s game", info.Name),
		})
	}
	commands = append(commands,
		tgbotapi.BotCommand{Command: "game", Description: "Look up one game by league and event id"},
		tgbotapi.BotCommand{Command: "follow", Description: "Add a league to the daily digest"},
		tgbotapi.BotCommand{Command: "unfollow", Description: "Remove a league from the daily digest"},
		tgbotapi.BotCommand{Command: "following", Description: "List followed leagues"},
		tgbotapi.BotCommand{Command: "help", Description: "Show available commands"},
	)

	if _, err := t.bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		return fmt.Errorf("registering commands: %w", err)
	}
	slog.Info("Slash commands registered", "count", len(commands))
	return nil
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	if err := t.RegisterCommands(); err != nil {
		slog.Error("Error registering commands", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			go t.handleUpdate(ctx, update)
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		for _, c := range t.handler.HandleCallback(ctx, update) {
			if _, err := t.bot.Request(c); err != nil {
				slog.Error("Error answering selection", "error", err)
			}
		}
	case update.Message != nil && update.Message.IsCommand():
		msg := t.handler.HandleCommand(ctx, update)
		if _, err := t.bot.Send(msg); err != nil {
			slog.Error("Error sending message", "error", err)
		}
	}
}

// SendGame posts a league's main game card to a chat. Nothing is sent when
// the league has no games in the default window.
func (t *TelegramBot) SendGame(ctx context.Context, chatID int64, key league.Key) error {
	msg, found, err := t.handler.GameMessage(ctx, chatID, key, service.LookaheadWindow(t.games.DefaultLookahead()))
	if err != nil {
		return err
	}
	if !found {
		slog.Info("Skipping digest, no games", "league", key, "chat_id", chatID)
		return nil
	}

	_, err = t.bot.Send(msg)
	if err != nil {
		slog.Error("Error sending message", "error", err)
	}
	return err
}
