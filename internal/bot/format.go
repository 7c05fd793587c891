package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/scorebot/internal/league"
	"github.com/omarshaarawi/scorebot/internal/models"
)

func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// FormatGame renders a game card in Telegram Markdown.
func FormatGame(key league.Key, game models.Game, label string) string {
	emoji := "🏟"
	if info, ok := key.Info(); ok {
		emoji = info.Emoji
	}

	var sb strings.Builder
	if logo := firstLogo(game); logo != "" {
		// zero-width link so Telegram previews the team logo
		sb.WriteString(fmt.Sprintf("[\u200b](%s)", logo))
	}
	sb.WriteString(fmt.Sprintf("%s *%s at %s*\n", emoji, esc(game.Away.Name), esc(game.Home.Name)))
	sb.WriteString(fmt.Sprintf("📍 *%s*\n\n", esc(game.Venue)))
	sb.WriteString(fmt.Sprintf("*Status:* %s\n", esc(game.Status)))
	sb.WriteString(fmt.Sprintf("*Teams:* %s – %s\n", esc(teamLabel(game.Away)), esc(teamLabel(game.Home))))
	sb.WriteString(fmt.Sprintf("*Score:* *%s*\n", esc(scoreLine(game))))
	sb.WriteString(fmt.Sprintf("*Watch:* %s", esc(watchLine(game))))

	if game.Start != nil {
		sb.WriteString(fmt.Sprintf("\n*Start:* %s", game.Start.UTC().Format("Mon, Jan 2 15:04 MST")))
	}
	if label != "" {
		sb.WriteString(fmt.Sprintf("\n\n_%s_", esc(label)))
	}

	return sb.String()
}

func teamLabel(side models.TeamSide) string {
	if side.Abbreviation != nil {
		return *side.Abbreviation
	}
	return side.Name
}

func scoreLine(game models.Game) string {
	if game.Away.Score == "-" || game.Home.Score == "-" {
		return "0 – 0"
	}
	return fmt.Sprintf("%s – %s", game.Away.Score, game.Home.Score)
}

func watchLine(game models.Game) string {
	if len(game.Watch) == 0 {
		return "Varies by region"
	}
	return strings.Join(game.Watch, ", ")
}

func firstLogo(game models.Game) string {
	if game.Home.Logo != nil {
		return *game.Home.Logo
	}
	if game.Away.Logo != nil {
		return *game.Away.Logo
	}
	return ""
}
