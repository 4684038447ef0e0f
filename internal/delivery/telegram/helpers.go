package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pronosbot/internal/application"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const kickoffLayout = "02/01/2006 15:04"

func (b *Bot) isAdmin(id int64) bool {
	_, ok := b.adminIDs[id]
	return ok
}

func (b *Bot) sendMessage(chatID int64, text string) {
	if text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.bot.Send(msg); err != nil {
		b.logger.Error("telegram: send failed: %s", err.Error())
	}
}

func parseScore(raw string) (int, int, error) {
	sep := strings.SplitN(raw, "-", 2)
	if len(sep) != 2 {
		return 0, 0, fmt.Errorf("score must look like 2-1")
	}
	home, err := strconv.Atoi(sep[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid home goals: %w", err)
	}
	away, err := strconv.Atoi(sep[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid away goals: %w", err)
	}
	if home < 0 || away < 0 {
		return 0, 0, fmt.Errorf("goal counts cannot be negative")
	}
	return home, away, nil
}

func parseWindow(parts []string) (application.Window, error) {
	if len(parts) < 2 {
		return application.AllTime(), nil
	}
	days, err := strconv.Atoi(parts[1])
	if err != nil {
		return application.Window{}, fmt.Errorf("invalid day count: %w", err)
	}
	return application.LastNDays(days)
}

func parseKickoff(raw string) (time.Time, error) {
	return time.ParseInLocation(kickoffLayout, raw, time.Local)
}
