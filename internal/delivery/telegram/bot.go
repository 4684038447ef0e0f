package telegram

import (
	"fmt"
	"strings"

	"pronosbot/internal/application"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	bot      *tgbotapi.BotAPI
	services *application.Service
	logger   application.Logger
	adminIDs map[int64]struct{}
}

func NewBot(token string, adminIDs []int64, services *application.Service, logger application.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	admins := make(map[int64]struct{})
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	logger.Info("Telegram bot authorized on account %s", bot.Self.UserName)

	return &Bot{
		bot:      bot,
		services: services,
		logger:   logger,
		adminIDs: admins,
	}, nil
}

func (b *Bot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}

		msg := update.Message
		chatID := msg.Chat.ID
		text := strings.TrimSpace(msg.Text)
		if !strings.HasPrefix(text, "/") {
			continue
		}

		name := ""
		if msg.From != nil {
			name = strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
			if name == "" {
				name = msg.From.UserName
			}
		}

		user, err := b.services.PredictionService.RegisterUser(chatID, name)
		if err != nil {
			b.logger.Error("telegram: failed to register user %d: %s", chatID, err.Error())
			continue
		}

		isAdmin := user.IsAdmin || b.isAdmin(chatID)
		parts := strings.Fields(text)
		command := strings.ToLower(strings.SplitN(parts[0], "@", 2)[0])

		switch command {
		case "/start", "/ayuda":
			b.sendMessage(chatID, helpText(isAdmin))
		case "/partidos":
			b.handleOpenMatches(chatID)
		case "/pronostico":
			b.handlePredict(chatID, parts)
		case "/tabla":
			b.handleLeaderboard(chatID, parts)
		case "/resultado":
			b.adminOnly(chatID, isAdmin, func() { b.handleResult(chatID, parts) })
		case "/sancionar":
			b.adminOnly(chatID, isAdmin, func() { b.handleAdjust(chatID, parts) })
		case "/recalcular":
			b.adminOnly(chatID, isAdmin, func() { b.handleRecalculate(chatID, parts) })
		case "/nuevopartido":
			b.adminOnly(chatID, isAdmin, func() { b.handleNewMatch(chatID, parts) })
		case "/exportar":
			b.adminOnly(chatID, isAdmin, func() { b.handleExport(chatID, parts) })
		case "/sync":
			b.adminOnly(chatID, isAdmin, func() { b.handleSync(chatID, parts) })
		default:
			b.sendMessage(chatID, "❓ Comando desconocido. Usa /ayuda.")
		}
	}
}

func (b *Bot) Stop() {
	b.bot.StopReceivingUpdates()
}

func (b *Bot) adminOnly(chatID int64, isAdmin bool, handler func()) {
	if !isAdmin {
		b.sendMessage(chatID, "⛔ Solo administradores.")
		return
	}
	handler()
}

func helpText(isAdmin bool) string {
	msg := "⚽ Bot Pronósticos ⚽\n\n" +
		"📋 /partidos - Ver juegos\n" +
		"🔮 /pronostico [ID] [L-V] - Jugar\n" +
		"   Ej: /pronostico 1 2-1\n" +
		"🏆 /tabla [días] - Ver puntajes"
	if isAdmin {
		msg += "\n\n🔧 Admin\n" +
			"/resultado [ID] [L-V] - Cerrar partido\n" +
			"/sancionar [ID] [pts] [motivo] - Ajustar puntos\n" +
			"/recalcular [ID] - Rehacer puntajes\n" +
			"/nuevopartido [Local] [Visitante] [fecha] - Crear partido\n" +
			"/exportar [días] - Excel\n" +
			"/sync [días] - Google Sheets"
	}
	return msg
}
