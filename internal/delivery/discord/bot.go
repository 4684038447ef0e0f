package discord

import (
	"context"
	"fmt"
	"strconv"

	"pronosbot/internal/application"
	"pronosbot/pkg/config"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger

	adminIDs map[int64]struct{}
	guildID  string
}

func NewBot(cfg *config.Config, services *application.Service, logger application.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	admins := make(map[int64]struct{})
	for _, id := range cfg.AdminUserIDs {
		admins[id] = struct{}{}
	}

	return &Bot{
		session:  s,
		services: services,
		logger:   logger,
		adminIDs: admins,
		guildID:  cfg.DiscordGuildID,
	}, nil
}

var commands = []*discordgo.ApplicationCommand{
	{Name: "partidos", Description: "Partidos abiertos para pronosticar"},
	{
		Name:        "pronostico",
		Description: "Enviar o cambiar tu pronóstico",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "ID del partido", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "marcador", Description: "Ej: 2-1", Required: true},
		},
	},
	{
		Name:        "tabla",
		Description: "Tabla de posiciones",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "dias", Description: "Ventana en días (vacío = histórica)", Required: false},
		},
	},
	{
		Name:        "resultado",
		Description: "Registrar resultado final (Solo admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "ID del partido", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "marcador", Description: "Ej: 2-1", Required: true},
		},
	},
	{
		Name:        "sancionar",
		Description: "Ajustar puntos de un jugador (Solo admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "jugador", Description: "ID numérico del jugador", Required: true},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "puntos", Description: "Delta, puede ser negativo", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "motivo", Description: "Motivo del ajuste", Required: false},
		},
	},
	{
		Name:        "recalcular",
		Description: "Rehacer puntajes de un partido (Solo admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "ID del partido", Required: true},
		},
	},
	{
		Name:        "nuevopartido",
		Description: "Crear partido (Solo admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "local", Description: "Equipo local", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "visitante", Description: "Equipo visitante", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "fecha", Description: "dd/mm/aaaa hh:mm", Required: true},
		},
	},
	{Name: "exportar", Description: "Exportar tabla a Excel (Solo admins)"},
	{Name: "sync", Description: "Sincronizar tabla con Google Sheets (Solo admins)"},
}

func (b *Bot) Init() error {
	b.session.AddHandler(b.onInteraction)
	return nil
}

func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return err
	}

	b.logger.Info("Discord bot started, registering slash commands...")
	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, commands)
	if err != nil {
		b.logger.Error("failed to register commands: %s", err.Error())
	} else {
		b.logger.Info("slash commands registered successfully")
	}
	return nil
}

func (b *Bot) Stop() {
	b.session.Close()
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	userID, displayName := interactionUser(i.Interaction)
	numericID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		b.logger.Warn("discord: unparseable user id %q", userID)
		return
	}

	user, err := b.services.PredictionService.RegisterUser(numericID, displayName)
	if err != nil {
		b.logger.Error("discord: failed to register user %d: %s", numericID, err.Error())
		return
	}
	isAdmin := user.IsAdmin || b.isAdmin(numericID)

	name := i.ApplicationCommandData().Name
	switch name {
	case "partidos":
		b.handleOpenMatches(s, i.Interaction)
		return
	case "pronostico":
		b.handlePredict(s, i.Interaction, numericID)
		return
	case "tabla":
		b.handleLeaderboard(s, i.Interaction)
		return
	}

	if !isAdmin {
		b.respondMessage(s, i.Interaction, "⛔ Solo administradores.", true)
		return
	}

	switch name {
	case "resultado":
		b.handleResult(s, i.Interaction)
	case "sancionar":
		b.handleAdjust(s, i.Interaction)
	case "recalcular":
		b.handleRecalculate(s, i.Interaction)
	case "nuevopartido":
		b.handleNewMatch(s, i.Interaction)
	case "exportar":
		b.handleExport(s, i.Interaction)
	case "sync":
		b.handleSync(s, i.Interaction)
	}
}
