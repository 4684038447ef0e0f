package discord

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pronosbot/internal/application"

	"github.com/bwmarrin/discordgo"
)

const dateLayout = "02/01 15:04"

func (b *Bot) handleOpenMatches(s *discordgo.Session, i *discordgo.Interaction) {
	matches, err := b.services.MatchService.ListOpen()
	if err != nil {
		b.logger.Error("discord: list open failed: %s", err.Error())
		b.respondMessage(s, i, "⚠️ Error consultando partidos.", true)
		return
	}
	if len(matches) == 0 {
		b.respondMessage(s, i, "💤 No hay partidos pendientes.", false)
		return
	}

	var sb strings.Builder
	sb.WriteString("📅 **Partidos Pendientes**\n")
	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("\n🆔 **%d**: %s vs %s (%s)", m.ID, m.HomeTeam, m.AwayTeam, m.Kickoff.Format(dateLayout)))
	}
	b.respondMessage(s, i, sb.String(), false)
}

func (b *Bot) handlePredict(s *discordgo.Session, i *discordgo.Interaction, userID int64) {
	opts := optionMap(i)
	matchID := int(opts["id"].IntValue())
	home, away, err := parseScore(opts["marcador"].StringValue())
	if err != nil {
		b.respondMessage(s, i, "❌ Formato incorrecto. Ej: 2-1", true)
		return
	}

	_, err = b.services.PredictionService.Submit(userID, matchID, home, away)
	switch {
	case errors.Is(err, application.ErrMatchNotFound):
		b.respondMessage(s, i, "❌ El partido no existe.", true)
	case errors.Is(err, application.ErrInvalidState):
		b.respondMessage(s, i, "❌ El partido ya ha cerrado.", true)
	case err != nil:
		b.logger.Error("discord: submit failed: %s", err.Error())
		b.respondMessage(s, i, "⚠️ No se pudo guardar el pronóstico.", true)
	default:
		b.respondMessage(s, i, fmt.Sprintf("✅ Pronóstico guardado: Partido %d -> %d-%d", matchID, home, away), false)
	}
}

func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.Interaction) {
	window := application.AllTime()
	if opt, ok := optionMap(i)["dias"]; ok {
		w, err := application.LastNDays(int(opt.IntValue()))
		if err != nil {
			b.respondMessage(s, i, "❌ Los días deben ser un número positivo.", true)
			return
		}
		window = w
	}

	img, err := b.services.LeaderboardService.RenderImage(window)
	if err != nil {
		b.logger.Error("discord: render failed: %s", err.Error())
		b.respondMessage(s, i, "⚠️ No se pudo generar la tabla.", true)
		return
	}

	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("🏆 Tabla de posiciones (%s)", window),
			Files: []*discordgo.File{
				{Name: "tabla.png", ContentType: "image/png", Reader: bytes.NewReader(img)},
			},
		},
	})
}

func (b *Bot) handleResult(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i)
	matchID := int(opts["id"].IntValue())
	home, away, err := parseScore(opts["marcador"].StringValue())
	if err != nil {
		b.respondMessage(s, i, "❌ Formato incorrecto. Ej: 2-1", true)
		return
	}

	res, err := b.services.MatchService.Finalize(matchID, home, away)
	switch {
	case errors.Is(err, application.ErrMatchNotFound):
		b.respondMessage(s, i, "❌ El partido no existe.", true)
	case err != nil:
		b.logger.Error("discord: finalize failed: %s", err.Error())
		b.respondMessage(s, i, "⚠️ No se pudo registrar el resultado; nada fue guardado.", true)
	default:
		b.respondMessage(s, i, fmt.Sprintf("✅ Resultado %d: %d-%d guardado. %d pronósticos recalculados.", matchID, home, away, res.Recalculated), false)
	}
}

func (b *Bot) handleAdjust(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i)
	target, err := strconv.ParseInt(opts["jugador"].StringValue(), 10, 64)
	if err != nil {
		b.respondMessage(s, i, "❌ El ID del jugador debe ser numérico.", true)
		return
	}
	points := int(opts["puntos"].IntValue())
	reason := ""
	if opt, ok := opts["motivo"]; ok {
		reason = opt.StringValue()
	}

	_, err = b.services.PredictionService.Adjust(target, points, reason)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		b.respondMessage(s, i, "❌ El usuario no existe.", true)
	case err != nil:
		b.logger.Error("discord: adjust failed: %s", err.Error())
		b.respondMessage(s, i, "⚠️ No se pudo aplicar la sanción.", true)
	default:
		b.respondMessage(s, i, fmt.Sprintf("✅ Sanción %d: %+d pts.", target, points), false)
	}
}

func (b *Bot) handleRecalculate(s *discordgo.Session, i *discordgo.Interaction) {
	matchID := int(optionMap(i)["id"].IntValue())

	count, err := b.services.MatchService.Recalculate(matchID)
	switch {
	case errors.Is(err, application.ErrMatchNotFound):
		b.respondMessage(s, i, "❌ El partido no existe.", true)
	case err != nil:
		b.logger.Error("discord: recalculate failed: %s", err.Error())
		b.respondMessage(s, i, "⚠️ El recálculo falló; nada fue guardado.", true)
	default:
		b.respondMessage(s, i, fmt.Sprintf("✅ %d pronósticos recalculados.", count), false)
	}
}

func (b *Bot) handleNewMatch(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i)
	kickoff, err := parseKickoff(opts["fecha"].StringValue())
	if err != nil {
		b.respondMessage(s, i, "❌ Fecha inválida. Ej: 25/12/2026 20:00", true)
		return
	}

	home := opts["local"].StringValue()
	away := opts["visitante"].StringValue()
	id, err := b.services.MatchService.Create(home, away, kickoff)
	if err != nil {
		b.logger.Error("discord: create match failed: %s", err.Error())
		b.respondMessage(s, i, "⚠️ No se pudo crear el partido.", true)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("✅ Partido %d creado: %s vs %s.", id, home, away), false)
}

func (b *Bot) handleExport(s *discordgo.Session, i *discordgo.Interaction) {
	data, err := b.services.LeaderboardService.ExportExcel(application.AllTime())
	if err != nil {
		b.logger.Error("discord: export failed: %s", err.Error())
		b.respondMessage(s, i, "⚠️ No se pudo generar el reporte.", true)
		return
	}

	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "📊 Reporte de posiciones",
			Files: []*discordgo.File{
				{Name: "posiciones.xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Reader: bytes.NewReader(data)},
			},
		},
	})
}

func (b *Bot) handleSync(s *discordgo.Session, i *discordgo.Interaction) {
	url, err := b.services.LeaderboardService.SyncToSheet(application.AllTime())
	if err != nil {
		b.logger.Error("discord: sheet sync failed: %s", err.Error())
		b.respondMessage(s, i, "⚠️ "+err.Error(), true)
		return
	}
	b.respondMessage(s, i, "✅ Tabla sincronizada: "+url, false)
}
