package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pronosbot/internal/application"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const dateLayout = "02/01 15:04"

func (b *Bot) handleOpenMatches(chatID int64) {
	matches, err := b.services.MatchService.ListOpen()
	if err != nil {
		b.logger.Error("telegram: list open failed: %s", err.Error())
		b.sendMessage(chatID, "⚠️ Error consultando partidos.")
		return
	}
	if len(matches) == 0 {
		b.sendMessage(chatID, "💤 No hay partidos pendientes.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📅 Partidos Pendientes\n")
	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("\n🆔 %d: %s vs %s (%s)", m.ID, m.HomeTeam, m.AwayTeam, m.Kickoff.Format(dateLayout)))
	}
	b.sendMessage(chatID, sb.String())
}

func (b *Bot) handlePredict(chatID int64, parts []string) {
	if len(parts) != 3 {
		b.sendMessage(chatID, "❌ Uso: /pronostico [ID] [L-V]\nEj: /pronostico 1 2-1")
		return
	}
	matchID, err := strconv.Atoi(parts[1])
	if err != nil {
		b.sendMessage(chatID, "❌ El ID debe ser un número.")
		return
	}
	home, away, err := parseScore(parts[2])
	if err != nil {
		b.sendMessage(chatID, "❌ Formato incorrecto. Ej: 2-1")
		return
	}

	_, err = b.services.PredictionService.Submit(chatID, matchID, home, away)
	switch {
	case errors.Is(err, application.ErrMatchNotFound):
		b.sendMessage(chatID, "❌ El partido no existe.")
	case errors.Is(err, application.ErrInvalidState):
		b.sendMessage(chatID, "❌ El partido ya ha cerrado.")
	case err != nil:
		b.logger.Error("telegram: submit failed: %s", err.Error())
		b.sendMessage(chatID, "⚠️ No se pudo guardar el pronóstico.")
	default:
		b.sendMessage(chatID, fmt.Sprintf("✅ Pronóstico guardado: Partido %d -> %d-%d", matchID, home, away))
	}
}

func (b *Bot) handleLeaderboard(chatID int64, parts []string) {
	window, err := parseWindow(parts)
	if err != nil {
		b.sendMessage(chatID, "❌ Uso: /tabla [días]\nEj: /tabla 30")
		return
	}

	img, err := b.services.LeaderboardService.RenderImage(window)
	if err != nil {
		b.logger.Error("telegram: render failed: %s", err.Error())
		b.sendMessage(chatID, "⚠️ No se pudo generar la tabla.")
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "tabla.png", Bytes: img})
	photo.Caption = fmt.Sprintf("🏆 Tabla de posiciones (%s)", window)
	if _, err := b.bot.Send(photo); err != nil {
		b.logger.Error("telegram: send photo failed: %s", err.Error())
	}
}

func (b *Bot) handleResult(chatID int64, parts []string) {
	if len(parts) != 3 {
		b.sendMessage(chatID, "❌ Uso: /resultado [ID] [L-V]")
		return
	}
	matchID, err := strconv.Atoi(parts[1])
	if err != nil {
		b.sendMessage(chatID, "❌ El ID debe ser un número.")
		return
	}
	home, away, err := parseScore(parts[2])
	if err != nil {
		b.sendMessage(chatID, "❌ Formato incorrecto. Ej: 2-1")
		return
	}

	res, err := b.services.MatchService.Finalize(matchID, home, away)
	switch {
	case errors.Is(err, application.ErrMatchNotFound):
		b.sendMessage(chatID, "❌ El partido no existe.")
	case err != nil:
		b.logger.Error("telegram: finalize failed: %s", err.Error())
		b.sendMessage(chatID, "⚠️ No se pudo registrar el resultado; nada fue guardado.")
	default:
		b.sendMessage(chatID, fmt.Sprintf("✅ Resultado %d: %d-%d guardado. %d pronósticos recalculados.", matchID, home, away, res.Recalculated))
	}
}

func (b *Bot) handleAdjust(chatID int64, parts []string) {
	if len(parts) < 3 {
		b.sendMessage(chatID, "❌ Uso: /sancionar [ID] [puntos] [motivo]")
		return
	}
	target, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		b.sendMessage(chatID, "❌ El ID debe ser un número.")
		return
	}
	points, err := strconv.Atoi(parts[2])
	if err != nil {
		b.sendMessage(chatID, "❌ Los puntos deben ser un número (puede ser negativo).")
		return
	}
	reason := strings.Join(parts[3:], " ")

	_, err = b.services.PredictionService.Adjust(target, points, reason)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		b.sendMessage(chatID, "❌ El usuario no existe.")
	case err != nil:
		b.logger.Error("telegram: adjust failed: %s", err.Error())
		b.sendMessage(chatID, "⚠️ No se pudo aplicar la sanción.")
	default:
		b.sendMessage(chatID, fmt.Sprintf("✅ Sanción %d: %+d pts.", target, points))
	}
}

func (b *Bot) handleRecalculate(chatID int64, parts []string) {
	if len(parts) != 2 {
		b.sendMessage(chatID, "❌ Uso: /recalcular [ID]")
		return
	}
	matchID, err := strconv.Atoi(parts[1])
	if err != nil {
		b.sendMessage(chatID, "❌ El ID debe ser un número.")
		return
	}

	count, err := b.services.MatchService.Recalculate(matchID)
	switch {
	case errors.Is(err, application.ErrMatchNotFound):
		b.sendMessage(chatID, "❌ El partido no existe.")
	case err != nil:
		b.logger.Error("telegram: recalculate failed: %s", err.Error())
		b.sendMessage(chatID, "⚠️ El recálculo falló; nada fue guardado.")
	default:
		b.sendMessage(chatID, fmt.Sprintf("✅ %d pronósticos recalculados.", count))
	}
}

func (b *Bot) handleNewMatch(chatID int64, parts []string) {
	if len(parts) != 5 {
		b.sendMessage(chatID, "❌ Uso: /nuevopartido [Local] [Visitante] [dd/mm/aaaa hh:mm]")
		return
	}
	kickoff, err := parseKickoff(parts[3] + " " + parts[4])
	if err != nil {
		b.sendMessage(chatID, "❌ Fecha inválida. Ej: 25/12/2026 20:00")
		return
	}

	id, err := b.services.MatchService.Create(parts[1], parts[2], kickoff)
	if err != nil {
		b.logger.Error("telegram: create match failed: %s", err.Error())
		b.sendMessage(chatID, "⚠️ No se pudo crear el partido.")
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("✅ Partido %d creado: %s vs %s.", id, parts[1], parts[2]))
}

func (b *Bot) handleExport(chatID int64, parts []string) {
	window, err := parseWindow(parts)
	if err != nil {
		b.sendMessage(chatID, "❌ Uso: /exportar [días]")
		return
	}

	data, err := b.services.LeaderboardService.ExportExcel(window)
	if err != nil {
		b.logger.Error("telegram: export failed: %s", err.Error())
		b.sendMessage(chatID, "⚠️ No se pudo generar el reporte.")
		return
	}

	fileBytes := tgbotapi.FileBytes{Name: "posiciones.xlsx", Bytes: data}
	if _, err := b.bot.Send(tgbotapi.NewDocument(chatID, fileBytes)); err != nil {
		b.logger.Error("telegram: send document failed: %s", err.Error())
	}
}

func (b *Bot) handleSync(chatID int64, parts []string) {
	window, err := parseWindow(parts)
	if err != nil {
		b.sendMessage(chatID, "❌ Uso: /sync [días]")
		return
	}

	url, err := b.services.LeaderboardService.SyncToSheet(window)
	if err != nil {
		b.logger.Error("telegram: sheet sync failed: %s", err.Error())
		b.sendMessage(chatID, "⚠️ "+err.Error())
		return
	}
	b.sendMessage(chatID, "✅ Tabla sincronizada: "+url)
}
