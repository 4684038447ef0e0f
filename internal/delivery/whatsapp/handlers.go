package whatsapp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pronosbot/internal/application"
)

const dateLayout = "02/01 15:04"

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	sender := r.FormValue("From")
	senderID, err := parseSenderID(sender)
	if err != nil {
		s.logger.Warn("webhook: unparseable sender %q", sender)
		w.WriteHeader(http.StatusOK)
		return
	}

	body := strings.TrimSpace(r.FormValue("Body"))
	if !strings.HasPrefix(body, "!") {
		w.WriteHeader(http.StatusOK)
		return
	}

	profileName := r.FormValue("ProfileName")
	user, err := s.services.PredictionService.RegisterUser(senderID, profileName)
	if err != nil {
		s.logger.Error("webhook: failed to register user %d: %s", senderID, err.Error())
		writeTwiML(w, "⚠️ Error interno, intenta de nuevo.", "")
		return
	}

	parts := strings.Fields(body)
	command := strings.ToLower(parts[0])
	isAdmin := user.IsAdmin || s.isConfiguredAdmin(senderID)

	switch command {
	case "!pronostico":
		s.handlePredict(w, senderID, parts)
	case "!partidos":
		s.handleOpenMatches(w)
	case "!tabla":
		s.handleLeaderboard(w, r, parts)
	case "!ayuda":
		writeTwiML(w, helpText(isAdmin), "")
	case "!resultado":
		s.adminOnly(w, isAdmin, func() { s.handleResult(w, parts) })
	case "!sancionar":
		s.adminOnly(w, isAdmin, func() { s.handleAdjust(w, parts) })
	case "!recalcular":
		s.adminOnly(w, isAdmin, func() { s.handleRecalculate(w, parts) })
	case "!nuevopartido":
		s.adminOnly(w, isAdmin, func() { s.handleNewMatch(w, parts) })
	default:
		writeTwiML(w, "❓ Comando desconocido. Usa !ayuda.", "")
	}
}

func (s *Server) adminOnly(w http.ResponseWriter, isAdmin bool, handler func()) {
	if !isAdmin {
		writeTwiML(w, "⛔ Solo administradores.", "")
		return
	}
	handler()
}

// !pronostico [ID] [L-V]
func (s *Server) handlePredict(w http.ResponseWriter, senderID int64, parts []string) {
	if len(parts) != 3 {
		writeTwiML(w, "❌ Uso: !pronostico [ID] [L-V].\nEj: !pronostico 1 2-1\nUsa !partidos para ver IDs.", "")
		return
	}
	matchID, err := strconv.Atoi(parts[1])
	if err != nil {
		writeTwiML(w, "❌ El ID debe ser un número.", "")
		return
	}
	home, away, err := parseScore(parts[2])
	if err != nil {
		writeTwiML(w, "❌ Formato incorrecto. Ej: 2-1", "")
		return
	}

	_, err = s.services.PredictionService.Submit(senderID, matchID, home, away)
	switch {
	case errors.Is(err, application.ErrMatchNotFound):
		writeTwiML(w, "❌ El partido no existe.", "")
	case errors.Is(err, application.ErrInvalidState):
		writeTwiML(w, "❌ El partido ya ha cerrado.", "")
	case err != nil:
		s.logger.Error("webhook: submit failed: %s", err.Error())
		writeTwiML(w, "⚠️ No se pudo guardar el pronóstico.", "")
	default:
		writeTwiML(w, fmt.Sprintf("✅ Pronóstico guardado: Partido %d -> %d-%d", matchID, home, away), "")
	}
}

func (s *Server) handleOpenMatches(w http.ResponseWriter) {
	matches, err := s.services.MatchService.ListOpen()
	if err != nil {
		s.logger.Error("webhook: list open failed: %s", err.Error())
		writeTwiML(w, "⚠️ Error consultando partidos.", "")
		return
	}
	if len(matches) == 0 {
		writeTwiML(w, "💤 No hay partidos pendientes.", "")
		return
	}

	var sb strings.Builder
	sb.WriteString("📅 *Partidos Pendientes*\n")
	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("\n🆔 *%d*: %s vs %s (%s)", m.ID, m.HomeTeam, m.AwayTeam, m.Kickoff.Format(dateLayout)))
	}
	writeTwiML(w, sb.String(), "")
}

// !tabla [días]
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request, parts []string) {
	window, err := parseWindow(parts)
	if err != nil {
		writeTwiML(w, "❌ Uso: !tabla [días].\nEj: !tabla 30", "")
		return
	}

	imgURL := s.imageURL(r, window)
	writeTwiML(w, fmt.Sprintf("🏆 Aquí tienes la tabla de posiciones (%s):", window), imgURL)
}

// !resultado [ID] [L-V]
func (s *Server) handleResult(w http.ResponseWriter, parts []string) {
	if len(parts) != 3 {
		writeTwiML(w, "❌ Uso: !resultado [ID] [L-V].", "")
		return
	}
	matchID, err := strconv.Atoi(parts[1])
	if err != nil {
		writeTwiML(w, "❌ El ID debe ser un número.", "")
		return
	}
	home, away, err := parseScore(parts[2])
	if err != nil {
		writeTwiML(w, "❌ Formato incorrecto. Ej: 2-1", "")
		return
	}

	res, err := s.services.MatchService.Finalize(matchID, home, away)
	switch {
	case errors.Is(err, application.ErrMatchNotFound):
		writeTwiML(w, "❌ El partido no existe.", "")
	case err != nil:
		s.logger.Error("webhook: finalize failed: %s", err.Error())
		writeTwiML(w, "⚠️ No se pudo registrar el resultado; nada fue guardado.", "")
	default:
		writeTwiML(w, fmt.Sprintf("✅ Resultado %d: %d-%d guardado. %d pronósticos recalculados.", matchID, home, away, res.Recalculated), "")
	}
}

// !sancionar [ID usuario] [puntos] [motivo...]
func (s *Server) handleAdjust(w http.ResponseWriter, parts []string) {
	if len(parts) < 3 {
		writeTwiML(w, "❌ Uso: !sancionar [ID] [puntos] [motivo].", "")
		return
	}
	target, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		writeTwiML(w, "❌ El ID debe ser un número.", "")
		return
	}
	points, err := strconv.Atoi(parts[2])
	if err != nil {
		writeTwiML(w, "❌ Los puntos deben ser un número (puede ser negativo).", "")
		return
	}
	reason := strings.Join(parts[3:], " ")

	_, err = s.services.PredictionService.Adjust(target, points, reason)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		writeTwiML(w, "❌ El usuario no existe.", "")
	case err != nil:
		s.logger.Error("webhook: adjust failed: %s", err.Error())
		writeTwiML(w, "⚠️ No se pudo aplicar la sanción.", "")
	default:
		writeTwiML(w, fmt.Sprintf("✅ Sanción %d: %+d pts.", target, points), "")
	}
}

// !recalcular [ID]
func (s *Server) handleRecalculate(w http.ResponseWriter, parts []string) {
	if len(parts) != 2 {
		writeTwiML(w, "❌ Uso: !recalcular [ID].", "")
		return
	}
	matchID, err := strconv.Atoi(parts[1])
	if err != nil {
		writeTwiML(w, "❌ El ID debe ser un número.", "")
		return
	}

	count, err := s.services.MatchService.Recalculate(matchID)
	switch {
	case errors.Is(err, application.ErrMatchNotFound):
		writeTwiML(w, "❌ El partido no existe.", "")
	case err != nil:
		s.logger.Error("webhook: recalculate failed: %s", err.Error())
		writeTwiML(w, "⚠️ El recálculo falló; nada fue guardado.", "")
	default:
		writeTwiML(w, fmt.Sprintf("✅ %d pronósticos recalculados.", count), "")
	}
}

// !nuevopartido [Local] [Visitante] [dd/mm/aaaa hh:mm]
func (s *Server) handleNewMatch(w http.ResponseWriter, parts []string) {
	if len(parts) != 5 {
		writeTwiML(w, "❌ Uso: !nuevopartido [Local] [Visitante] [dd/mm/aaaa hh:mm].", "")
		return
	}
	kickoff, err := parseKickoff(parts[3] + " " + parts[4])
	if err != nil {
		writeTwiML(w, "❌ Fecha inválida. Ej: 25/12/2026 20:00", "")
		return
	}

	id, err := s.services.MatchService.Create(parts[1], parts[2], kickoff)
	if err != nil {
		s.logger.Error("webhook: create match failed: %s", err.Error())
		writeTwiML(w, "⚠️ No se pudo crear el partido.", "")
		return
	}
	writeTwiML(w, fmt.Sprintf("✅ Partido %d creado: %s vs %s.", id, parts[1], parts[2]), "")
}

func (s *Server) handleLeaderboardImage(w http.ResponseWriter, r *http.Request) {
	window := application.AllTime()
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			http.Error(w, "invalid days", http.StatusBadRequest)
			return
		}
		window, err = application.LastNDays(days)
		if err != nil {
			http.Error(w, "invalid days", http.StatusBadRequest)
			return
		}
	}

	img, err := s.services.LeaderboardService.RenderImage(window)
	if err != nil {
		s.logger.Error("webhook: render failed: %s", err.Error())
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}

// imageURL builds the absolute URL Twilio fetches the media from. The
// configured public base wins; otherwise the request host is assumed
// reachable from outside.
func (s *Server) imageURL(r *http.Request, window application.Window) string {
	base := s.publicBaseURL
	if base == "" {
		scheme := "https"
		if r.TLS == nil {
			scheme = "http"
		}
		base = scheme + "://" + r.Host
	}
	url := strings.TrimRight(base, "/") + "/leaderboard-image"
	if d := window.Days(); d > 0 {
		url += "?days=" + strconv.Itoa(d)
	}
	return url
}

func helpText(isAdmin bool) string {
	msg := "⚽ *Bot Pronósticos* ⚽\n\n" +
		"📋 *!partidos* -> Ver juegos.\n" +
		"🔮 *!pronostico [ID] [L-V]* -> Jugar.\n" +
		"   Ej: !pronostico 1 2-1\n" +
		"🏆 *!tabla [días]* -> Ver puntajes."
	if isAdmin {
		msg += "\n\n🔧 *Admin*\n" +
			"*!resultado [ID] [L-V]* -> Cerrar partido.\n" +
			"*!sancionar [ID] [pts] [motivo]* -> Ajustar puntos.\n" +
			"*!recalcular [ID]* -> Rehacer puntajes.\n" +
			"*!nuevopartido [Local] [Visitante] [fecha]* -> Crear partido."
	}
	return msg
}
