package whatsapp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pronosbot/internal/application"
)

const kickoffLayout = "02/01/2006 15:04"

// parseSenderID extracts the numeric handle from a Twilio-style sender,
// e.g. "whatsapp:+5215512345678" or "5215512345678@c.us".
func parseSenderID(from string) (int64, error) {
	cleaned := strings.TrimPrefix(from, "whatsapp:")
	cleaned = strings.TrimSuffix(cleaned, "@c.us")
	cleaned = strings.TrimPrefix(cleaned, "+")
	if cleaned == "" {
		return 0, fmt.Errorf("empty sender")
	}
	id, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	return id, nil
}

// parseScore parses an "L-V" goal pair, rejecting negatives so the core
// only ever sees valid goal counts.
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

// parseWindow reads the optional day-count argument of !tabla.
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
