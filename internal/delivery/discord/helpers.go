package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const kickoffLayout = "02/01/2006 15:04"

func (b *Bot) isAdmin(id int64) bool {
	_, ok := b.adminIDs[id]
	return ok
}

func (b *Bot) respondMessage(s *discordgo.Session, i *discordgo.Interaction, msg string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	})
}

// interactionUser resolves the invoking user for guild and DM interactions.
func interactionUser(i *discordgo.Interaction) (id, displayName string) {
	if i.Member != nil && i.Member.User != nil {
		u := i.Member.User
		return u.ID, valueOrDefault(i.Member.Nick, u.Username)
	}
	if i.User != nil {
		return i.User.ID, i.User.Username
	}
	return "", ""
}

func optionMap(i *discordgo.Interaction) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func parseScore(raw string) (int, int, error) {
	sep := strings.SplitN(raw, "-", 2)
	if len(sep) != 2 {
		return 0, 0, fmt.Errorf("score must look like 2-1")
	}
	home, err := strconv.Atoi(strings.TrimSpace(sep[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid home goals: %w", err)
	}
	away, err := strconv.Atoi(strings.TrimSpace(sep[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid away goals: %w", err)
	}
	if home < 0 || away < 0 {
		return 0, 0, fmt.Errorf("goal counts cannot be negative")
	}
	return home, away, nil
}

func parseKickoff(raw string) (time.Time, error) {
	return time.ParseInLocation(kickoffLayout, raw, time.Local)
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
