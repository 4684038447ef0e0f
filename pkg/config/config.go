package config

import (
	"pronosbot/internal/repository"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Repo     repository.Config `envPrefix:"REPO_"`
	LogLevel string            `env:"LOGGER_LEVEL" envDefault:"debug"`

	// WhatsApp webhook surface (Twilio).
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8080"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:""`

	// Optional chat transports; each starts only when its token is set.
	TelegramToken  string `env:"TELEGRAM_TOKEN" envDefault:""`
	DiscordToken   string `env:"DISCORD_TOKEN" envDefault:""`
	DiscordGuildID string `env:"DISCORD_GUILD_ID" envDefault:""`

	AdminUserIDs []int64 `env:"ADMIN_USER_IDS" envSeparator:"," envDefault:""`

	SheetsCredentials string `env:"SHEETS_CREDENTIALS" envDefault:""`
	SpreadsheetID     string `env:"SPREADSHEET_ID" envDefault:""`
	GoogleOwnerEmail  string `env:"GOOGLE_OWNER_EMAIL" envDefault:""`
}

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}
