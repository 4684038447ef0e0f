package main

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pronosbot/internal/application"
	"pronosbot/internal/delivery/discord"
	"pronosbot/internal/delivery/telegram"
	"pronosbot/internal/delivery/whatsapp"
	"pronosbot/internal/render"
	"pronosbot/internal/repository"
	"pronosbot/pkg/config"
	"pronosbot/pkg/logger"
	"pronosbot/pkg/sheets"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	db, err := repository.NewPostgresDB(&cfg.Repo)
	if err != nil {
		log.Error("failed to init db: %s", err.Error())
		return
	}
	defer db.Close()

	log.Info("Running migrations...")
	if err := repository.RunMigrations(db, migrationFS); err != nil {
		log.Error("failed to run migrations: %s", err.Error())
		return
	}
	log.Info("Migrations applied successfully")

	repos := repository.NewRepository(db)

	var sheetSync application.SheetSync
	if cfg.SheetsCredentials != "" {
		client, err := sheets.NewClient(cfg.SheetsCredentials, cfg.SpreadsheetID)
		if err != nil {
			log.Error("failed to init sheets client: %s", err.Error())
			return
		}
		if _, err := client.EnsureSpreadsheet("Pronósticos", cfg.GoogleOwnerEmail); err != nil {
			log.Error("failed to prepare spreadsheet: %s", err.Error())
			return
		}
		sheetSync = client
	}

	services := application.NewService(repos, render.NewLeaderboardRenderer(), sheetSync, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := whatsapp.NewServer(&cfg, services, log)
	go func() {
		if err := server.Run(); err != nil {
			log.Error("webhook server error: %s", err.Error())
		}
	}()

	var tgBot *telegram.Bot
	if cfg.TelegramToken != "" {
		tgBot, err = telegram.NewBot(cfg.TelegramToken, cfg.AdminUserIDs, services, log)
		if err != nil {
			log.Error("failed to init telegram bot: %s", err.Error())
			return
		}
		go tgBot.Start()
	}

	var dcBot *discord.Bot
	if cfg.DiscordToken != "" {
		dcBot, err = discord.NewBot(&cfg, services, log)
		if err != nil {
			log.Error("failed to init discord bot: %s", err.Error())
			return
		}
		if err := dcBot.Init(); err != nil {
			log.Error("failed to init discord bot: %s", err.Error())
			return
		}
		go func() {
			if err := dcBot.Run(ctx); err != nil {
				log.Error("discord bot run error: %s", err.Error())
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("webhook shutdown error: %s", err.Error())
	}
	if tgBot != nil {
		tgBot.Stop()
	}
	if dcBot != nil {
		dcBot.Stop()
	}
	log.Info("Bot stopped")
}
