// Seed utility: loads a handful of demo matches, the default scoring
// config and optionally grants the admin flag to a user.
package main

import (
	"flag"
	"fmt"
	"time"

	"pronosbot/internal/models"
	"pronosbot/internal/repository"
	"pronosbot/pkg/config"
	"pronosbot/pkg/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	adminID := flag.Int64("make-admin", 0, "user id to grant the admin flag")
	skipMatches := flag.Bool("skip-matches", false, "do not insert demo matches")
	flag.Parse()

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

	repos := repository.NewRepository(db)

	if err := repos.GameConfig.Set("exact_points", "5"); err != nil {
		log.Error("failed to seed config: %s", err.Error())
		return
	}
	if err := repos.GameConfig.Set("partial_points", "3"); err != nil {
		log.Error("failed to seed config: %s", err.Error())
		return
	}
	log.Info("Scoring config seeded")

	if !*skipMatches {
		now := time.Now()
		demo := []models.Match{
			{HomeTeam: "México", AwayTeam: "Brasil", Kickoff: now.Add(24 * time.Hour)},
			{HomeTeam: "Argentina", AwayTeam: "Uruguay", Kickoff: now.Add(48 * time.Hour)},
			{HomeTeam: "España", AwayTeam: "Francia", Kickoff: now.Add(72 * time.Hour)},
		}
		for _, m := range demo {
			id, err := repos.Match.Create(m)
			if err != nil {
				log.Error("failed to seed match: %s", err.Error())
				return
			}
			log.Info("Match %d seeded: %s vs %s", id, m.HomeTeam, m.AwayTeam)
		}
	}

	if *adminID != 0 {
		if err := repos.User.Upsert(&models.User{ID: *adminID, Name: fmt.Sprintf("Admin %d", *adminID)}); err != nil {
			log.Error("failed to ensure admin user: %s", err.Error())
			return
		}
		if err := repos.User.SetAdmin(*adminID, true); err != nil {
			log.Error("failed to grant admin: %s", err.Error())
			return
		}
		log.Info("User %d is now admin", *adminID)
	}
}
