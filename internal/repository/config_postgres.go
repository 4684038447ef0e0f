package repository

import (
	"database/sql"
	"fmt"
)

type GameConfigPostgres struct {
	db *sql.DB
}

func NewGameConfigPostgres(db *sql.DB) *GameConfigPostgres {
	return &GameConfigPostgres{db: db}
}

func (r *GameConfigPostgres) GetAll() (map[string]string, error) {
	rows, err := r.db.Query("SELECT key, value FROM game_config")
	if err != nil {
		return nil, fmt.Errorf("failed to query game config: %w", err)
	}
	defer rows.Close()

	cfg := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan config entry: %w", err)
		}
		cfg[key] = value
	}
	return cfg, rows.Err()
}

func (r *GameConfigPostgres) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO game_config (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set config entry: %w", err)
	}
	return nil
}
