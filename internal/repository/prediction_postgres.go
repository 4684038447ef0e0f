package repository

import (
	"database/sql"
	"fmt"
	"time"

	"pronosbot/internal/models"
)

type PredictionPostgres struct {
	db *sql.DB
}

func NewPredictionPostgres(db *sql.DB) *PredictionPostgres {
	return &PredictionPostgres{db: db}
}

// Upsert stores the guess for the (user, match) pair. The composite primary
// key plus ON CONFLICT makes concurrent submissions race-free at the storage
// layer: the last applied values win, never a duplicate row. A fresh guess
// resets the row to unscored.
func (r *PredictionPostgres) Upsert(p models.Prediction) error {
	query := `
		INSERT INTO predictions (user_id, match_id, pred_home, pred_away, points, outcome)
		VALUES ($1, $2, $3, $4, 0, $5)
		ON CONFLICT (user_id, match_id) DO UPDATE
		SET pred_home = EXCLUDED.pred_home,
		    pred_away = EXCLUDED.pred_away,
		    points = 0,
		    outcome = EXCLUDED.outcome
	`
	_, err := r.db.Exec(query, p.UserID, p.MatchID, p.PredHome, p.PredAway, models.OutcomeUnscored)
	if err != nil {
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}
	return nil
}

func (r *PredictionPostgres) GetByUserAndMatch(userID int64, matchID int) (*models.Prediction, error) {
	var p models.Prediction
	query := "SELECT user_id, match_id, pred_home, pred_away, points, outcome FROM predictions WHERE user_id = $1 AND match_id = $2"
	err := r.db.QueryRow(query, userID, matchID).Scan(&p.UserID, &p.MatchID, &p.PredHome, &p.PredAway, &p.Points, &p.Outcome)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return &p, nil
}

func (r *PredictionPostgres) ListByMatch(matchID int) ([]models.Prediction, error) {
	query := "SELECT user_id, match_id, pred_home, pred_away, points, outcome FROM predictions WHERE match_id = $1 ORDER BY user_id"
	rows, err := r.db.Query(query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var predictions []models.Prediction
	for rows.Next() {
		var p models.Prediction
		if err := rows.Scan(&p.UserID, &p.MatchID, &p.PredHome, &p.PredAway, &p.Points, &p.Outcome); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}

// SumPointsByUser attributes prediction points to the time the match was
// played, not when the guess was made, so windowed standings follow the
// match calendar.
func (r *PredictionPostgres) SumPointsByUser(since *time.Time) (map[int64]int, error) {
	query := `
		SELECT p.user_id, COALESCE(SUM(p.points), 0)
		FROM predictions p
		JOIN matches m ON m.id = p.match_id
	`
	var args []interface{}
	if since != nil {
		query += " WHERE m.kickoff >= $1"
		args = append(args, *since)
	}
	query += " GROUP BY p.user_id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum prediction points: %w", err)
	}
	defer rows.Close()

	totals := make(map[int64]int)
	for rows.Next() {
		var userID int64
		var total int
		if err := rows.Scan(&userID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan prediction total: %w", err)
		}
		totals[userID] = total
	}
	return totals, rows.Err()
}
