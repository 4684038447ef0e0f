package repository

import (
	"database/sql"
	"fmt"

	"pronosbot/internal/models"
)

type MatchPostgres struct {
	db *sql.DB
}

func NewMatchPostgres(db *sql.DB) *MatchPostgres {
	return &MatchPostgres{db: db}
}

func (r *MatchPostgres) Create(m models.Match) (int, error) {
	var matchID int
	query := "INSERT INTO matches (home_team, away_team, kickoff) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRow(query, m.HomeTeam, m.AwayTeam, m.Kickoff).Scan(&matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert match: %w", err)
	}
	return matchID, nil
}

func (r *MatchPostgres) GetByID(id int) (*models.Match, error) {
	var m models.Match
	query := "SELECT id, home_team, away_team, kickoff, goals_home, goals_away, status FROM matches WHERE id = $1"
	err := r.db.QueryRow(query, id).Scan(&m.ID, &m.HomeTeam, &m.AwayTeam, &m.Kickoff, &m.GoalsHome, &m.GoalsAway, &m.Status)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &m, nil
}

func (r *MatchPostgres) ListOpen() ([]models.Match, error) {
	query := `
		SELECT id, home_team, away_team, kickoff, goals_home, goals_away, status
		FROM matches
		WHERE status = $1
		ORDER BY kickoff
	`
	rows, err := r.db.Query(query, models.MatchOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to query open matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.HomeTeam, &m.AwayTeam, &m.Kickoff, &m.GoalsHome, &m.GoalsAway, &m.Status); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// FinalizeAndRecalculate records the result, moves the match to FINALIZED
// and rescores every prediction on it inside a single transaction, so no
// reader observes a finalized match with stale points. Re-finalizing an
// already finalized match is allowed and simply re-runs the pass.
func (r *MatchPostgres) FinalizeAndRecalculate(id, goalsHome, goalsAway int, score ScoreFunc) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	query := "UPDATE matches SET goals_home = $1, goals_away = $2, status = $3 WHERE id = $4"
	res, err := tx.Exec(query, goalsHome, goalsAway, models.MatchFinalized, id)
	if err != nil {
		return 0, fmt.Errorf("failed to finalize match: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		err = sql.ErrNoRows
		return 0, err
	}

	count, err := rescorePredictions(tx, id, goalsHome, goalsAway, score)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return count, nil
}

// Recalculate re-runs the scoring pass for a finalized match. It is a no-op
// on an open match; this guard is independent of the finalize path.
func (r *MatchPostgres) Recalculate(id int, score ScoreFunc) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var status models.MatchStatus
	var goalsHome, goalsAway sql.NullInt64
	query := "SELECT status, goals_home, goals_away FROM matches WHERE id = $1"
	err = tx.QueryRow(query, id).Scan(&status, &goalsHome, &goalsAway)
	if err == sql.ErrNoRows {
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get match: %w", err)
	}

	if status != models.MatchFinalized || !goalsHome.Valid || !goalsAway.Valid {
		tx.Rollback()
		return 0, nil
	}

	count, err := rescorePredictions(tx, id, int(goalsHome.Int64), int(goalsAway.Int64), score)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return count, nil
}

func rescorePredictions(tx *sql.Tx, matchID, goalsHome, goalsAway int, score ScoreFunc) (int, error) {
	rows, err := tx.Query("SELECT user_id, pred_home, pred_away FROM predictions WHERE match_id = $1 FOR UPDATE", matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	type guess struct {
		userID int64
		home   int
		away   int
	}
	var guesses []guess
	for rows.Next() {
		var g guess
		if err := rows.Scan(&g.userID, &g.home, &g.away); err != nil {
			return 0, fmt.Errorf("failed to scan prediction: %w", err)
		}
		guesses = append(guesses, g)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to read predictions: %w", err)
	}

	for _, g := range guesses {
		points, outcome := score(g.home, g.away, goalsHome, goalsAway)
		_, err := tx.Exec(
			"UPDATE predictions SET points = $1, outcome = $2 WHERE user_id = $3 AND match_id = $4",
			points, outcome, g.userID, matchID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to update prediction: %w", err)
		}
	}
	return len(guesses), nil
}
