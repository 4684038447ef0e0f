package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pronosbot/internal/models"

	"github.com/lib/pq"
)

const pqForeignKeyViolation = "23503"

type AdjustmentPostgres struct {
	db *sql.DB
}

func NewAdjustmentPostgres(db *sql.DB) *AdjustmentPostgres {
	return &AdjustmentPostgres{db: db}
}

// Insert appends a ledger entry. There is no update path: corrections are
// new entries with an opposite sign.
func (r *AdjustmentPostgres) Insert(a models.ScoreAdjustment) (int, error) {
	var id int
	query := "INSERT INTO score_adjustments (user_id, points, reason) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRow(query, a.UserID, a.Points, a.Reason).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return 0, sql.ErrNoRows
		}
		return 0, fmt.Errorf("failed to insert adjustment: %w", err)
	}
	return id, nil
}

func (r *AdjustmentPostgres) SumPointsByUser(since *time.Time) (map[int64]int, error) {
	query := "SELECT user_id, COALESCE(SUM(points), 0) FROM score_adjustments"
	var args []interface{}
	if since != nil {
		query += " WHERE created_at >= $1"
		args = append(args, *since)
	}
	query += " GROUP BY user_id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum adjustment points: %w", err)
	}
	defer rows.Close()

	totals := make(map[int64]int)
	for rows.Next() {
		var userID int64
		var total int
		if err := rows.Scan(&userID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment total: %w", err)
		}
		totals[userID] = total
	}
	return totals, rows.Err()
}
