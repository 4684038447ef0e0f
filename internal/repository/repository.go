package repository

import (
	"database/sql"
	"time"

	"pronosbot/internal/models"
)

// ScoreFunc computes points and outcome for one prediction against the
// final result. The scoring rules and config snapshot are captured by the
// caller so every prediction in a pass is scored under the same rule set.
type ScoreFunc func(predHome, predAway, goalsHome, goalsAway int) (int, models.Outcome)

type User interface {
	GetByID(id int64) (*models.User, error)
	Upsert(user *models.User) error
	SetAdmin(id int64, isAdmin bool) error
	GetByIDs(ids []int64) ([]models.User, error)
}

type Match interface {
	Create(m models.Match) (int, error)
	GetByID(id int) (*models.Match, error)
	ListOpen() ([]models.Match, error)

	// FinalizeAndRecalculate records the final score, marks the match
	// FINALIZED and rescores every prediction in a single transaction.
	FinalizeAndRecalculate(id, goalsHome, goalsAway int, score ScoreFunc) (int, error)

	// Recalculate rescores predictions of an already finalized match.
	// Returns 0 without touching anything if the match is still open.
	Recalculate(id int, score ScoreFunc) (int, error)
}

type Prediction interface {
	Upsert(p models.Prediction) error
	GetByUserAndMatch(userID int64, matchID int) (*models.Prediction, error)
	ListByMatch(matchID int) ([]models.Prediction, error)

	// SumPointsByUser groups prediction points per user. A non-nil since
	// restricts the sum to predictions whose match kicks off at or after it.
	SumPointsByUser(since *time.Time) (map[int64]int, error)
}

type Adjustment interface {
	Insert(a models.ScoreAdjustment) (int, error)

	// SumPointsByUser groups adjustment points per user. A non-nil since
	// restricts the sum to adjustments created at or after it.
	SumPointsByUser(since *time.Time) (map[int64]int, error)
}

type GameConfig interface {
	GetAll() (map[string]string, error)
	Set(key, value string) error
}

type Repository struct {
	User
	Match
	Prediction
	Adjustment
	GameConfig
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		User:       NewUserPostgres(db),
		Match:      NewMatchPostgres(db),
		Prediction: NewPredictionPostgres(db),
		Adjustment: NewAdjustmentPostgres(db),
		GameConfig: NewGameConfigPostgres(db),
		db:         db,
	}
}
