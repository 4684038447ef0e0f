package models

import "time"

type MatchStatus string

const (
	MatchOpen      MatchStatus = "OPEN"
	MatchFinalized MatchStatus = "FINALIZED"
)

// Outcome classifies a scored prediction against the final result.
type Outcome string

const (
	OutcomeExact    Outcome = "EXACT"
	OutcomePartial  Outcome = "PARTIAL"
	OutcomeMiss     Outcome = "MISS"
	OutcomeUnscored Outcome = "UNSCORED"
)

type User struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	IsAdmin   bool   `json:"is_admin" db:"is_admin"`
	AvatarURL string `json:"avatar_url" db:"avatar_url"`
}

type Match struct {
	ID        int         `json:"id" db:"id"`
	HomeTeam  string      `json:"home_team" db:"home_team"`
	AwayTeam  string      `json:"away_team" db:"away_team"`
	Kickoff   time.Time   `json:"kickoff" db:"kickoff"`
	GoalsHome *int        `json:"goals_home" db:"goals_home"`
	GoalsAway *int        `json:"goals_away" db:"goals_away"`
	Status    MatchStatus `json:"status" db:"status"`
}

// Prediction is derived data: points and outcome are always recomputable
// from the guess, the match result and the game config.
type Prediction struct {
	UserID   int64   `json:"user_id" db:"user_id"`
	MatchID  int     `json:"match_id" db:"match_id"`
	PredHome int     `json:"pred_home" db:"pred_home"`
	PredAway int     `json:"pred_away" db:"pred_away"`
	Points   int     `json:"points" db:"points"`
	Outcome  Outcome `json:"outcome" db:"outcome"`
}

// ScoreAdjustment is an append-only ledger entry; points can be negative.
type ScoreAdjustment struct {
	ID        int       `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Points    int       `json:"points" db:"points"`
	Reason    string    `json:"reason" db:"reason"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
