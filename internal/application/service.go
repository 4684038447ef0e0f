package application

import (
	"time"

	"pronosbot/internal/models"
	"pronosbot/internal/repository"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Renderer turns ranked standings into a leaderboard image.
type Renderer interface {
	RenderStandings(standings []Standing, title string) ([]byte, error)
}

// SheetSync pushes tabular standings to an external spreadsheet.
type SheetSync interface {
	UpdateStats(data [][]interface{}) error
	SpreadsheetURL() string
}

type MatchService interface {
	Create(homeTeam, awayTeam string, kickoff time.Time) (int, error)
	ListOpen() ([]models.Match, error)
	Finalize(matchID, goalsHome, goalsAway int) (*FinalizationResult, error)
	Recalculate(matchID int) (int, error)
}

type PredictionService interface {
	RegisterUser(id int64, name string) (*models.User, error)
	Submit(userID int64, matchID, predHome, predAway int) (*models.Prediction, error)
	Adjust(targetUserID int64, points int, reason string) (*models.ScoreAdjustment, error)
	GrantAdmin(userID int64) error
}

type LeaderboardService interface {
	Aggregate(w Window) ([]Standing, error)
	RenderImage(w Window) ([]byte, error)
	ExportExcel(w Window) ([]byte, error)
	SyncToSheet(w Window) (string, error)
}

type Service struct {
	MatchService       MatchService
	PredictionService  PredictionService
	LeaderboardService LeaderboardService
}

func NewService(repos *repository.Repository, renderer Renderer, sheet SheetSync, logger Logger) *Service {
	return &Service{
		MatchService:       NewMatchServiceImpl(repos.Match, repos.GameConfig, logger),
		PredictionService:  NewPredictionServiceImpl(repos.User, repos.Match, repos.Prediction, repos.Adjustment, logger),
		LeaderboardService: NewLeaderboardServiceImpl(repos.User, repos.Prediction, repos.Adjustment, renderer, sheet, logger),
	}
}
