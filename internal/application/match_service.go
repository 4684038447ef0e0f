package application

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pronosbot/internal/models"
	"pronosbot/internal/repository"
)

type MatchServiceImpl struct {
	matches repository.Match
	config  repository.GameConfig
	logger  Logger
}

func NewMatchServiceImpl(matches repository.Match, config repository.GameConfig, logger Logger) *MatchServiceImpl {
	return &MatchServiceImpl{
		matches: matches,
		config:  config,
		logger:  logger,
	}
}

type FinalizationResult struct {
	MatchID      int
	GoalsHome    int
	GoalsAway    int
	Recalculated int
	Status       models.MatchStatus
}

func (s *MatchServiceImpl) Create(homeTeam, awayTeam string, kickoff time.Time) (int, error) {
	if homeTeam == "" || awayTeam == "" {
		return 0, fmt.Errorf("both team names are required")
	}
	return s.matches.Create(models.Match{
		HomeTeam: homeTeam,
		AwayTeam: awayTeam,
		Kickoff:  kickoff,
		Status:   models.MatchOpen,
	})
}

func (s *MatchServiceImpl) ListOpen() ([]models.Match, error) {
	return s.matches.ListOpen()
}

// Finalize records the result and recalculates every prediction for the
// match as one unit of work. Finalizing an already finalized match is a
// supported admin correction and re-runs the same pass.
func (s *MatchServiceImpl) Finalize(matchID, goalsHome, goalsAway int) (*FinalizationResult, error) {
	score, err := s.scoreFunc()
	if err != nil {
		return nil, err
	}

	count, err := s.matches.FinalizeAndRecalculate(matchID, goalsHome, goalsAway, score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, &RecalculationError{MatchID: matchID, Err: err}
	}

	s.logger.Info("match %d finalized %d-%d, %d predictions rescored", matchID, goalsHome, goalsAway, count)
	return &FinalizationResult{
		MatchID:      matchID,
		GoalsHome:    goalsHome,
		GoalsAway:    goalsAway,
		Recalculated: count,
		Status:       models.MatchFinalized,
	}, nil
}

// Recalculate re-runs the scoring pass for one match. Running it on an open
// match returns 0 and mutates nothing; running it twice with an unchanged
// result and config leaves every prediction in the same state.
func (s *MatchServiceImpl) Recalculate(matchID int) (int, error) {
	score, err := s.scoreFunc()
	if err != nil {
		return 0, err
	}

	count, err := s.matches.Recalculate(matchID, score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrMatchNotFound
	}
	if err != nil {
		return 0, &RecalculationError{MatchID: matchID, Err: err}
	}
	return count, nil
}

// scoreFunc snapshots the scoring config once so every prediction in the
// pass is evaluated under the same point values.
func (s *MatchServiceImpl) scoreFunc() (repository.ScoreFunc, error) {
	cfg, err := s.config.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring config: %w", err)
	}
	values := ScoringValuesFrom(cfg)

	return func(predHome, predAway, goalsHome, goalsAway int) (int, models.Outcome) {
		return Evaluate(predHome, predAway, goalsHome, goalsAway, values)
	}, nil
}
