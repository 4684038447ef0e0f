package application

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pronosbot/internal/models"
	"pronosbot/internal/repository"
)

type PredictionServiceImpl struct {
	users       repository.User
	matches     repository.Match
	predictions repository.Prediction
	adjustments repository.Adjustment
	logger      Logger

	now func() time.Time
}

func NewPredictionServiceImpl(users repository.User, matches repository.Match, predictions repository.Prediction, adjustments repository.Adjustment, logger Logger) *PredictionServiceImpl {
	return &PredictionServiceImpl{
		users:       users,
		matches:     matches,
		predictions: predictions,
		adjustments: adjustments,
		logger:      logger,
		now:         time.Now,
	}
}

// RegisterUser creates the sender on first contact and keeps the display
// name in sync with the one used on the inbound message.
func (s *PredictionServiceImpl) RegisterUser(id int64, name string) (*models.User, error) {
	if name == "" {
		name = fmt.Sprintf("Jugador %d", id)
	}
	user := &models.User{ID: id, Name: name}
	if err := s.users.Upsert(user); err != nil {
		return nil, err
	}
	stored, err := s.users.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user after upsert: %w", err)
	}
	return stored, nil
}

// Submit stores or replaces the guess for the (user, match) pair. Guesses
// are accepted only while the match is open and before kickoff; goal counts
// must already be validated non-negative by the delivery layer.
func (s *PredictionServiceImpl) Submit(userID int64, matchID, predHome, predAway int) (*models.Prediction, error) {
	match, err := s.matches.GetByID(matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}

	if match.Status != models.MatchOpen {
		return nil, fmt.Errorf("%w: match %d is already finalized", ErrInvalidState, matchID)
	}
	if !s.now().Before(match.Kickoff) {
		return nil, fmt.Errorf("%w: match %d has already kicked off", ErrInvalidState, matchID)
	}

	p := models.Prediction{
		UserID:   userID,
		MatchID:  matchID,
		PredHome: predHome,
		PredAway: predAway,
		Outcome:  models.OutcomeUnscored,
	}
	if err := s.predictions.Upsert(p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Adjust appends a manual score correction for a user. Entries are
// immutable once written.
func (s *PredictionServiceImpl) Adjust(targetUserID int64, points int, reason string) (*models.ScoreAdjustment, error) {
	if reason == "" {
		reason = "Ajuste manual"
	}
	adj := models.ScoreAdjustment{
		UserID: targetUserID,
		Points: points,
		Reason: reason,
	}
	id, err := s.adjustments.Insert(adj)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	adj.ID = id
	s.logger.Info("adjustment %d: user %d, %+d points (%s)", id, targetUserID, points, reason)
	return &adj, nil
}

func (s *PredictionServiceImpl) GrantAdmin(userID int64) error {
	err := s.users.SetAdmin(userID, true)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	return err
}
