package application

import (
	"database/sql"
	"errors"
	"time"

	"pronosbot/internal/models"
	"pronosbot/internal/repository"
)

// In-memory stand-ins for the postgres repositories. They share one store so
// the finalize path can rescore predictions the way the real transaction does.

type predKey struct {
	userID  int64
	matchID int
}

type fakeStore struct {
	users       map[int64]*models.User
	matches     map[int]*models.Match
	predictions map[predKey]*models.Prediction
	adjustments []models.ScoreAdjustment
	config      map[string]string

	nextMatchID int
	nextAdjID   int

	failRescore bool
	now         time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[int64]*models.User),
		matches:     make(map[int]*models.Match),
		predictions: make(map[predKey]*models.Prediction),
		config:      make(map[string]string),
		nextMatchID: 1,
		nextAdjID:   1,
		now:         time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) addUser(id int64, name string) {
	s.users[id] = &models.User{ID: id, Name: name}
}

func (s *fakeStore) addOpenMatch(kickoff time.Time) int {
	id := s.nextMatchID
	s.nextMatchID++
	s.matches[id] = &models.Match{
		ID:       id,
		HomeTeam: "Local",
		AwayTeam: "Visitante",
		Kickoff:  kickoff,
		Status:   models.MatchOpen,
	}
	return id
}

func (s *fakeStore) addPrediction(userID int64, matchID, home, away int) {
	s.predictions[predKey{userID, matchID}] = &models.Prediction{
		UserID:   userID,
		MatchID:  matchID,
		PredHome: home,
		PredAway: away,
		Outcome:  models.OutcomeUnscored,
	}
}

type fakeUsers struct{ *fakeStore }

func (f fakeUsers) GetByID(id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (f fakeUsers) Upsert(user *models.User) error {
	if existing, ok := f.users[user.ID]; ok {
		existing.Name = user.Name
		return nil
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f fakeUsers) SetAdmin(id int64, isAdmin bool) error {
	u, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.IsAdmin = isAdmin
	return nil
}

func (f fakeUsers) GetByIDs(ids []int64) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

type fakeMatches struct{ *fakeStore }

func (f fakeMatches) Create(m models.Match) (int, error) {
	id := f.nextMatchID
	f.fakeStore.nextMatchID++
	m.ID = id
	m.Status = models.MatchOpen
	f.matches[id] = &m
	return id, nil
}

func (f fakeMatches) GetByID(id int) (*models.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *m
	return &copied, nil
}

func (f fakeMatches) ListOpen() ([]models.Match, error) {
	var matches []models.Match
	for _, m := range f.matches {
		if m.Status == models.MatchOpen {
			matches = append(matches, *m)
		}
	}
	return matches, nil
}

func (f fakeMatches) FinalizeAndRecalculate(id, goalsHome, goalsAway int, score repository.ScoreFunc) (int, error) {
	if f.failRescore {
		return 0, errors.New("simulated persistence failure")
	}
	m, ok := f.matches[id]
	if !ok {
		return 0, sql.ErrNoRows
	}
	m.GoalsHome = &goalsHome
	m.GoalsAway = &goalsAway
	m.Status = models.MatchFinalized
	return f.rescore(id, goalsHome, goalsAway, score), nil
}

func (f fakeMatches) Recalculate(id int, score repository.ScoreFunc) (int, error) {
	if f.failRescore {
		return 0, errors.New("simulated persistence failure")
	}
	m, ok := f.matches[id]
	if !ok {
		return 0, sql.ErrNoRows
	}
	if m.Status != models.MatchFinalized || m.GoalsHome == nil || m.GoalsAway == nil {
		return 0, nil
	}
	return f.rescore(id, *m.GoalsHome, *m.GoalsAway, score), nil
}

func (f fakeMatches) rescore(matchID, goalsHome, goalsAway int, score repository.ScoreFunc) int {
	count := 0
	for key, p := range f.predictions {
		if key.matchID != matchID {
			continue
		}
		p.Points, p.Outcome = score(p.PredHome, p.PredAway, goalsHome, goalsAway)
		count++
	}
	return count
}

type fakePredictions struct{ *fakeStore }

func (f fakePredictions) Upsert(p models.Prediction) error {
	p.Points = 0
	p.Outcome = models.OutcomeUnscored
	f.predictions[predKey{p.UserID, p.MatchID}] = &p
	return nil
}

func (f fakePredictions) GetByUserAndMatch(userID int64, matchID int) (*models.Prediction, error) {
	p, ok := f.predictions[predKey{userID, matchID}]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (f fakePredictions) ListByMatch(matchID int) ([]models.Prediction, error) {
	var predictions []models.Prediction
	for key, p := range f.predictions {
		if key.matchID == matchID {
			predictions = append(predictions, *p)
		}
	}
	return predictions, nil
}

func (f fakePredictions) SumPointsByUser(since *time.Time) (map[int64]int, error) {
	totals := make(map[int64]int)
	for key, p := range f.predictions {
		m, ok := f.matches[key.matchID]
		if !ok {
			continue
		}
		if since != nil && m.Kickoff.Before(*since) {
			continue
		}
		totals[key.userID] += p.Points
	}
	return totals, nil
}

type fakeAdjustments struct{ *fakeStore }

func (f fakeAdjustments) Insert(a models.ScoreAdjustment) (int, error) {
	if _, ok := f.users[a.UserID]; !ok {
		return 0, sql.ErrNoRows
	}
	a.ID = f.nextAdjID
	f.fakeStore.nextAdjID++
	if a.CreatedAt.IsZero() {
		a.CreatedAt = f.now
	}
	f.fakeStore.adjustments = append(f.fakeStore.adjustments, a)
	return a.ID, nil
}

func (f fakeAdjustments) SumPointsByUser(since *time.Time) (map[int64]int, error) {
	totals := make(map[int64]int)
	for _, a := range f.fakeStore.adjustments {
		if since != nil && a.CreatedAt.Before(*since) {
			continue
		}
		totals[a.UserID] += a.Points
	}
	return totals, nil
}

type fakeGameConfig struct{ *fakeStore }

func (f fakeGameConfig) GetAll() (map[string]string, error) {
	copied := make(map[string]string, len(f.config))
	for k, v := range f.config {
		copied[k] = v
	}
	return copied, nil
}

func (f fakeGameConfig) Set(key, value string) error {
	f.config[key] = value
	return nil
}

type nopLogger struct{}

func (nopLogger) Error(format string, v ...interface{}) {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Debug(format string, v ...interface{}) {}

type fakeRenderer struct {
	lastStandings []Standing
	lastTitle     string
}

func (f *fakeRenderer) RenderStandings(standings []Standing, title string) ([]byte, error) {
	f.lastStandings = standings
	f.lastTitle = title
	return []byte("png"), nil
}

type fakeSheet struct {
	lastRows [][]interface{}
}

func (f *fakeSheet) UpdateStats(data [][]interface{}) error {
	f.lastRows = data
	return nil
}

func (f *fakeSheet) SpreadsheetURL() string {
	return "https://docs.google.com/spreadsheets/d/fake"
}
