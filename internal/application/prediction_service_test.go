package application

import (
	"testing"
	"time"

	"pronosbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPredictionService(store *fakeStore) *PredictionServiceImpl {
	svc := NewPredictionServiceImpl(fakeUsers{store}, fakeMatches{store}, fakePredictions{store}, fakeAdjustments{store}, nopLogger{})
	svc.now = func() time.Time { return store.now }
	return svc
}

func TestRegisterUserCreatesAndRenames(t *testing.T) {
	store := newFakeStore()
	svc := newPredictionService(store)

	user, err := svc.RegisterUser(7, "Ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	user, err = svc.RegisterUser(7, "Ana María")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", user.Name)
	assert.Len(t, store.users, 1)
}

func TestRegisterUserWithoutName(t *testing.T) {
	store := newFakeStore()
	svc := newPredictionService(store)

	user, err := svc.RegisterUser(7, "")
	require.NoError(t, err)
	assert.Equal(t, "Jugador 7", user.Name)
}

func TestSubmitUnknownMatch(t *testing.T) {
	store := newFakeStore()
	svc := newPredictionService(store)

	_, err := svc.Submit(1, 99, 2, 1)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestSubmitOnFinalizedMatch(t *testing.T) {
	store := newFakeStore()
	matchID := store.addOpenMatch(store.now.Add(time.Hour))
	goals := 1
	store.matches[matchID].Status = models.MatchFinalized
	store.matches[matchID].GoalsHome = &goals
	store.matches[matchID].GoalsAway = &goals
	svc := newPredictionService(store)

	_, err := svc.Submit(1, matchID, 2, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSubmitAfterKickoff(t *testing.T) {
	store := newFakeStore()
	matchID := store.addOpenMatch(store.now.Add(-time.Minute))
	svc := newPredictionService(store)

	_, err := svc.Submit(1, matchID, 2, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSubmitUpsertKeepsLastGuess(t *testing.T) {
	store := newFakeStore()
	matchID := store.addOpenMatch(store.now.Add(time.Hour))
	svc := newPredictionService(store)

	_, err := svc.Submit(1, matchID, 2, 1)
	require.NoError(t, err)

	_, err = svc.Submit(1, matchID, 0, 0)
	require.NoError(t, err)

	stored := store.predictions[predKey{1, matchID}]
	assert.Equal(t, 0, stored.PredHome)
	assert.Equal(t, 0, stored.PredAway)
	assert.Equal(t, models.OutcomeUnscored, stored.Outcome)
	assert.Len(t, store.predictions, 1)
}

func TestAdjustUnknownUser(t *testing.T) {
	store := newFakeStore()
	svc := newPredictionService(store)

	_, err := svc.Adjust(99, -2, "llegó tarde")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdjustAppendsLedgerEntry(t *testing.T) {
	store := newFakeStore()
	store.addUser(5, "Luis")
	svc := newPredictionService(store)

	adj, err := svc.Adjust(5, -2, "llegó tarde")
	require.NoError(t, err)
	assert.Equal(t, -2, adj.Points)

	adj, err = svc.Adjust(5, 4, "")
	require.NoError(t, err)
	assert.Equal(t, "Ajuste manual", adj.Reason)
	assert.Len(t, store.adjustments, 2)
}

func TestGrantAdmin(t *testing.T) {
	store := newFakeStore()
	store.addUser(5, "Luis")
	svc := newPredictionService(store)

	require.NoError(t, svc.GrantAdmin(5))
	assert.True(t, store.users[5].IsAdmin)

	assert.ErrorIs(t, svc.GrantAdmin(99), ErrUserNotFound)
}
