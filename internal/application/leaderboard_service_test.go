package application

import (
	"bytes"
	"testing"
	"time"

	"pronosbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newLeaderboardService(store *fakeStore, renderer Renderer, sheet SheetSync) *LeaderboardServiceImpl {
	svc := NewLeaderboardServiceImpl(fakeUsers{store}, fakePredictions{store}, fakeAdjustments{store}, renderer, sheet, nopLogger{})
	svc.now = func() time.Time { return store.now }
	return svc
}

func (s *fakeStore) setPoints(userID int64, matchID, points int) {
	p := s.predictions[predKey{userID, matchID}]
	p.Points = points
}

func TestAggregateMergesPredictionsAndAdjustments(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ana")
	m1 := store.addOpenMatch(store.now.Add(-time.Hour))
	m2 := store.addOpenMatch(store.now.Add(-time.Hour))
	store.addPrediction(1, m1, 2, 0)
	store.addPrediction(1, m2, 1, 1)
	store.setPoints(1, m1, 5)
	store.setPoints(1, m2, 3)
	store.adjustments = append(store.adjustments, adjustmentAt(1, -2, store.now))

	svc := newLeaderboardService(store, &fakeRenderer{}, nil)
	standings, err := svc.Aggregate(AllTime())
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, "Ana", standings[0].Name)
	assert.Equal(t, 6, standings[0].Points)
}

func TestAggregateWindowFilters(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ana")
	store.addUser(2, "Luis")

	recent := store.addOpenMatch(store.now.Add(-24 * time.Hour))
	old := store.addOpenMatch(store.now.Add(-40 * 24 * time.Hour))
	store.addPrediction(1, recent, 2, 0)
	store.addPrediction(1, old, 2, 0)
	store.setPoints(1, recent, 3)
	store.setPoints(1, old, 5)

	store.adjustments = append(store.adjustments, adjustmentAt(2, 4, store.now.Add(-40*24*time.Hour)))

	svc := newLeaderboardService(store, &fakeRenderer{}, nil)

	window, err := LastNDays(30)
	require.NoError(t, err)
	standings, err := svc.Aggregate(window)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, int64(1), standings[0].UserID)
	assert.Equal(t, 3, standings[0].Points)

	standings, err = svc.Aggregate(AllTime())
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, 8, standings[0].Points)
	assert.Equal(t, 4, standings[1].Points)
}

func TestAggregateKeepsZeroTotals(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ana")
	store.addUser(2, "Luis")
	m := store.addOpenMatch(store.now.Add(-time.Hour))
	store.addPrediction(1, m, 2, 0)

	svc := newLeaderboardService(store, &fakeRenderer{}, nil)
	standings, err := svc.Aggregate(AllTime())
	require.NoError(t, err)

	// Ana played and scored nothing; Luis never played and is omitted.
	require.Len(t, standings, 1)
	assert.Equal(t, int64(1), standings[0].UserID)
	assert.Equal(t, 0, standings[0].Points)
}

func TestAggregateEmpty(t *testing.T) {
	store := newFakeStore()
	svc := newLeaderboardService(store, &fakeRenderer{}, nil)

	standings, err := svc.Aggregate(AllTime())
	require.NoError(t, err)
	assert.Empty(t, standings)
}

func TestAggregateOrdering(t *testing.T) {
	store := newFakeStore()
	store.addUser(3, "Cata")
	store.addUser(1, "Ana")
	store.addUser(2, "Luis")
	store.adjustments = append(store.adjustments,
		adjustmentAt(3, 10, store.now),
		adjustmentAt(1, 10, store.now),
		adjustmentAt(2, 7, store.now),
	)

	svc := newLeaderboardService(store, &fakeRenderer{}, nil)
	standings, err := svc.Aggregate(AllTime())
	require.NoError(t, err)
	require.Len(t, standings, 3)

	// Ties at 10 points break toward the lower user id.
	assert.Equal(t, int64(1), standings[0].UserID)
	assert.Equal(t, int64(3), standings[1].UserID)
	assert.Equal(t, int64(2), standings[2].UserID)
}

func TestRenderImageTitlesWindow(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ana")
	store.adjustments = append(store.adjustments, adjustmentAt(1, 4, store.now))

	renderer := &fakeRenderer{}
	svc := newLeaderboardService(store, renderer, nil)

	window, err := LastNDays(7)
	require.NoError(t, err)
	img, err := svc.RenderImage(window)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), img)
	assert.Equal(t, "Tabla de posiciones (últimos 7 días)", renderer.lastTitle)
	require.Len(t, renderer.lastStandings, 1)
}

func TestExportExcel(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ana")
	store.addUser(2, "Luis")
	store.adjustments = append(store.adjustments,
		adjustmentAt(1, 9, store.now),
		adjustmentAt(2, 4, store.now),
	)

	svc := newLeaderboardService(store, &fakeRenderer{}, nil)
	data, err := svc.ExportExcel(AllTime())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Posiciones", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)
	points, err := f.GetCellValue("Posiciones", "D3")
	require.NoError(t, err)
	assert.Equal(t, "4", points)
}

func TestSyncToSheetNotConfigured(t *testing.T) {
	store := newFakeStore()
	svc := newLeaderboardService(store, &fakeRenderer{}, nil)

	_, err := svc.SyncToSheet(AllTime())
	assert.Error(t, err)
}

func TestSyncToSheet(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ana")
	store.adjustments = append(store.adjustments, adjustmentAt(1, 9, store.now))

	sheet := &fakeSheet{}
	svc := newLeaderboardService(store, &fakeRenderer{}, sheet)

	url, err := svc.SyncToSheet(AllTime())
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/fake", url)
	require.Len(t, sheet.lastRows, 2)
	assert.Equal(t, "Ana", sheet.lastRows[1][2])
}

func adjustmentAt(userID int64, points int, at time.Time) models.ScoreAdjustment {
	return models.ScoreAdjustment{UserID: userID, Points: points, Reason: "ajuste", CreatedAt: at}
}
