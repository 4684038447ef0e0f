package application

import (
	"fmt"
	"sort"
	"time"

	"pronosbot/internal/repository"

	"github.com/xuri/excelize/v2"
)

type LeaderboardServiceImpl struct {
	users       repository.User
	predictions repository.Prediction
	adjustments repository.Adjustment
	renderer    Renderer
	sheet       SheetSync
	logger      Logger

	now func() time.Time
}

func NewLeaderboardServiceImpl(users repository.User, predictions repository.Prediction, adjustments repository.Adjustment, renderer Renderer, sheet SheetSync, logger Logger) *LeaderboardServiceImpl {
	return &LeaderboardServiceImpl{
		users:       users,
		predictions: predictions,
		adjustments: adjustments,
		renderer:    renderer,
		sheet:       sheet,
		logger:      logger,
		now:         time.Now,
	}
}

type Standing struct {
	UserID int64
	Name   string
	Points int
}

// Aggregate builds the ranked standings for the window. Predictions qualify
// by their match's kickoff, adjustments by their creation time. A user with
// any qualifying row appears even at zero points; users with no activity in
// the window are omitted. Ordering is points descending with ties broken by
// ascending user id, which keeps the output stable across runs.
func (s *LeaderboardServiceImpl) Aggregate(w Window) ([]Standing, error) {
	since := w.Since(s.now())

	predTotals, err := s.predictions.SumPointsByUser(since)
	if err != nil {
		return nil, err
	}
	adjTotals, err := s.adjustments.SumPointsByUser(since)
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]int, len(predTotals)+len(adjTotals))
	for userID, points := range predTotals {
		totals[userID] = points
	}
	for userID, points := range adjTotals {
		totals[userID] += points
	}
	if len(totals) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(totals))
	for userID := range totals {
		ids = append(ids, userID)
	}
	users, err := s.users.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	standings := make([]Standing, 0, len(totals))
	for userID, points := range totals {
		name, ok := names[userID]
		if !ok {
			name = fmt.Sprintf("Jugador %d", userID)
		}
		standings = append(standings, Standing{UserID: userID, Name: name, Points: points})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].UserID < standings[j].UserID
	})
	return standings, nil
}

func (s *LeaderboardServiceImpl) RenderImage(w Window) ([]byte, error) {
	standings, err := s.Aggregate(w)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Tabla de posiciones (%s)", w)
	return s.renderer.RenderStandings(standings, title)
}

func (s *LeaderboardServiceImpl) ExportExcel(w Window) ([]byte, error) {
	standings, err := s.Aggregate(w)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Posiciones"
	f.NewSheet(sheet)
	f.DeleteSheet("Sheet1")

	headers := []string{"Puesto", "ID", "Jugador", "Puntos"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for i, st := range standings {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), st.UserID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), st.Name)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), st.Points)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 16)
	f.SetColWidth(sheet, "C", "C", 24)
	f.SetColWidth(sheet, "D", "D", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *LeaderboardServiceImpl) SyncToSheet(w Window) (string, error) {
	if s.sheet == nil {
		return "", fmt.Errorf("google sheets sync is not configured")
	}

	standings, err := s.Aggregate(w)
	if err != nil {
		return "", err
	}

	rows := [][]interface{}{{"Puesto", "ID", "Jugador", "Puntos"}}
	for i, st := range standings {
		rows = append(rows, []interface{}{i + 1, st.UserID, st.Name, st.Points})
	}

	if err := s.sheet.UpdateStats(rows); err != nil {
		return "", fmt.Errorf("failed to sync standings: %w", err)
	}
	return s.sheet.SpreadsheetURL(), nil
}
