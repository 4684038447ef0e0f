package application

import (
	"testing"

	"pronosbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	values := ScoringValues{Exact: 5, Partial: 3}

	tests := []struct {
		name            string
		predHome        int
		predAway        int
		goalsHome       int
		goalsAway       int
		wantPoints      int
		wantOutcome     models.Outcome
	}{
		{
			name:     "exact score",
			predHome: 2, predAway: 1, goalsHome: 2, goalsAway: 1,
			wantPoints: 5, wantOutcome: models.OutcomeExact,
		},
		{
			name:     "exact draw takes priority over direction",
			predHome: 0, predAway: 0, goalsHome: 0, goalsAway: 0,
			wantPoints: 5, wantOutcome: models.OutcomeExact,
		},
		{
			name:     "home win direction without exact score",
			predHome: 3, predAway: 1, goalsHome: 2, goalsAway: 0,
			wantPoints: 3, wantOutcome: models.OutcomePartial,
		},
		{
			name:     "away win direction without exact score",
			predHome: 0, predAway: 2, goalsHome: 1, goalsAway: 3,
			wantPoints: 3, wantOutcome: models.OutcomePartial,
		},
		{
			name:     "draw direction without exact score",
			predHome: 1, predAway: 1, goalsHome: 0, goalsAway: 0,
			wantPoints: 3, wantOutcome: models.OutcomePartial,
		},
		{
			name:     "full miss",
			predHome: 2, predAway: 0, goalsHome: 0, goalsAway: 2,
			wantPoints: 0, wantOutcome: models.OutcomeMiss,
		},
		{
			name:     "predicted draw on a decided match",
			predHome: 1, predAway: 1, goalsHome: 2, goalsAway: 1,
			wantPoints: 0, wantOutcome: models.OutcomeMiss,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, outcome := Evaluate(tt.predHome, tt.predAway, tt.goalsHome, tt.goalsAway, values)
			assert.Equal(t, tt.wantPoints, points)
			assert.Equal(t, tt.wantOutcome, outcome)
		})
	}
}

func TestEvaluateIsPure(t *testing.T) {
	values := ScoringValues{Exact: 5, Partial: 3}

	p1, o1 := Evaluate(3, 1, 2, 0, values)
	p2, o2 := Evaluate(3, 1, 2, 0, values)
	require.Equal(t, p1, p2)
	require.Equal(t, o1, o2)
}

func TestEvaluateUsesConfiguredValues(t *testing.T) {
	values := ScoringValues{Exact: 10, Partial: 7}

	points, outcome := Evaluate(2, 1, 2, 1, values)
	assert.Equal(t, 10, points)
	assert.Equal(t, models.OutcomeExact, outcome)

	points, outcome = Evaluate(3, 1, 2, 0, values)
	assert.Equal(t, 7, points)
	assert.Equal(t, models.OutcomePartial, outcome)
}

func TestScoringValuesFrom(t *testing.T) {
	tests := []struct {
		name string
		cfg  map[string]string
		want ScoringValues
	}{
		{
			name: "defaults when config is empty",
			cfg:  map[string]string{},
			want: ScoringValues{Exact: 5, Partial: 3},
		},
		{
			name: "configured values",
			cfg:  map[string]string{"exact_points": "8", "partial_points": "4"},
			want: ScoringValues{Exact: 8, Partial: 4},
		},
		{
			name: "malformed values fall back to defaults",
			cfg:  map[string]string{"exact_points": "many", "partial_points": ""},
			want: ScoringValues{Exact: 5, Partial: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoringValuesFrom(tt.cfg))
		})
	}
}
