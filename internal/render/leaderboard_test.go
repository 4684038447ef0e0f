package render

import (
	"testing"

	"pronosbot/internal/application"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func TestRenderStandings(t *testing.T) {
	r := NewLeaderboardRenderer()
	standings := []application.Standing{
		{UserID: 1, Name: "Ana", Points: 12},
		{UserID: 2, Name: "Luis", Points: 7},
		{UserID: 3, Name: "Cata", Points: -2},
	}

	img, err := r.RenderStandings(standings, "Tabla de posiciones (histórica)")
	require.NoError(t, err)
	assert.Equal(t, pngMagic, img[:4])
}

func TestRenderStandingsEmpty(t *testing.T) {
	r := NewLeaderboardRenderer()

	img, err := r.RenderStandings(nil, "Tabla de posiciones (histórica)")
	require.NoError(t, err)
	assert.Equal(t, pngMagic, img[:4])
}

func TestRenderStandingsCapsBars(t *testing.T) {
	r := NewLeaderboardRenderer()
	standings := make([]application.Standing, 0, 25)
	for i := 0; i < 25; i++ {
		standings = append(standings, application.Standing{
			UserID: int64(i + 1),
			Name:   "Jugador",
			Points: 25 - i,
		})
	}

	img, err := r.RenderStandings(standings, "Tabla de posiciones (histórica)")
	require.NoError(t, err)
	assert.Equal(t, pngMagic, img[:4])
}
