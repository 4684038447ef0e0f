package render

import (
	"bytes"
	"fmt"

	"pronosbot/internal/application"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth  = 800
	chartHeight = 420
	maxBars     = 15
)

var (
	colorBackground = drawing.Color{R: 0x1E, G: 0x27, B: 0x30, A: 0xFF}
	colorBar        = drawing.Color{R: 0x2E, G: 0xCC, B: 0x71, A: 0xFF}
	colorNegative   = drawing.Color{R: 0xE7, G: 0x4C, B: 0x3C, A: 0xFF}
	colorText       = drawing.Color{R: 0xEC, G: 0xF0, B: 0xF1, A: 0xFF}
)

// LeaderboardRenderer produces the standings PNG served to the messaging
// transport.
type LeaderboardRenderer struct{}

func NewLeaderboardRenderer() *LeaderboardRenderer {
	return &LeaderboardRenderer{}
}

func (r *LeaderboardRenderer) RenderStandings(standings []application.Standing, title string) ([]byte, error) {
	if len(standings) == 0 {
		return renderNoDataPlaceholder()
	}
	if len(standings) > maxBars {
		standings = standings[:maxBars]
	}

	minPoints, maxPoints := standings[0].Points, standings[0].Points
	bars := make([]chart.Value, 0, len(standings))
	for i, st := range standings {
		if st.Points < minPoints {
			minPoints = st.Points
		}
		if st.Points > maxPoints {
			maxPoints = st.Points
		}
		barColor := colorBar
		if st.Points < 0 {
			barColor = colorNegative
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%d. %s", i+1, st.Name),
			Value: float64(st.Points),
			Style: chart.Style{
				FillColor:   barColor,
				StrokeColor: barColor,
			},
		})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 40,
		Background: chart.Style{
			FillColor: colorBackground,
			FontColor: colorText,
		},
		Canvas: chart.Style{
			FillColor: colorBackground,
		},
		XAxis: chart.Style{
			FontColor: colorText,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: colorText,
			},
			Range: yRange(minPoints, maxPoints),
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render leaderboard chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// yRange pins the value axis so a board where everyone holds the same
// score still has a drawable span.
func yRange(minPoints, maxPoints int) chart.Range {
	lo := float64(minPoints)
	hi := float64(maxPoints)
	if lo > 0 {
		lo = 0
	}
	if hi <= lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func renderNoDataPlaceholder() ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "Aún no hay puntajes"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: colorBackground,
		},
		Canvas: chart.Style{
			FillColor: colorBackground,
		},
		XAxis: chart.XAxis{Style: chart.Hidden()},
		YAxis: chart.YAxis{Style: chart.Hidden()},
		// Render refuses a chart without series, so anchor it with one
		// drawn in the background color.
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style: chart.Style{
					StrokeColor: colorBackground,
					FillColor:   colorBackground,
				},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(colorText)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render placeholder: %w", err)
	}
	return buffer.Bytes(), nil
}
