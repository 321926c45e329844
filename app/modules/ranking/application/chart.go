package rankingservice

import (
	"bytes"
	"context"
	"fmt"

	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette colors the ranking chart.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	Text       drawing.Color
}

// DefaultPalette matches the gold of the ranking embeds.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorFromHex("2b2d31"),
	Bar:        drawing.ColorFromHex("f1c40f"),
	Text:       drawing.ColorFromHex("f2f3f5"),
}

var chartTitles = map[rankingdomain.Window]string{
	rankingdomain.WindowDaily:      "Daily Ranking / Classifica Giornaliera",
	rankingdomain.WindowHistorical: "Historical Ranking / Classifica Storica",
}

// RenderChart draws the top n standings of w as a PNG bar chart.
func (s *RankingService) RenderChart(ctx context.Context, w rankingdomain.Window, n int) ([]byte, error) {
	standings, err := s.Top(ctx, w, n)
	if err != nil {
		return nil, err
	}
	png, err := GenerateRankingChart(chartTitles[w], standings, DefaultPalette)
	if err != nil {
		return nil, fmt.Errorf("failed to render ranking chart: %w", err)
	}
	return png, nil
}

// GenerateRankingChart produces a PNG bar chart, one bar per standing.
func GenerateRankingChart(title string, standings []rankingdomain.Standing, palette ChartPalette) ([]byte, error) {
	if len(standings) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	bars := make([]chart.Value, len(standings))
	lo, hi := 0.0, 1.0
	for i, st := range standings {
		v := float64(st.Points)
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%d. %s", st.Position, st.Name),
			Value: v,
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.Bar,
			},
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}

	graph := chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{FontColor: palette.Text},
		Width:      900,
		Height:     450,
		BarWidth:   60,
		BarSpacing: 20,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{FillColor: palette.Background},
		XAxis:  chart.Style{FontColor: palette.Text, StrokeColor: palette.Text},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.Text},
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// renderNoDataPlaceholder draws the message straight on the renderer, a
// chart without series refuses to render.
func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No data yet / Ancora nessun dato"
	)

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	r.SetFillColor(palette.Background)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(palette.Text)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
