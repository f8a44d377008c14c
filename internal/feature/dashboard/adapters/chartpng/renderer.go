// Package chartpng はダッシュボードのチャートをPNG画像に描画します。
package chartpng

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"cryptofolio/internal/feature/analytics/domain/entity"
)

var (
	// ErrNothingToDraw is returned for an empty chart or one whose values are all zero.
	ErrNothingToDraw = errors.New("nothing to draw")
	// ErrUnknownChart is returned by Render for an unrecognised chart name.
	ErrUnknownChart = errors.New("unknown chart")
)

const (
	width  = 900
	height = 400
)

var (
	currentColor  = drawing.ColorFromHex("2563eb")
	purchaseColor = drawing.ColorFromHex("9ca3af")
)

// RenderAllocation renders the allocation chart as a pie. Zero-valued slices are skipped.
func RenderAllocation(c entity.AllocationChart) ([]byte, error) {
	if c.Empty {
		return nil, ErrNothingToDraw
	}
	values := make([]chart.Value, 0, len(c.Slices))
	for _, s := range c.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{Label: s.Label, Value: s.Value})
	}
	if len(values) == 0 {
		return nil, ErrNothingToDraw
	}

	graph := chart.PieChart{
		Title:  "Portfolio Allocation",
		Width:  width,
		Height: height,
		Values: values,
	}
	return render(graph.Render)
}

// RenderGainLoss renders per-holding gain/loss bars around zero.
func RenderGainLoss(c entity.GainLossChart) ([]byte, error) {
	if c.Empty {
		return nil, ErrNothingToDraw
	}
	bars := make([]chart.Value, 0, len(c.Bars))
	lo, hi := 0.0, 0.0
	for _, b := range c.Bars {
		color := drawing.ColorFromHex(strings.TrimPrefix(b.Color, "#"))
		bars = append(bars, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
		lo, hi = min(lo, b.Value), max(hi, b.Value)
	}

	graph := chart.BarChart{
		Title:        "Gain/Loss by Holding",
		Width:        width,
		Height:       height,
		BarWidth:     40,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Range:          paddedRange(lo, hi),
			ValueFormatter: dollars,
		},
		Bars: bars,
	}
	return render(graph.Render)
}

// RenderPrices renders current and purchase price as two lines over the holdings.
func RenderPrices(c entity.PriceComparisonChart) ([]byte, error) {
	if c.Empty || len(c.Labels) == 0 {
		return nil, ErrNothingToDraw
	}
	xs := make([]float64, len(c.Labels))
	ticks := make([]chart.Tick, len(c.Labels))
	hi := 0.0
	for i, label := range c.Labels {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
		hi = max(hi, c.Current[i], c.Purchase[i])
	}

	graph := chart.Chart{
		Title:  "Current vs Purchase Price",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(xs)) - 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range:          paddedRange(0, hi),
			ValueFormatter: dollars,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Current Price",
				Style:   chart.Style{StrokeColor: currentColor, StrokeWidth: 2.5, DotWidth: 4, DotColor: currentColor},
				XValues: xs,
				YValues: c.Current,
			},
			chart.ContinuousSeries{
				Name:    "Purchase Price",
				Style:   chart.Style{StrokeColor: purchaseColor, StrokeWidth: 1.5, StrokeDashArray: []float64{5.0, 3.0}, DotWidth: 4, DotColor: purchaseColor},
				XValues: xs,
				YValues: c.Purchase,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}
	return render(graph.Render)
}

// RenderSentiment renders the sentiment scatter. Dot colour follows the positive
// percentage and dot width follows the bubble size.
func RenderSentiment(c entity.SentimentChart) ([]byte, error) {
	if c.Empty || len(c.Points) == 0 {
		return nil, ErrNothingToDraw
	}
	xs := make([]float64, len(c.Points))
	ys := make([]float64, len(c.Points))
	hi := 0.0
	for i, p := range c.Points {
		xs[i] = p.Score
		ys[i] = float64(p.Mentions)
		hi = max(hi, ys[i])
	}
	points := c.Points

	graph := chart.Chart{
		Title:  "Market Sentiment",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:  "Sentiment Score",
			Range: &chart.ContinuousRange{Min: -1, Max: 1},
		},
		YAxis: chart.YAxis{
			Name:  "Mention Count",
			Range: paddedRange(0, hi),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
						return float64(points[index].Size) / 2
					},
					DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
						return chart.Viridis(points[index].Intensity, 0, 100)
					},
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return render(graph.Render)
}

// Render draws the named chart ("allocation", "gainloss", "prices" or "sentiment").
func Render(name string, charts entity.Charts) ([]byte, error) {
	switch name {
	case "allocation":
		return RenderAllocation(charts.Allocation)
	case "gainloss":
		return RenderGainLoss(charts.GainLoss)
	case "prices":
		return RenderPrices(charts.Prices)
	case "sentiment":
		return RenderSentiment(charts.Sentiment)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownChart, name)
}

func render(fn func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// paddedRange returns a range covering [lo, hi] with 10% headroom and a non-zero span.
func paddedRange(lo, hi float64) *chart.ContinuousRange {
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.1
	if lo < 0 {
		lo -= pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + pad}
}

func dollars(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("$%.0f", f)
	}
	return ""
}
