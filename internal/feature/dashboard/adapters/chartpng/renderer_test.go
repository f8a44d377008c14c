package chartpng

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analytics "cryptofolio/internal/feature/analytics/usecase"
	portfolio "cryptofolio/internal/feature/portfolio/domain/entity"
	sentiment "cryptofolio/internal/feature/sentiment/domain/entity"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRender(t *testing.T) {
	t.Parallel()

	charts := analytics.Shape(
		[]portfolio.Holding{
			{Symbol: "BTC", Name: "Bitcoin", Quantity: 0.5, PurchasePrice: 45000, CurrentPrice: 52000},
			{Symbol: "ADA", Name: "Cardano", Quantity: 1000, PurchasePrice: 0.5, CurrentPrice: 0.45},
		},
		[]sentiment.Sample{
			{Symbol: "BTC", Source: "twitter", Score: 0.75, MentionCount: 15000, PositivePercentage: 78},
			{Symbol: "DOT", Source: "reddit", Score: -0.2, MentionCount: 0, PositivePercentage: 10},
		},
	)

	for _, name := range []string{"allocation", "gainloss", "prices", "sentiment"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			png, err := Render(name, charts)

			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(png, pngMagic), "output is not a PNG")
		})
	}
}

func TestRender_SingleHolding(t *testing.T) {
	t.Parallel()

	charts := analytics.Shape([]portfolio.Holding{{Symbol: "ETH", Quantity: 1, PurchasePrice: 3000, CurrentPrice: 3000}}, nil)

	for _, name := range []string{"allocation", "gainloss", "prices"} {
		png, err := Render(name, charts)
		require.NoError(t, err, name)
		assert.True(t, bytes.HasPrefix(png, pngMagic), name)
	}
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	charts := analytics.Shape(nil, nil)

	for _, name := range []string{"allocation", "gainloss", "prices", "sentiment"} {
		_, err := Render(name, charts)
		assert.ErrorIs(t, err, ErrNothingToDraw, name)
	}
}

func TestRenderAllocation_AllZero(t *testing.T) {
	t.Parallel()

	c := analytics.Allocation([]portfolio.Holding{{Symbol: "USDC", Quantity: 0, CurrentPrice: 1}})

	_, err := RenderAllocation(c)

	assert.ErrorIs(t, err, ErrNothingToDraw)
}

func TestRender_UnknownChart(t *testing.T) {
	t.Parallel()

	_, err := Render("candles", analytics.Shape(nil, nil))

	assert.ErrorIs(t, err, ErrUnknownChart)
}
