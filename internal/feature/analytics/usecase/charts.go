package usecase

import (
	"math"

	"cryptofolio/internal/feature/analytics/domain/entity"
	portfolio "cryptofolio/internal/feature/portfolio/domain/entity"
	sentiment "cryptofolio/internal/feature/sentiment/domain/entity"
)

const (
	// NoDataMessage は描画対象がない保有銘柄チャートの表示文言です。
	NoDataMessage = "No data available"
	// NoSentimentMessage はセンチメントが空の場合の表示文言です。
	NoSentimentMessage = "No sentiment data available"

	// GainColor と LossColor は損益チャートのバーの色です。
	GainColor = "#198754"
	LossColor = "#dc3545"

	minBubbleSize = 6
	maxBubbleSize = 40
)

// Allocation は保有銘柄ごとの評価額を返します。
func Allocation(holdings []portfolio.Holding) entity.AllocationChart {
	if len(holdings) == 0 {
		return entity.AllocationChart{Marker: noData(NoDataMessage)}
	}
	slices := make([]entity.Slice, 0, len(holdings))
	for _, h := range holdings {
		slices = append(slices, entity.Slice{Label: h.Label(), Value: h.MarketValue()})
	}
	return entity.AllocationChart{Slices: slices}
}

// GainLoss は保有銘柄ごとの含み損益を返します。0は利益側に分類されます。
func GainLoss(holdings []portfolio.Holding) entity.GainLossChart {
	if len(holdings) == 0 {
		return entity.GainLossChart{Marker: noData(NoDataMessage)}
	}
	bars := make([]entity.Bar, 0, len(holdings))
	for _, h := range holdings {
		v := h.GainLoss()
		b := entity.Bar{Label: h.Label(), Value: v, Direction: entity.DirectionGain, Color: GainColor}
		if v < 0 {
			b.Direction = entity.DirectionLoss
			b.Color = LossColor
		}
		bars = append(bars, b)
	}
	return entity.GainLossChart{Bars: bars}
}

// PriceComparison は現在価格と取得価格の2系列を保有銘柄の順序で返します。
func PriceComparison(holdings []portfolio.Holding) entity.PriceComparisonChart {
	if len(holdings) == 0 {
		return entity.PriceComparisonChart{Marker: noData(NoDataMessage)}
	}
	c := entity.PriceComparisonChart{
		Labels:   make([]string, 0, len(holdings)),
		Current:  make([]float64, 0, len(holdings)),
		Purchase: make([]float64, 0, len(holdings)),
	}
	for _, h := range holdings {
		c.Labels = append(c.Labels, h.Label())
		c.Current = append(c.Current, h.CurrentPrice)
		c.Purchase = append(c.Purchase, h.PurchasePrice)
	}
	return c
}

// Sentiment はセンチメントを散布図の点に変換します。
func Sentiment(samples []sentiment.Sample) entity.SentimentChart {
	if len(samples) == 0 {
		return entity.SentimentChart{Marker: noData(NoSentimentMessage)}
	}
	points := make([]entity.Bubble, 0, len(samples))
	for _, s := range samples {
		points = append(points, entity.Bubble{
			Label:     s.Label(),
			Score:     s.Score,
			Mentions:  s.MentionCount,
			Intensity: s.PositivePercentage,
			Size:      BubbleSize(s.MentionCount),
		})
	}
	return entity.SentimentChart{Points: points}
}

// BubbleSize は言及数の平方根を整数に切り捨て、[6, 40] に収めます。
func BubbleSize(mentions int64) int {
	if mentions <= 0 {
		return minBubbleSize
	}
	size := int(math.Sqrt(float64(mentions)))
	return min(max(size, minBubbleSize), maxBubbleSize)
}

// Shape は同じスナップショットから全チャートを組み立てます。
func Shape(holdings []portfolio.Holding, samples []sentiment.Sample) entity.Charts {
	return entity.Charts{
		Allocation: Allocation(holdings),
		GainLoss:   GainLoss(holdings),
		Prices:     PriceComparison(holdings),
		Sentiment:  Sentiment(samples),
	}
}

func noData(msg string) entity.Marker {
	return entity.Marker{Empty: true, Message: msg}
}
