// Package usecase は保有銘柄とセンチメントから派生ビューを計算する純粋関数群を提供します。
package usecase

import (
	"cryptofolio/internal/feature/analytics/domain/entity"
	portfolio "cryptofolio/internal/feature/portfolio/domain/entity"
)

// ComputeMetrics は保有銘柄一覧から評価額・投資額・損益・損益率を計算します。
// 投資額が0以下の場合、損益率は0になります。
func ComputeMetrics(holdings []portfolio.Holding) entity.Metrics {
	var m entity.Metrics
	for _, h := range holdings {
		m.TotalValue += h.MarketValue()
		m.TotalInvested += h.CostBasis()
	}
	m.TotalGainLoss = m.TotalValue - m.TotalInvested
	if m.TotalInvested > 0 {
		m.GainLossPercentage = m.TotalGainLoss / m.TotalInvested * 100
	}
	return m
}
