package usecase

import (
	portfolio "cryptofolio/internal/feature/portfolio/domain/entity"
	sentiment "cryptofolio/internal/feature/sentiment/domain/entity"
)

// SampleHoldings はデモ用のポートフォリオです。
var SampleHoldings = []portfolio.Holding{
	{Symbol: "BTC", Name: "Bitcoin", Quantity: 0.5, PurchasePrice: 45000, CurrentPrice: 52000, Category: "major"},
	{Symbol: "ETH", Name: "Ethereum", Quantity: 3, PurchasePrice: 2500, CurrentPrice: 3100, Category: "major"},
	{Symbol: "ADA", Name: "Cardano", Quantity: 1000, PurchasePrice: 0.8, CurrentPrice: 1.2, Category: "altcoin"},
	{Symbol: "SOL", Name: "Solana", Quantity: 50, PurchasePrice: 80, CurrentPrice: 120, Category: "altcoin"},
	{Symbol: "DOT", Name: "Polkadot", Quantity: 100, PurchasePrice: 25, CurrentPrice: 35, Category: "altcoin"},
	{Symbol: "LINK", Name: "Chainlink", Quantity: 50, PurchasePrice: 20, CurrentPrice: 28, Category: "utility"},
	{Symbol: "USDC", Name: "USD Coin", Quantity: 5000, PurchasePrice: 1, CurrentPrice: 1, Category: "stablecoin"},
	{Symbol: "XRP", Name: "Ripple", Quantity: 2000, PurchasePrice: 0.5, CurrentPrice: 0.75, Category: "altcoin"},
	{Symbol: "MATIC", Name: "Polygon", Quantity: 500, PurchasePrice: 1.2, CurrentPrice: 1.8, Category: "altcoin"},
	{Symbol: "AVAX", Name: "Avalanche", Quantity: 20, PurchasePrice: 100, CurrentPrice: 155, Category: "altcoin"},
}

// SampleSentiments はデモ用のセンチメントです。
var SampleSentiments = []sentiment.Sample{
	{Symbol: "BTC", Score: 0.75, MentionCount: 15000, PositivePercentage: 78, Source: "twitter"},
	{Symbol: "ETH", Score: 0.68, MentionCount: 12000, PositivePercentage: 72, Source: "twitter"},
	{Symbol: "ADA", Score: 0.45, MentionCount: 8000, PositivePercentage: 60, Source: "reddit"},
	{Symbol: "SOL", Score: 0.55, MentionCount: 10000, PositivePercentage: 65, Source: "twitter"},
	{Symbol: "DOT", Score: 0.40, MentionCount: 6000, PositivePercentage: 55, Source: "reddit"},
	{Symbol: "LINK", Score: 0.60, MentionCount: 7000, PositivePercentage: 68, Source: "twitter"},
}
