package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptofolio/internal/api"
	portfolio "cryptofolio/internal/feature/portfolio/domain/entity"
	sentiment "cryptofolio/internal/feature/sentiment/domain/entity"
)

type mockResourceClient struct {
	GetHoldingFunc      func(ctx context.Context, token string) (*portfolio.Holding, error)
	CreateHoldingFunc   func(ctx context.Context, h portfolio.Holding) (*portfolio.Holding, error)
	ListSentimentFunc   func(ctx context.Context) ([]sentiment.Sample, error)
	CreateSentimentFunc func(ctx context.Context, s sentiment.Sample) error
}

func (m *mockResourceClient) GetHolding(ctx context.Context, token string) (*portfolio.Holding, error) {
	if m.GetHoldingFunc != nil {
		return m.GetHoldingFunc(ctx, token)
	}
	return nil, &api.StatusError{Status: 404, Detail: "Holding not found"}
}

func (m *mockResourceClient) CreateHolding(ctx context.Context, h portfolio.Holding) (*portfolio.Holding, error) {
	if m.CreateHoldingFunc != nil {
		return m.CreateHoldingFunc(ctx, h)
	}
	return &h, nil
}

func (m *mockResourceClient) ListSentiment(ctx context.Context) ([]sentiment.Sample, error) {
	if m.ListSentimentFunc != nil {
		return m.ListSentimentFunc(ctx)
	}
	return nil, nil
}

func (m *mockResourceClient) CreateSentiment(ctx context.Context, s sentiment.Sample) error {
	if m.CreateSentimentFunc != nil {
		return m.CreateSentimentFunc(ctx, s)
	}
	return nil
}

type countingLimiter struct {
	calls int
	err   error
}

func (l *countingLimiter) WaitIfNeeded(ctx context.Context) error {
	l.calls++
	return l.err
}

func TestSamples(t *testing.T) {
	t.Parallel()

	assert.Len(t, SampleHoldings, 10)
	assert.Len(t, SampleSentiments, 6)

	symbols := map[string]bool{}
	for _, h := range SampleHoldings {
		assert.False(t, symbols[h.Symbol], "duplicate symbol %s", h.Symbol)
		symbols[h.Symbol] = true
		assert.Positive(t, h.Quantity)
	}
	for _, s := range SampleSentiments {
		assert.True(t, symbols[s.Symbol], "sentiment for unknown symbol %s", s.Symbol)
	}
}

func TestSeedHoldings(t *testing.T) {
	t.Parallel()

	var created []string
	client := &mockResourceClient{
		GetHoldingFunc: func(ctx context.Context, token string) (*portfolio.Holding, error) {
			switch token {
			case "BTC":
				return &portfolio.Holding{ID: 1, Symbol: "BTC"}, nil
			case "ETH":
				return nil, fmt.Errorf("%w: connection refused", api.ErrTransport)
			}
			return nil, &api.StatusError{Status: 404, Detail: "Holding not found"}
		},
		CreateHoldingFunc: func(ctx context.Context, h portfolio.Holding) (*portfolio.Holding, error) {
			switch h.Symbol {
			case "SOL":
				return nil, &api.StatusError{Status: 400, Detail: "Crypto already exists in portfolio"}
			case "DOT":
				return nil, &api.StatusError{Status: 500, Detail: "boom"}
			}
			created = append(created, h.Symbol)
			return &h, nil
		},
	}
	limiter := &countingLimiter{}
	uc := NewSeedUsecase(client, limiter)

	holdings := []portfolio.Holding{
		{Symbol: "BTC"}, {Symbol: "ETH"}, {Symbol: "ADA"}, {Symbol: "SOL"}, {Symbol: "DOT"},
	}
	rep, err := uc.SeedHoldings(context.Background(), holdings)
	require.NoError(t, err)

	assert.Equal(t, []string{"ADA"}, created)
	// BTC skipped as present; SOL's 400 is not a conflict status so it fails along with ETH and DOT
	assert.Equal(t, Report{Added: 1, Skipped: 1, Failed: 3}, rep)
	// one wait per lookup, one per create attempt
	assert.Equal(t, 5+3, limiter.calls)
}

func TestSeedHoldings_ConflictCountsAsSkipped(t *testing.T) {
	t.Parallel()

	client := &mockResourceClient{
		CreateHoldingFunc: func(ctx context.Context, h portfolio.Holding) (*portfolio.Holding, error) {
			return nil, &api.StatusError{Status: 409, Detail: "exists"}
		},
	}
	uc := NewSeedUsecase(client, &countingLimiter{})

	rep, err := uc.SeedHoldings(context.Background(), []portfolio.Holding{{Symbol: "BTC"}})
	require.NoError(t, err)
	assert.Equal(t, Report{Skipped: 1}, rep)
}

func TestSeedHoldings_LimiterCanceled(t *testing.T) {
	t.Parallel()

	uc := NewSeedUsecase(&mockResourceClient{}, &countingLimiter{err: context.Canceled})

	_, err := uc.SeedHoldings(context.Background(), SampleHoldings)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSeedSentiments(t *testing.T) {
	t.Parallel()

	var created []string
	client := &mockResourceClient{
		ListSentimentFunc: func(ctx context.Context) ([]sentiment.Sample, error) {
			return []sentiment.Sample{{Symbol: "BTC", Source: "twitter"}}, nil
		},
		CreateSentimentFunc: func(ctx context.Context, s sentiment.Sample) error {
			if s.Symbol == "ADA" {
				return &api.StatusError{Status: 400, Detail: "bad"}
			}
			created = append(created, s.Symbol)
			return nil
		},
	}
	uc := NewSeedUsecase(client, &countingLimiter{})

	rep, err := uc.SeedSentiments(context.Background(), SampleSentiments)
	require.NoError(t, err)

	assert.Equal(t, Report{Added: 4, Skipped: 1, Failed: 1}, rep)
	assert.Equal(t, []string{"ETH", "SOL", "DOT", "LINK"}, created)
}

func TestSeedSentiments_ListFailureStillSeeds(t *testing.T) {
	t.Parallel()

	client := &mockResourceClient{
		ListSentimentFunc: func(ctx context.Context) ([]sentiment.Sample, error) {
			return nil, api.ErrTransport
		},
	}
	uc := NewSeedUsecase(client, &countingLimiter{})

	rep, err := uc.SeedSentiments(context.Background(), SampleSentiments)
	require.NoError(t, err)
	assert.Equal(t, len(SampleSentiments), rep.Added)
}

func TestSeedAll(t *testing.T) {
	t.Parallel()

	uc := NewSeedUsecase(&mockResourceClient{}, &countingLimiter{})

	h, s, err := uc.SeedAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, h.Added)
	assert.Equal(t, 6, s.Added)
}
