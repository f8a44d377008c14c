package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptofolio/internal/feature/analytics/domain/entity"
)

func TestCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		m     entity.Metrics
		want  []string
		kinds []string
	}{
		{
			name:  "gain",
			m:     entity.Metrics{TotalValue: 35300, TotalInvested: 30000, TotalGainLoss: 5300, GainLossPercentage: 17.666666},
			want:  []string{"$35,300.00", "$30,000.00", "$5,300.00", "17.67%"},
			kinds: []string{VariantSuccess, VariantPrimary, VariantSuccess, VariantSuccess},
		},
		{
			name:  "empty portfolio",
			m:     entity.Metrics{},
			want:  []string{"$0.00", "$0.00", "$0.00", "0.00%"},
			kinds: []string{VariantSuccess, VariantPrimary, VariantSuccess, VariantSuccess},
		},
		{
			name:  "loss",
			m:     entity.Metrics{TotalValue: 250, TotalInvested: 500, TotalGainLoss: -250, GainLossPercentage: -50},
			want:  []string{"$250.00", "$500.00", "-$250.00", "-50.00%"},
			kinds: []string{VariantSuccess, VariantPrimary, VariantDanger, VariantDanger},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cards := Cards(tt.m)

			require.Len(t, cards, 4)
			assert.Equal(t, "Total Portfolio Value", cards[0].Title)
			assert.Equal(t, "Return %", cards[3].Title)
			for i, c := range cards {
				assert.Equal(t, tt.want[i], c.Value, c.Title)
				assert.Equal(t, tt.kinds[i], c.Variant, c.Title)
			}
		})
	}
}

func TestUSD(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    float64
		want string
	}{
		{name: "whole", v: 35300, want: "$35,300.00"},
		{name: "rounds up to the next dollar", v: 19.999, want: "$20.00"},
		{name: "half cent rounds away from zero", v: 1.005, want: "$1.01"},
		{name: "below half cent rounds down", v: 2.004, want: "$2.00"},
		{name: "negative", v: -250, want: "-$250.00"},
		{name: "negative rounds away from zero", v: -19.999, want: "-$20.00"},
		{name: "tiny negative is zero", v: -0.001, want: "$0.00"},
		{name: "float noise", v: 0.1 + 0.2, want: "$0.30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, USD(tt.v))
		})
	}
}
