package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cryptofolio/internal/feature/transactions/domain/entity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&TransactionModel{}), "failed to migrate table")
	return db
}

func TestTransactionGorm_ListFilter(t *testing.T) {
	t.Parallel()

	repo := NewTransactionRepository(setupTestDB(t))
	ctx := context.Background()
	note := "dca"
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &entity.Transaction{Symbol: "BTC", Side: entity.SideBuy, Amount: 0.1, Price: 50000, Notes: &note, Timestamp: now}))
	require.NoError(t, repo.Create(ctx, &entity.Transaction{Symbol: "ETH", Side: entity.SideSell, Amount: 1, Price: 3000, Timestamp: now}))
	require.NoError(t, repo.Create(ctx, &entity.Transaction{Symbol: "BTC", Side: entity.SideSell, Amount: 0.05, Price: 52000, Timestamp: now}))

	tests := []struct {
		name    string
		symbol  string
		wantLen int
	}{
		{"all", "", 3},
		{"btc only", "BTC", 2},
		{"eth only", "ETH", 1},
		{"unknown", "DOGE", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.symbol)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			for _, tx := range got {
				if tt.symbol != "" {
					assert.Equal(t, tt.symbol, tx.Symbol)
				}
			}
		})
	}

	btc, err := repo.List(ctx, "BTC")
	require.NoError(t, err)
	require.NotNil(t, btc[0].Notes)
	assert.Equal(t, "dca", *btc[0].Notes)
	assert.Equal(t, entity.SideBuy, btc[0].Side)
	assert.Nil(t, btc[1].Notes)
}
