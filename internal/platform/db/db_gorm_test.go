package db

import (
	"errors"
	"fmt"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestBuildDSN はドライバーごとの接続文字列が正しく生成されることを検証します。
func TestBuildDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "mysql tcp",
			cfg:  Config{Driver: DriverMySQL, User: "u", Password: "p", Name: "folio", Host: "localhost", Port: "3306"},
			want: "u:p@tcp(localhost:3306)/folio?charset=utf8mb4&parseTime=true&loc=Local",
		},
		{
			name: "mysql cloud sql takes precedence over host",
			cfg: Config{Driver: DriverMySQL, User: "u", Password: "p", Name: "folio", Host: "localhost", Port: "3306",
				InstanceName: "project:region:instance"},
			want: "u:p@unix(/cloudsql/project:region:instance)/folio?charset=utf8mb4&parseTime=true&loc=Local",
		},
		{
			name: "postgres",
			cfg:  Config{Driver: DriverPostgres, User: "u", Password: "p", Name: "folio", Host: "db", Port: "5432"},
			want: "host=db port=5432 user=u password=p dbname=folio sslmode=disable",
		},
		{
			name: "sqlite uses path",
			cfg:  Config{Driver: DriverSQLite, Path: "./portfolio.db"},
			want: "./portfolio.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildDSN(tt.cfg))
		})
	}
}

// TestDialector_Unsupported は未対応ドライバーでエラーになることを検証します。
func TestDialector_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := Dialector("oracle", "dsn")
	assert.Error(t, err)

	for _, d := range []string{DriverSQLite, DriverMySQL, DriverPostgres} {
		dialector, err := Dialector(d, "dsn")
		assert.NoError(t, err, d)
		assert.NotNil(t, dialector, d)
	}
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	db, err := ConnectWithRetry("test-dsn", 5*time.Second, func(dsn string) (*gorm.DB, error) {
		attempts++
		return mockDB, nil
	})

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 1, attempts)
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// リトライ待機があるため並列実行しない

	mockDB := &gorm.DB{}
	attempts := 0
	db, err := ConnectWithRetry("test-dsn", 10*time.Second, func(dsn string) (*gorm.DB, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	})

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attempts)
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後にエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	attempts := 0
	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, func(dsn string) (*gorm.DB, error) {
		attempts++
		return nil, errors.New("connection refused")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

// TestOpen_SQLiteMigrates は SQLite でマイグレーションが実行されることを検証します。
func TestOpen_SQLiteMigrates(t *testing.T) {
	t.Parallel()

	type widget struct {
		ID   int64 `gorm:"primaryKey"`
		Name string
	}

	db, err := Open(Config{Driver: DriverSQLite, Path: ":memory:", RunMigrations: true}, &widget{})
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable(&widget{}))
}

// TestIsDuplicateKey は各ドライバーの一意制約違反を判定できることを検証します。
func TestIsDuplicateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"mysql 1062", &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true},
		{"mysql other", &gomysql.MySQLError{Number: 1045, Message: "Access denied"}, false},
		{"postgres 23505", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other", &pgconn.PgError{Code: "42P01"}, false},
		{"sqlite message", errors.New("UNIQUE constraint failed: portfolio.symbol"), true},
		{"other", errors.New("disk full"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsDuplicateKey(tt.err))
		})
	}
}
