// Package config は環境変数・.env・config.yaml からアプリケーション設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"cryptofolio/internal/platform/db"
)

// Config holds every setting used by the three commands.
type Config struct {
	ServerAddr    string `mapstructure:"SERVER_ADDR"`
	DashboardAddr string `mapstructure:"DASHBOARD_ADDR"`
	APIURL        string `mapstructure:"API_URL"`

	DBDriver      string `mapstructure:"DB_DRIVER"`
	DBPath        string `mapstructure:"DB_PATH"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBName        string `mapstructure:"DB_NAME"`
	DBInstance    string `mapstructure:"INSTANCE_CONNECTION_NAME"`
	RunMigrations bool   `mapstructure:"RUN_MIGRATIONS"`

	RedisHost     string        `mapstructure:"REDIS_HOST"`
	RedisPort     string        `mapstructure:"REDIS_PORT"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	RefreshInterval time.Duration `mapstructure:"REFRESH_INTERVAL"`
	HTTPTimeout     time.Duration `mapstructure:"HTTP_TIMEOUT"`
	SeedRate        float64       `mapstructure:"SEED_RATE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"SERVER_ADDR":              "127.0.0.1:8000",
	"DASHBOARD_ADDR":           "127.0.0.1:8051",
	"API_URL":                  "http://127.0.0.1:8000/api",
	"DB_DRIVER":                db.DriverSQLite,
	"DB_PATH":                  "./portfolio.db",
	"DB_USER":                  "",
	"DB_PASSWORD":              "",
	"DB_HOST":                  "",
	"DB_PORT":                  "",
	"DB_NAME":                  "",
	"INSTANCE_CONNECTION_NAME": "",
	"RUN_MIGRATIONS":           true,
	"REDIS_HOST":               "",
	"REDIS_PORT":               "6379",
	"REDIS_PASSWORD":           "",
	"CACHE_TTL":                "30s",
	"REFRESH_INTERVAL":         "5s",
	"HTTP_TIMEOUT":             "5s",
	"SEED_RATE":                5.0,
	"LOG_LEVEL":                "info",
	"LOG_FORMAT":               "text",
}

// Load は .env（存在する場合）を読み込んだ後、dir の config.yaml と環境変数から設定を組み立てます。
// 環境変数は config.yaml より優先されます。
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env not found; using system environment variables")
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if dir != "" {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case db.DriverSQLite, db.DriverMySQL, db.DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive, got %v", c.RefreshInterval)
	}
	if c.SeedRate <= 0 {
		return fmt.Errorf("SEED_RATE must be positive, got %v", c.SeedRate)
	}
	return nil
}

// Database は db パッケージ向けの接続設定を返します。
func (c *Config) Database() db.Config {
	return db.Config{
		Driver:        c.DBDriver,
		Path:          c.DBPath,
		User:          c.DBUser,
		Password:      c.DBPassword,
		Name:          c.DBName,
		Host:          c.DBHost,
		Port:          c.DBPort,
		InstanceName:  c.DBInstance,
		RunMigrations: c.RunMigrations,
	}
}

// RedisEnabled reports whether a cache host is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns host:port of the cache.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
