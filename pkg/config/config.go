package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers
const (
	DriverXLSX     = "xlsx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// AppConfig groups runtime settings. Every field can be injected through the environment.
type AppConfig struct {
	AppName string
	Env     string
	Port    string

	// Storage
	StoreDriver string
	CatalogPath string
	LedgerPath  string
	DatabaseURL string
	SQLitePath  string

	// Calendar dates for reports and timestamps are taken in this zone.
	Timezone string
	Location *time.Location

	LogLevel string
	LogFile  string

	ReportDefaultDays int
	ReportMaxDays     int

	// Operator sessions idle longer than this are dropped with their carts.
	SessionIdleTTL time.Duration
}

// Load reads and validates configuration, falling back to defaults for unset keys.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		AppName:           getEnv("APP_NAME", "POS Ledger v1.0"),
		Env:               getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "3000"),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", DriverXLSX)),
		CatalogPath:       getEnv("CATALOG_PATH", "catalog.xlsx"),
		LedgerPath:        getEnv("LEDGER_PATH", "sales_history.xlsx"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SQLitePath:        getEnv("SQLITE_PATH", "pos.db"),
		Timezone:          getEnv("TIMEZONE", "Local"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("LOG_FILE", ""),
		ReportDefaultDays: 30,
		ReportMaxDays:     366,
	}

	switch cfg.StoreDriver {
	case DriverXLSX, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return AppConfig{}, fmt.Errorf("DATABASE_URL must be set when STORE_DRIVER=postgres")
		}
	default:
		return AppConfig{}, fmt.Errorf("invalid STORE_DRIVER %q: want xlsx, postgres or sqlite", cfg.StoreDriver)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	days, err := getEnvInt("REPORT_DEFAULT_DAYS", cfg.ReportDefaultDays)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REPORT_DEFAULT_DAYS: %w", err)
	}
	if days <= 0 {
		return AppConfig{}, fmt.Errorf("REPORT_DEFAULT_DAYS must be > 0")
	}
	cfg.ReportDefaultDays = days

	maxDays, err := getEnvInt("REPORT_MAX_DAYS", cfg.ReportMaxDays)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REPORT_MAX_DAYS: %w", err)
	}
	if maxDays <= days {
		return AppConfig{}, fmt.Errorf("REPORT_MAX_DAYS must be greater than REPORT_DEFAULT_DAYS")
	}
	cfg.ReportMaxDays = maxDays

	ttl, err := getEnvDuration("SESSION_IDLE_TTL", 12*time.Hour)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid SESSION_IDLE_TTL: %w", err)
	}
	if ttl < 0 {
		return AppConfig{}, fmt.Errorf("SESSION_IDLE_TTL must not be negative")
	}
	cfg.SessionIdleTTL = ttl

	return cfg, nil
}

// DSN returns the connection string for the configured SQL driver.
func (c AppConfig) DSN() string {
	if c.StoreDriver == DriverSQLite {
		return c.SQLitePath
	}
	return c.DatabaseURL
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}
