package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("REPORT_DEFAULT_DAYS", "")
	t.Setenv("REPORT_MAX_DAYS", "")
	t.Setenv("SESSION_IDLE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverXLSX, cfg.StoreDriver)
	assert.Equal(t, "catalog.xlsx", cfg.CatalogPath)
	assert.Equal(t, "sales_history.xlsx", cfg.LedgerPath)
	assert.Equal(t, 30, cfg.ReportDefaultDays)
	assert.Equal(t, 366, cfg.ReportMaxDays)
	assert.Equal(t, 12*time.Hour, cfg.SessionIdleTTL)
	assert.Equal(t, "UTC", cfg.Location.String())
}

func TestLoadRejectsBadValues(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "mongo"}},
		{name: "postgres without dsn", env: map[string]string{"STORE_DRIVER": "postgres", "DATABASE_URL": ""}},
		{name: "bad timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{name: "non numeric days", env: map[string]string{"REPORT_DEFAULT_DAYS": "week"}},
		{name: "zero days", env: map[string]string{"REPORT_DEFAULT_DAYS": "0"}},
		{name: "non numeric max days", env: map[string]string{"REPORT_MAX_DAYS": "year"}},
		{name: "bad session ttl", env: map[string]string{"SESSION_IDLE_TTL": "forever"}},
		{name: "negative session ttl", env: map[string]string{"SESSION_IDLE_TTL": "-1h"}},
		{name: "max days not above default", env: map[string]string{"REPORT_DEFAULT_DAYS": "90", "REPORT_MAX_DAYS": "90"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("STORE_DRIVER", "")
			t.Setenv("TIMEZONE", "UTC")
			t.Setenv("REPORT_DEFAULT_DAYS", "")
			t.Setenv("REPORT_MAX_DAYS", "")
			t.Setenv("SESSION_IDLE_TTL", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := AppConfig{StoreDriver: DriverSQLite, SQLitePath: "pos.db", DatabaseURL: "postgres://x"}
	assert.Equal(t, "pos.db", cfg.DSN())

	cfg.StoreDriver = DriverPostgres
	assert.Equal(t, "postgres://x", cfg.DSN())
}
