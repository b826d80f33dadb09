package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "accounting.db", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "CNY", cfg.App.Currency)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, []string{"http://localhost:*", "http://127.0.0.1:*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 8, cfg.Trend.Points)
	assert.True(t, cfg.Trend.WithTotal)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ASSETBOOK_STORE", "/tmp/assets.db")
	t.Setenv("PORT", "9090")
	t.Setenv("CURRENCY", "eur")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("TREND_POINTS", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/assets.db", cfg.Store.Path)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "EUR", cfg.App.Currency)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 12, cfg.Trend.Points)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "UnknownCurrency", key: "CURRENCY", val: "XXXX"},
		{name: "BadLogFormat", key: "LOG_FORMAT", val: "yaml"},
		{name: "ZeroTrendPoints", key: "TREND_POINTS", val: "0"},
		{name: "NotANumber", key: "PORT", val: "eighty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
