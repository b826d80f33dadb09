package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Assetbook"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Currency string `envconfig:"CURRENCY" default:"CNY"`
	}

	Store struct {
		Path string `envconfig:"ASSETBOOK_STORE" default:"accounting.db"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:*,http://127.0.0.1:*"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
		File   string `envconfig:"ASSETBOOK_LOG_FILE"`
	}

	Trend struct {
		Points    int  `envconfig:"TREND_POINTS" default:"8"`
		WithTotal bool `envconfig:"TREND_TOTAL" default:"true"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values envconfig cannot check on its own.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Store.Path) == "" {
		problems = append(problems, "ASSETBOOK_STORE must not be empty")
	}

	c.App.Currency = strings.ToUpper(strings.TrimSpace(c.App.Currency))
	if money.GetCurrency(c.App.Currency) == nil {
		problems = append(problems, fmt.Sprintf("unknown CURRENCY %q", c.App.Currency))
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be text or json, got %q", c.Log.Format))
	}

	if c.Trend.Points <= 0 {
		problems = append(problems, "TREND_POINTS must be positive")
	}

	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, ", "))
	}

	return nil
}
