package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreDriverAirtable = "airtable"
	StoreDriverPostgres = "postgres"
)

// Config is read once at startup and passed by reference to every
// component that needs it.
type Config struct {
	StoreDriver string `env:"STORE_DRIVER" envDefault:"airtable"`

	AirtableAPIToken   string `env:"AIRTABLE_API_TOKEN"`
	AirtableBaseID     string `env:"AIRTABLE_BASE_ID"`
	AirtableTableLeads string `env:"AIRTABLE_TABLE_LEADS" envDefault:"Leads"`
	AirtableTableTasks string `env:"AIRTABLE_TABLE_TASKS" envDefault:"Tasks"`

	DatabaseURL string `env:"DATABASE_URL"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`

	FromEmail string `env:"FROM_EMAIL"`
	FromName  string `env:"FROM_NAME" envDefault:"Summit Peak Properties"`

	AppPort int    `env:"APP_PORT" envDefault:"8080"`
	AppURL  string `env:"APP_URL"`

	UnsubscribeSecret string `env:"UNSUBSCRIBE_SECRET" envDefault:"secret"`

	CalendlyLink string `env:"CALENDLY_LINK"`

	DispatchInterval time.Duration `env:"DISPATCH_INTERVAL" envDefault:"5m"`

	RabbitMQURL string `env:"RABBITMQ_URL"`
}

// Load reads .env (if present) and the process environment, then
// validates required values. A returned error means the process must
// not start.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// PORT fallback for platforms like Render/Fly that set it for you.
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.AppPort = p
	}

	if cfg.AppURL == "" {
		cfg.AppURL = fmt.Sprintf("http://localhost:%d", cfg.AppPort)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverAirtable:
		if c.AirtableAPIToken == "" || c.AirtableBaseID == "" {
			return errors.New("AIRTABLE_API_TOKEN and AIRTABLE_BASE_ID are required")
		}
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.FromEmail == "" {
		return errors.New("FROM_EMAIL is required")
	}
	if c.CalendlyLink == "" {
		return errors.New("CALENDLY_LINK is required")
	}
	if c.DispatchInterval <= 0 {
		return errors.New("DISPATCH_INTERVAL must be positive")
	}
	return nil
}
