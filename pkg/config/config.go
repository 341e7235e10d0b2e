package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration values
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"release"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFmt   string `env:"LOG_FORMAT" envDefault:"text"`

	Telegram TelegramConfig
	Meta     MetaConfig
	OTel     OTelConfig

	// EventSourcePath is appended to the reconstructed host when building
	// the attribution event's source URL.
	EventSourcePath string        `env:"EVENT_SOURCE_PATH" envDefault:"/telefon"`
	OutboundTimeout time.Duration `env:"OUTBOUND_TIMEOUT" envDefault:"10s"`
}

// TelegramConfig holds the messaging channel credentials
type TelegramConfig struct {
	BotToken string `env:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `env:"TELEGRAM_CHAT_ID"`
	APIURL   string `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
}

// Configured reports whether both secrets are present
func (c TelegramConfig) Configured() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// MetaConfig holds the attribution channel credentials and event options
type MetaConfig struct {
	AccessToken       string `env:"META_CONVERSIONS_TOKEN"`
	PixelID           string `env:"META_PIXEL_ID"`
	APIURL            string `env:"META_API_URL" envDefault:"https://graph.facebook.com"`
	APIVersion        string `env:"META_API_VERSION" envDefault:"v20.0"`
	TestEventCode     string `env:"META_TEST_EVENT_CODE"`
	EventName         string `env:"META_EVENT_NAME" envDefault:"Lead"`
	IncludeExternalID bool   `env:"META_INCLUDE_EXTERNAL_ID" envDefault:"false"`
}

// Configured reports whether both secrets are present
func (c MetaConfig) Configured() bool {
	return c.AccessToken != "" && c.PixelID != ""
}

// OTelConfig controls opt-in trace export
type OTelConfig struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"true"`
	Endpoint    string `env:"OTEL_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"lead-gateway"`
}

// LoadConfig reads configuration from a .env file, when present, and the
// process environment. Missing channel secrets are not an error here.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	return Parse()
}

// Parse reads configuration from the process environment only
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
