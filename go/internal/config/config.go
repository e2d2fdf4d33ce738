// Package config loads panel settings from a YAML file, the environment and
// command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/nego/go/internal/locale"
	"github.com/mcdev12/nego/go/internal/models"
)

// DefaultPath is read when it exists and no other file is named
const DefaultPath = "nego.yaml"

// Push transports
const (
	TransportWebSocket = "websocket"
	TransportNATS      = "nats"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Push     PushConfig    `yaml:"push"`
	Auction  AuctionConfig `yaml:"auction"`
	Locale   string        `yaml:"locale"`
	Messages string        `yaml:"messages"` // YAML file overriding catalog entries
	LogLevel string        `yaml:"log_level"`
}

type ServerConfig struct {
	BaseURL     string        `yaml:"base_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"` // 0 disables the timeout
}

type PushConfig struct {
	Transport     string        `yaml:"transport"`
	URL           string        `yaml:"url"` // WebSocket endpoint, defaults to <base_url>/ws
	NATSURL       string        `yaml:"nats_url"`
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
	MaxReconnects int           `yaml:"max_reconnects"` // -1 for unlimited
}

// AuctionConfig is the page context a panel starts with
type AuctionConfig struct {
	ID        string `yaml:"id"`
	StartTime int64  `yaml:"start_time"` // epoch seconds
	Duration  int64  `yaml:"duration"`   // seconds
	Name      string `yaml:"name"`
	Token     string `yaml:"token"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Server: ServerConfig{
			BaseURL:     "http://localhost:5000",
			HTTPTimeout: 30 * time.Second,
		},
		Push: PushConfig{
			Transport:     TransportWebSocket,
			NATSURL:       "nats://127.0.0.1:4222",
			ReconnectWait: 2 * time.Second,
			MaxReconnects: -1,
		},
		Locale:   "en",
		LogLevel: "info",
	}
}

// Load reads path on top of the defaults. A missing file is an error only
// when required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides settings from NEGO_* environment variables
func (c *Config) ApplyEnv() {
	c.Server.BaseURL = getEnv("NEGO_BASE_URL", c.Server.BaseURL)
	c.Server.HTTPTimeout = getEnvAsDuration("NEGO_HTTP_TIMEOUT", c.Server.HTTPTimeout)
	c.Push.Transport = getEnv("NEGO_PUSH_TRANSPORT", c.Push.Transport)
	c.Push.URL = getEnv("NEGO_PUSH_URL", c.Push.URL)
	c.Push.NATSURL = getEnv("NEGO_NATS_URL", c.Push.NATSURL)
	c.Locale = getEnv("NEGO_LOCALE", c.Locale)
	c.LogLevel = getEnv("NEGO_LOG_LEVEL", c.LogLevel)

	c.Auction.ID = getEnv("NEGO_AUCTION_ID", c.Auction.ID)
	c.Auction.StartTime = getEnvAsInt64("NEGO_START_TIME", c.Auction.StartTime)
	c.Auction.Duration = getEnvAsInt64("NEGO_DURATION", c.Auction.Duration)
	c.Auction.Name = getEnv("NEGO_NAME", c.Auction.Name)
	c.Auction.Token = getEnv("NEGO_TOKEN", c.Auction.Token)
}

// Validate checks the settings every command needs
func (c Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("%w: server base url is empty", ErrInvalidConfig)
	}
	if c.Server.HTTPTimeout < 0 {
		return fmt.Errorf("%w: negative http timeout", ErrInvalidConfig)
	}
	switch c.Push.Transport {
	case TransportWebSocket, TransportNATS:
	default:
		return fmt.Errorf("%w: unknown push transport %q", ErrInvalidConfig, c.Push.Transport)
	}
	if c.Push.ReconnectWait < 0 {
		return fmt.Errorf("%w: negative reconnect wait", ErrInvalidConfig)
	}
	return nil
}

// PushURL returns the WebSocket endpoint
func (c Config) PushURL() string {
	if c.Push.URL != "" {
		return c.Push.URL
	}
	return strings.TrimRight(c.Server.BaseURL, "/") + "/ws"
}

// PageContext builds the validated page context of the configured auction
func (c Config) PageContext() (models.PageContext, error) {
	return models.NewPageContext(c.Auction.ID, c.Auction.StartTime, c.Auction.Duration, c.Auction.Name, c.Auction.Token)
}

// Catalog returns the configured locale with any message overrides applied
func (c Config) Catalog() (locale.Catalog, error) {
	catalog, err := locale.ForName(c.Locale)
	if err != nil {
		return locale.Catalog{}, err
	}
	if c.Messages == "" {
		return catalog, nil
	}

	overrides, err := locale.LoadOverrides(c.Messages)
	if err != nil {
		return locale.Catalog{}, err
	}
	return catalog.Merge(overrides), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
