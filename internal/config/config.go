// Package config loads the bcmonitor settings from the environment.
//
// Variables are read with the BCMONITOR_ prefix, after an optional .env file
// in the working directory has been loaded. Variables already set in the
// environment take precedence over the .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/gabapcia/bcmonitor/internal/pkg/validator"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const prefix = "BCMONITOR"

var (
	ErrInvalidEndpoints = errors.New("invalid endpoint list")
	ErrNoExplorers      = errors.New("no explorer configured")
)

// Endpoints maps a "coin.network" pair to a URL. It is decoded from a list
// such as "btc.livenet=wss://a.example,bch.livenet=wss://b.example".
type Endpoints map[string]string

// Decode implements envconfig.Decoder.
func (e *Endpoints) Decode(value string) error {
	out := Endpoints{}
	for entry := range strings.SplitSeq(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		pair, url, ok := strings.Cut(entry, "=")
		if !ok || url == "" {
			return fmt.Errorf("%w: %q", ErrInvalidEndpoints, entry)
		}

		out[strings.ToLower(pair)] = url
	}

	*e = out
	return nil
}

// Pairs returns the "coin.network" keys in order.
func (e Endpoints) Pairs() []string {
	pairs := make([]string, 0, len(e))
	for pair := range e {
		pairs = append(pairs, pair)
	}
	slices.Sort(pairs)
	return pairs
}

type Redis struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379" validate:"required,hostname_port"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0" validate:"gte=0"`
}

// Kafka is optional. Without brokers notifications are only persisted.
type Kafka struct {
	Brokers []string `envconfig:"BROKERS"`
	Topic   string   `envconfig:"TOPIC" default:"bcmonitor.notifications" validate:"required"`
}

type Payments struct {
	FlushBufferCount   int           `envconfig:"FLUSH_BUFFER_COUNT" default:"100" validate:"gte=1"`
	FlushBufferTimeout time.Duration `envconfig:"FLUSH_BUFFER_TIMEOUT" default:"1s" validate:"gt=0"`
}

type Config struct {
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`

	// Explorers and ExplorerAPIs are only needed to run the monitor. See
	// ValidateMonitor.
	Explorers    Endpoints `envconfig:"EXPLORERS" validate:"omitempty,dive,keys,contains=.,endkeys,url"`
	ExplorerAPIs Endpoints `envconfig:"EXPLORER_APIS" validate:"omitempty,dive,keys,contains=.,endkeys,url"`

	ThirdPartyBroadcasts bool `envconfig:"THIRD_PARTY_BROADCASTS" default:"false"`

	Redis    Redis    `envconfig:"REDIS"`
	Kafka    Kafka    `envconfig:"KAFKA"`
	Payments Payments `envconfig:"PAYMENTS"`
}

// Load reads the configuration. A missing .env file is not an error.
//
// Only the settings shared by every command are required here, so the
// maintenance commands run with just a record store configured.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ValidateMonitor checks the settings needed to run the monitor: at least
// one explorer, each with an API endpoint.
func (c Config) ValidateMonitor() error {
	if len(c.Explorers) == 0 {
		return ErrNoExplorers
	}

	for _, pair := range c.Explorers.Pairs() {
		if _, ok := c.ExplorerAPIs[pair]; !ok {
			return fmt.Errorf("%w: no API for %s", ErrInvalidEndpoints, pair)
		}
	}
	return nil
}
