package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dom/pokedex-web/internal/domain"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "POKEDEX_"

type Config struct {
	// Server
	Port        string `koanf:"port"`
	Environment string `koanf:"environment"`

	// Upstream API
	PokeAPIBaseURL     string `koanf:"pokeapi_base_url"`
	HTTPTimeoutSeconds int    `koanf:"http_timeout_seconds"`

	// Hand-off storage. Empty means in-memory.
	DatabaseURL string `koanf:"database_url"`

	// Session cookie signing
	SessionSecret     string `koanf:"session_secret"`
	HandoffTTLMinutes int    `koanf:"handoff_ttl_minutes"`

	// Pages
	BatchSize     int    `koanf:"batch_size"`
	MaxPokemonID  int    `koanf:"max_pokemon_id"`
	Variant       string `koanf:"variant"`
	FlattenPolicy string `koanf:"flatten_policy"`
}

func DefaultConfig() *Config {
	return &Config{
		Port:               "8080",
		Environment:        "development",
		PokeAPIBaseURL:     "https://pokeapi.co/api/v2",
		HTTPTimeoutSeconds: 30,
		HandoffTTLMinutes:  60,
		BatchSize:          20,
		MaxPokemonID:       domain.MaxPokemonID,
		Variant:            string(domain.VariantRedirect),
		FlattenPolicy:      domain.FlattenFirstBranch,
	}
}

// Load starts from defaults, overlays the YAML file at path when it exists,
// then POKEDEX_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// POKEDEX_DATABASE_URL -> database_url
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HandoffTTLMinutes < 1 {
		return fmt.Errorf("handoff_ttl_minutes must be positive, got %d", c.HandoffTTLMinutes)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.MaxPokemonID < 1 {
		return fmt.Errorf("max_pokemon_id must be positive, got %d", c.MaxPokemonID)
	}
	if _, ok := domain.ParsePageVariant(c.Variant); !ok {
		return fmt.Errorf("invalid variant %q", c.Variant)
	}
	if c.FlattenPolicy != domain.FlattenFirstBranch && c.FlattenPolicy != domain.FlattenAll {
		return fmt.Errorf("invalid flatten_policy %q", c.FlattenPolicy)
	}
	return nil
}

// RequireSessionSecret is checked by the server only; the CLI never signs
// session cookies.
func (c *Config) RequireSessionSecret() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("POKEDEX_SESSION_SECRET environment variable is required")
	}
	return nil
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c *Config) HandoffTTL() time.Duration {
	return time.Duration(c.HandoffTTLMinutes) * time.Minute
}

func (c *Config) PageVariant() domain.PageVariant {
	v, _ := domain.ParsePageVariant(c.Variant)
	return v
}
