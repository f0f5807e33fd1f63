package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SCOREWATCH_CONFIG is set
//  3. env (prefix SCOREWATCH_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SCOREWATCH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCOREWATCH_ADDR, SCOREWATCH_FEED_URL, ...
	// Map env keys like SCOREWATCH_ACTIVE_POLL_SEC -> active_poll_sec.
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCOREWATCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scorewatch_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.FeedURL == "":
		return nil, fmt.Errorf("%w: feed_url must not be empty", ErrInvalidConfig)
	case cfg.ActivePollSec <= 0:
		return nil, fmt.Errorf("%w: active_poll_sec must be positive", ErrInvalidConfig)
	case cfg.IdleAlignMin <= 0:
		return nil, fmt.Errorf("%w: idle_align_min must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
