package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"0"`

	// Training filter
	SimilarityThreshold float64 `env:"SIMILARITY_THRESHOLD" envDefault:"0.9"`
	FilterShort         bool    `env:"FILTER_SHORT" envDefault:"false"`

	// Cross-validation and hyperparameter search
	FoldCount         int    `env:"FOLD_COUNT" envDefault:"5"`
	SearchParallelism int    `env:"SEARCH_PARALLELISM" envDefault:"4"`
	SearchC           string `env:"SEARCH_C"`
	SearchGamma       string `env:"SEARCH_GAMMA"`

	// Per-classifier hyperparameters
	BaseC     float64 `env:"BASE_C" envDefault:"100"`
	BaseGamma float64 `env:"BASE_GAMMA" envDefault:"0.001"`
	DenyC     float64 `env:"DENY_C" envDefault:"10"`
	QueryC    float64 `env:"QUERY_C" envDefault:"1"`

	// Channel weight overrides, "channel=weight" comma lists
	BaseWeights  string `env:"BASE_WEIGHTS"`
	DenyWeights  string `env:"DENY_WEIGHTS"`
	QueryWeights string `env:"QUERY_WEIGHTS"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	return cfg, nil
}

// ParseWeights parses a "channel=weight,channel=weight" override list.
// An empty string yields an empty map, meaning the defaults apply.
func ParseWeights(raw string) (map[string]float64, error) {
	overrides := make(map[string]float64)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return overrides, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid weight override %q", pair)
		}

		weight, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight override %q: %w", pair, err)
		}

		if weight < 0 {
			return nil, fmt.Errorf("invalid weight override %q: weights must be non-negative", pair)
		}

		overrides[strings.TrimSpace(name)] = weight
	}

	return overrides, nil
}

// ParseFloatList parses a comma-separated list of floats for search spaces.
// An empty string yields nil, meaning no candidates for that parameter.
func ParseFloatList(raw string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	values := make([]float64, 0, len(parts))

	for _, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float list entry %q: %w", part, err)
		}

		values = append(values, value)
	}

	return values, nil
}
