package main

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/katalvlaran/tspdeep/tsp"
)

// envPrefix is the prefix of every environment variable read by the driver.
const envPrefix = "TSPDEEP"

// Config validation errors
var (
	ErrInvalidInstance   = errors.New("instance path cannot be empty")
	ErrInvalidRuns       = errors.New("runs must be positive")
	ErrInvalidWorkers    = errors.New("workers must be positive")
	ErrInvalidBudget     = errors.New("max_registrations and time_limit must be >= 0")
	ErrInvalidLogFormat  = errors.New("log_format must be 'json' or 'text'")
	ErrInvalidLogLevel   = errors.New("log_level must be debug, info, warn, or error")
	ErrInvalidSearchOpts = errors.New("invalid search options")
	ErrInvalidLowerBound = errors.New("lower_bound_iterations must be positive")
)

// Config holds the driver configuration, read from TSPDEEP_* variables.
type Config struct {
	Instance          string        `envconfig:"INSTANCE" required:"true"`
	Runs              int           `envconfig:"RUNS" default:"1"`
	Seed              int64         `envconfig:"SEED" default:"1"`
	Workers           int           `envconfig:"WORKERS" default:"1"`
	MaxRegistrations  int64         `envconfig:"MAX_REGISTRATIONS" default:"0"`
	TimeLimit         time.Duration `envconfig:"TIME_LIMIT" default:"0s"`
	Goal              int64         `envconfig:"GOAL" default:"-1"`
	Candidates        int           `envconfig:"CANDIDATES" default:"8"`
	StartDepth        int           `envconfig:"START_DEPTH" default:"2"`
	MaxDepth          int           `envconfig:"MAX_DEPTH" default:"6"`
	DepthIncreaseProb float64       `envconfig:"DEPTH_INCREASE_PROB" default:"0.5"`
	GreedyNeighbors   int           `envconfig:"GREEDY_NEIGHBORS" default:"10"`
	Augmentation      string        `envconfig:"AUGMENTATION" default:"best"`
	OutputDir         string        `envconfig:"OUTPUT_DIR"`
	MetricsAddr       string        `envconfig:"METRICS_ADDR"`
	LowerBound        bool          `envconfig:"LOWER_BOUND" default:"false"`
	LowerBoundIters   int           `envconfig:"LOWER_BOUND_ITERATIONS" default:"32"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat         string        `envconfig:"LOG_FORMAT" default:"text"`
}

// LoadConfig reads an optional .env file, then the environment, and validates the result.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ValidateConfig validates the configuration and returns an error if invalid
func ValidateConfig(cfg *Config) error {
	if cfg.Instance == "" {
		return ErrInvalidInstance
	}
	if cfg.Runs <= 0 {
		return ErrInvalidRuns
	}
	if cfg.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if cfg.MaxRegistrations < 0 || cfg.TimeLimit < 0 {
		return ErrInvalidBudget
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return ErrInvalidLogFormat
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return ErrInvalidLogLevel
	}
	if cfg.LowerBound && cfg.LowerBoundIters <= 0 {
		return ErrInvalidLowerBound
	}
	if _, err := cfg.SearchOptions(); err != nil {
		return errors.Join(ErrInvalidSearchOpts, err)
	}

	return nil
}

// SearchOptions maps the search fields onto validated tsp.Options.
func (c *Config) SearchOptions() (tsp.Options, error) {
	aug, err := tsp.ParseAugmentationPolicy(c.Augmentation)
	if err != nil {
		return tsp.Options{}, err
	}
	opts := tsp.DefaultOptions()
	opts.Candidates = c.Candidates
	opts.StartDepth = c.StartDepth
	opts.MaxDepth = c.MaxDepth
	opts.DepthIncreaseProb = c.DepthIncreaseProb
	opts.GreedyNeighbors = c.GreedyNeighbors
	opts.Augmentation = aug
	if err = opts.Validate(); err != nil {
		return tsp.Options{}, err
	}

	return opts, nil
}
