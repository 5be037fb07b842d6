package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AntonStoeckl/gear-rental-go/shared/shell/config"
)

const (
	defaultRate        = 200
	defaultWorkers     = 8
	defaultDuration    = 30 * time.Second
	defaultItems       = 10
	defaultPatrons     = 50
	defaultMaxQuantity = 5
	defaultWeights     = "35,25,5,5,10,20"
)

var errInvalidWeights = errors.New("invalid scenario weights")

// Config holds all simulation parameters.
type Config struct {
	Engine       string
	Adapter      string
	CreateSchema bool
	Rate         int
	Workers      int
	Duration     time.Duration
	Items        int
	Patrons      int
	MaxQuantity  int
	Weights      [numScenarios]int
	Debug        bool
}

func parseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("rental-sim", flag.ContinueOnError)

	cfg := Config{}
	fs.StringVar(&cfg.Engine, "engine", config.EngineMemory, "storage engine: memory or postgres")
	fs.StringVar(&cfg.Adapter, "adapter", config.AdapterPGXPool, "postgres adapter: pgxpool, sqldb or sqlx")
	fs.BoolVar(&cfg.CreateSchema, "create-schema", false, "create the postgres schema before the run")
	fs.IntVar(&cfg.Rate, "rate", defaultRate, "operations per second across all workers")
	fs.IntVar(&cfg.Workers, "workers", defaultWorkers, "number of concurrent workers")
	fs.DurationVar(&cfg.Duration, "duration", defaultDuration, "length of the run")
	fs.IntVar(&cfg.Items, "items", defaultItems, "number of items competed for")
	fs.IntVar(&cfg.Patrons, "patrons", defaultPatrons, "number of patrons")
	fs.IntVar(&cfg.MaxQuantity, "max-quantity", defaultMaxQuantity, "upper bound for the owned quantity of an item")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	weights := fs.String("weights", defaultWeights, "scenario weights: submit,approve,deny,cancel,borrow,return")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var err error
	if cfg.Weights, err = parseWeights(*weights); err != nil {
		return Config{}, err
	}

	if cfg.Rate < 1 || cfg.Workers < 1 || cfg.Items < 1 || cfg.Patrons < 1 || cfg.MaxQuantity < 1 {
		return Config{}, errors.New("rate, workers, items, patrons and max-quantity must be positive")
	}

	return cfg, nil
}

// parseWeights parses the comma-separated scenario weights. At least one weight must be positive.
func parseWeights(s string) ([numScenarios]int, error) {
	var weights [numScenarios]int

	parts := strings.Split(s, ",")
	if len(parts) != numScenarios {
		return weights, fmt.Errorf("%w: expected %d weights, got %d", errInvalidWeights, numScenarios, len(parts))
	}

	total := 0
	for i, part := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return weights, fmt.Errorf("%w: '%s' is not a number", errInvalidWeights, part)
		}

		if w < 0 {
			return weights, fmt.Errorf("%w: %d is negative", errInvalidWeights, w)
		}

		weights[i] = w
		total += w
	}

	if total == 0 {
		return weights, fmt.Errorf("%w: all weights are zero", errInvalidWeights)
	}

	return weights, nil
}
