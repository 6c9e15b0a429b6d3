// Package config loads server settings from the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration.
type Config struct {
	Port                    int           `env:"PORT" envDefault:"8080"`
	TrialCount              int           `env:"FINANCE_TRIAL_COUNT" envDefault:"1000"`
	MaxTrialCount           int           `env:"FINANCE_MAX_TRIAL_COUNT" envDefault:"100000"`
	Workers                 int           `env:"FINANCE_WORKERS" envDefault:"0"`
	DefaultEndYear          int           `env:"FINANCE_DEFAULT_END_YEAR" envDefault:"2100"`
	MaxHorizonYears         int           `env:"FINANCE_MAX_HORIZON_YEARS" envDefault:"500"`
	Seed                    int64         `env:"FINANCE_SEED"`
	SimulationTimeout       time.Duration `env:"FINANCE_SIMULATION_TIMEOUT" envDefault:"30s"`
	ScheduleRegistryURL     string        `env:"TAX_SCHEDULE_REGISTRY_URL"`
	ScheduleRegistryTimeout time.Duration `env:"TAX_SCHEDULE_REGISTRY_TIMEOUT" envDefault:"2s"`
}

// Parse reads the environment, then applies flag overrides from args.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.IntVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	fs.IntVar(&cfg.TrialCount, "trials", cfg.TrialCount, "Default number of Monte Carlo trials per simulation")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel trial workers (0 = GOMAXPROCS)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Fixed simulation seed (0 = random per request)")
	fs.StringVar(&cfg.ScheduleRegistryURL, "schedule-registry", cfg.ScheduleRegistryURL, "Base URL of the tax schedule registry")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.TrialCount < 1 {
		errs = append(errs, fmt.Errorf("trial count must be at least 1, got %d", c.TrialCount))
	}
	if c.MaxTrialCount < c.TrialCount {
		errs = append(errs, fmt.Errorf("max trial count %d is below the default trial count %d", c.MaxTrialCount, c.TrialCount))
	}
	if c.MaxHorizonYears < 1 {
		errs = append(errs, fmt.Errorf("max horizon must be at least 1 year, got %d", c.MaxHorizonYears))
	}
	if c.SimulationTimeout <= 0 {
		errs = append(errs, fmt.Errorf("simulation timeout must be positive, got %s", c.SimulationTimeout))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}
