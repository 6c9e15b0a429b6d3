package config

import (
	"flag"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	fs := flag.NewFlagSet("finance", flag.ContinueOnError)
	cfg, err := Parse(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.TrialCount != 1000 {
		t.Fatalf("expected 1000 trials, got %d", cfg.TrialCount)
	}
	if cfg.DefaultEndYear != 2100 {
		t.Fatalf("expected end year 2100, got %d", cfg.DefaultEndYear)
	}
	if cfg.MaxHorizonYears != 500 {
		t.Fatalf("expected 500 year max horizon, got %d", cfg.MaxHorizonYears)
	}
	if cfg.ScheduleRegistryTimeout != 2*time.Second {
		t.Fatalf("expected 2s registry timeout, got %s", cfg.ScheduleRegistryTimeout)
	}
	if cfg.Seed != 0 {
		t.Fatalf("expected random seed by default, got %d", cfg.Seed)
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FINANCE_TRIAL_COUNT", "50")
	t.Setenv("FINANCE_SEED", "42")
	t.Setenv("TAX_SCHEDULE_REGISTRY_URL", "http://registry.local")

	cfg, err := Parse(flag.NewFlagSet("finance", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9090 || cfg.TrialCount != 50 || cfg.Seed != 42 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.ScheduleRegistryURL != "http://registry.local" {
		t.Fatalf("expected registry url, got %q", cfg.ScheduleRegistryURL)
	}
}

func TestParseFlagOverrides(t *testing.T) {
	t.Setenv("FINANCE_TRIAL_COUNT", "50")

	fs := flag.NewFlagSet("finance", flag.ContinueOnError)
	cfg, err := Parse(fs, []string{"-port", "9001", "-trials", "10", "-workers", "2"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9001 || cfg.TrialCount != 10 || cfg.Workers != 2 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := [][]string{
		{"-trials", "0"},
		{"-workers", "-1"},
		{"-trials", "200000"},
	}
	for _, args := range tests {
		if _, err := Parse(flag.NewFlagSet("finance", flag.ContinueOnError), args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestParseRejectsBadEnv(t *testing.T) {
	t.Setenv("FINANCE_TRIAL_COUNT", "many")
	if _, err := Parse(flag.NewFlagSet("finance", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected env parse error")
	}
}

func TestParseRejectsZeroHorizon(t *testing.T) {
	t.Setenv("FINANCE_MAX_HORIZON_YEARS", "0")
	if _, err := Parse(flag.NewFlagSet("finance", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected error for zero max horizon")
	}
}
