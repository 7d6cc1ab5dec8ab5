package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/elyx-health/conductor/internal/model"
)

// Initialize loads, validates, and returns ready-to-use configuration.
// This is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Load profile.yaml and rules.yaml from configDir
//  2. Expand environment variables
//  3. Parse YAML into structs
//  4. Merge built-in rule defaults with user-defined rules
//  5. Parse date strings into time.Time
//  6. Validate all configuration
//  7. Return Config ready for use
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Info("Configuration initialized successfully",
		"member_id", cfg.Profile.MemberID,
		"start", cfg.Profile.StartDate.Format("2006-01-02"),
		"end", cfg.Profile.EndDate.Format("2006-01-02"))

	return cfg, nil
}

func load(_ context.Context, configDir string) (*Config, error) {
	loader := &configLoader{configDir: configDir}

	profile, err := loader.loadProfileYAML()
	if err != nil {
		return nil, NewLoadError("profile.yaml", err)
	}

	userRules, err := loader.loadRulesYAML()
	if err != nil {
		return nil, NewLoadError("rules.yaml", err)
	}

	rules := DefaultRules()
	if err := mergo.Merge(rules, userRules, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge rules config: %w", err)
	}

	start, err := time.Parse("2006-01-02", profile.StartStr)
	if err != nil {
		return nil, NewValidationError("profile", "start_date", err)
	}
	end, err := time.Parse("2006-01-02", profile.EndStr)
	if err != nil {
		return nil, NewValidationError("profile", "end_date", err)
	}
	profile.StartDate = start
	profile.EndDate = end

	return &Config{
		configDir: configDir,
		Profile:   profile,
		Rules:     rules,
	}, nil
}

func validate(cfg *Config) error {
	v := NewValidator(cfg)
	return v.ValidateAll()
}

type configLoader struct {
	configDir string
}

func (l *configLoader) loadYAML(filename string, target any) error {
	path := filepath.Join(l.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return nil
}

func (l *configLoader) loadProfileYAML() (*model.Profile, error) {
	var p model.Profile
	if err := l.loadYAML("profile.yaml", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (l *configLoader) loadRulesYAML() (*Rules, error) {
	var r Rules
	if err := l.loadYAML("rules.yaml", &r); err != nil {
		return nil, err
	}
	return &r, nil
}
