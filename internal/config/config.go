// Package config loads and validates the profile and rules documents that
// parameterize every simulation stage, and owns the single seeded random
// source propagated to them.
package config

import (
	"github.com/elyx-health/conductor/internal/model"
	"github.com/elyx-health/conductor/internal/rng"
)

// Config is the umbrella object returned by Initialize and used throughout
// the pipeline and the RAG service.
type Config struct {
	configDir string

	Profile *model.Profile
	Rules   *Rules
}

// ConfigDir returns the directory configuration was loaded from.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// NewRNG returns a fresh seeded source for this profile. Each pipeline run
// calls this exactly once; the resulting source is threaded explicitly
// through every stage.
func (c *Config) NewRNG() *rng.Source {
	return rng.New(c.Profile.Seed)
}
