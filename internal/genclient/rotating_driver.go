package genclient

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/elyx-health/conductor/internal/apperrors"
)

// DriverFactory builds a Driver bound to one credential.
type DriverFactory func(endpoint string, cred Credential) Driver

// RotatingDriver wraps a DriverFactory with credential rotation, a
// cascading model-size fallback list, and bounded per-attempt retries.
// Exhausting every (model size, credential) combination returns
// apperrors.ErrGeneratorExhausted.
type RotatingDriver struct {
	endpoint   string
	factory    DriverFactory
	creds      *CredentialRing
	modelSizes []string // tried in order, largest/preferred first
	maxRetries uint64
	logger     *slog.Logger
}

// NewRotatingDriver builds a RotatingDriver. modelSizes is tried in the
// given order for every credential rotation; maxRetries bounds the
// exponential-backoff retry loop per (model size, credential) attempt.
func NewRotatingDriver(endpoint string, factory DriverFactory, creds *CredentialRing, modelSizes []string, maxRetries uint64) *RotatingDriver {
	return &RotatingDriver{
		endpoint:   endpoint,
		factory:    factory,
		creds:      creds,
		modelSizes: modelSizes,
		maxRetries: maxRetries,
		logger:     slog.Default(),
	}
}

// Generate tries each model size in order; for each, it rotates through all
// available credentials, retrying each credential attempt with exponential
// backoff up to maxRetries times before moving to the next credential.
func (d *RotatingDriver) Generate(ctx context.Context, prompt Prompt) (string, error) {
	for _, size := range d.modelSizes {
		sizedPrompt := prompt
		sizedPrompt.ModelSize = size

		for i := 0; i < d.creds.Len(); i++ {
			cred := d.creds.Take()
			driver := d.factory(d.endpoint, cred)

			text, err := d.generateWithRetry(ctx, driver, sizedPrompt)
			if err == nil {
				return text, nil
			}
			d.logger.Warn("generator attempt failed", "model_size", size, "error", err)
		}
	}
	return "", apperrors.ErrGeneratorExhausted
}

func (d *RotatingDriver) generateWithRetry(ctx context.Context, driver Driver, prompt Prompt) (string, error) {
	var result string
	operation := func() error {
		text, err := driver.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		result = text
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(backoff.WithInitialInterval(200*time.Millisecond)), d.maxRetries),
		ctx,
	)

	if err := backoff.Retry(operation, bo); err != nil {
		return "", fmt.Errorf("exhausted retries: %w", err)
	}
	return result, nil
}
