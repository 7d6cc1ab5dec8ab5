package genclient

import (
	"context"
	"errors"
	"testing"

	"github.com/elyx-health/conductor/internal/apperrors"
)

type fakeDriver struct {
	fail bool
	size string
}

func (d *fakeDriver) Generate(_ context.Context, prompt Prompt) (string, error) {
	if d.fail {
		return "", errors.New("backend unavailable")
	}
	return "ok:" + prompt.ModelSize, nil
}

func TestRotatingDriver_SucceedsOnFirstCredential(t *testing.T) {
	ring := NewCredentialRing([]Credential{{Key: "a"}, {Key: "b"}})
	factory := func(_ string, cred Credential) Driver { return &fakeDriver{fail: false} }

	d := NewRotatingDriver("http://example.invalid", factory, ring, []string{"large", "small"}, 0)
	text, err := d.Generate(context.Background(), Prompt{Text: "hi"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "ok:large" {
		t.Fatalf("Generate() = %q, want first model size tried", text)
	}
}

func TestRotatingDriver_FallsBackAcrossCredentials(t *testing.T) {
	ring := NewCredentialRing([]Credential{{Key: "bad"}, {Key: "good"}})
	factory := func(_ string, cred Credential) Driver {
		return &fakeDriver{fail: cred.Key == "bad"}
	}

	d := NewRotatingDriver("http://example.invalid", factory, ring, []string{"large"}, 0)
	text, err := d.Generate(context.Background(), Prompt{Text: "hi"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "ok:large" {
		t.Fatalf("Generate() = %q, want success from second credential", text)
	}
}

func TestRotatingDriver_ExhaustsToSentinelError(t *testing.T) {
	ring := NewCredentialRing([]Credential{{Key: "a"}, {Key: "b"}})
	factory := func(_ string, cred Credential) Driver { return &fakeDriver{fail: true} }

	d := NewRotatingDriver("http://example.invalid", factory, ring, []string{"large", "small"}, 0)
	_, err := d.Generate(context.Background(), Prompt{Text: "hi"})
	if !errors.Is(err, apperrors.ErrGeneratorExhausted) {
		t.Fatalf("Generate() error = %v, want %v", err, apperrors.ErrGeneratorExhausted)
	}
}
