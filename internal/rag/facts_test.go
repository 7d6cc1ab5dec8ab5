package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/elyx-health/conductor/internal/apperrors"
)

func TestFactsAssembler_UnknownRole(t *testing.T) {
	a := NewFactsAssembler(nil)
	_, err := a.Assemble(context.Background(), Role("not-a-role"))
	if !errors.Is(err, apperrors.ErrRoleNotFound) {
		t.Fatalf("Assemble() error = %v, want %v", err, apperrors.ErrRoleNotFound)
	}
}
