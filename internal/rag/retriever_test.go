package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/elyx-health/conductor/internal/apperrors"
)

func TestRetriever_Query_UnknownRole(t *testing.T) {
	r := NewRetriever(nil)
	_, err := r.Query(context.Background(), Role("not-a-role"), "hello", 3, nil)
	if !errors.Is(err, apperrors.ErrRoleNotFound) {
		t.Fatalf("Query() error = %v, want %v", err, apperrors.ErrRoleNotFound)
	}
}

func TestTruncateText(t *testing.T) {
	short := "a short string"
	if got := truncateText(short, 300); got != short {
		t.Errorf("truncateText(short) = %q, want unchanged", got)
	}

	long := make([]byte, 400)
	for i := range long {
		long[i] = 'x'
	}
	if got := truncateText(string(long), 300); len(got) != 300 {
		t.Errorf("truncateText(long) length = %d, want 300", len(got))
	}
}
