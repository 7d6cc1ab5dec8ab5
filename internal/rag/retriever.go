package rag

import (
	"context"
	"time"

	"github.com/elyx-health/conductor/internal/apperrors"
	"github.com/elyx-health/conductor/internal/index"
)

// roleTypeAllow restricts retrieval to the document types each role owns
// or commonly needs for context (C12).
var roleTypeAllow = map[Role][]string{
	RoleRuby:     {"event", "intervention", "profile"},
	RoleDrWarren: {"lab"},
	RoleAdvik:    {"daily"},
	RoleCarla:    {"daily", "body_comp"},
	RoleRachel:   {"fitness", "body_comp"},
	RoleNeel:     {"kpi"},
}

// RetrievedDoc is the trimmed view of a Document handed to the orchestrator.
type RetrievedDoc struct {
	ID       string
	Text     string
	Metadata map[string]any
}

// Retriever queries the vector index within a role's owned document types.
type Retriever struct {
	store *index.Store
}

// NewRetriever binds a retriever to a vector store.
func NewRetriever(store *index.Store) *Retriever {
	return &Retriever{store: store}
}

// Query embeds question and fetches the top-k role-scoped documents,
// optionally filtered to date >= since (C12). Unknown roles fail with
// RoleNotFound.
func (r *Retriever) Query(ctx context.Context, role Role, question string, k int, since *time.Time) ([]RetrievedDoc, error) {
	allow, ok := roleTypeAllow[role]
	if !ok {
		return nil, apperrors.ErrRoleNotFound
	}

	queryEmbedding := index.Embed(question)
	docs, err := r.store.Query(ctx, queryEmbedding, allow, since, k)
	if err != nil {
		return nil, err
	}

	out := make([]RetrievedDoc, 0, len(docs))
	for _, d := range docs {
		out = append(out, RetrievedDoc{
			ID:       d.ID,
			Text:     truncateText(d.Text, 300),
			Metadata: d.Metadata,
		})
	}
	return out, nil
}

func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
