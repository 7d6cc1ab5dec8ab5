package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/elyx-health/conductor/internal/apperrors"
	"github.com/elyx-health/conductor/internal/model"
)

const collectionName = "elyx_docs"

// Store is the persistent on-disk vector collection (§6). Re-ingestion
// clears and repopulates the table and rewrites embedding_dimensions in one
// transaction, so the recorded dimension stays consistent with the newly
// embedded corpus atomically.
type Store struct {
	db *sql.DB
}

// NewStore wraps db for vector index access.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Rebuild drops and recreates the collection's contents, then batch-upserts
// docs (C9). The table schema itself is owned by the storage migrations;
// this only clears and repopulates rows.
func (s *Store) Rebuild(ctx context.Context, docs []model.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM elyx_docs"); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}

	for _, d := range docs {
		meta, err := json.Marshal(d.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for %s: %w", d.ID, err)
		}

		var dateVal, monthVal any
		if v, ok := d.Metadata["date"]; ok {
			dateVal = v
		}
		if v, ok := d.Metadata["month"]; ok {
			monthVal = v
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO elyx_docs (id, type, date, month, text, metadata, embedding)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)
			 ON CONFLICT (id) DO UPDATE SET type=$2, date=$3, month=$4, text=$5, metadata=$6, embedding=$7`,
			d.ID, d.Type, dateVal, monthVal, d.Text, meta, float64SliceToArray(d.Embedding)); err != nil {
			return fmt.Errorf("upsert document %s: %w", d.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO elyx_docs_meta (collection, embedding_dimensions, document_count, rebuilt_at)
		 VALUES ($1,$2,$3,now())
		 ON CONFLICT (collection) DO UPDATE SET embedding_dimensions=$2, document_count=$3, rebuilt_at=now()`,
		collectionName, Dimensions, len(docs)); err != nil {
		return fmt.Errorf("update collection metadata: %w", err)
	}

	return tx.Commit()
}

// Query returns the top-k documents by cosine distance among those whose
// type is in typeAllow and (if since is non-nil) whose date is >= since.
// Both filters are combined via an explicit logical AND, satisfying the
// store's single-operator filter rule.
func (s *Store) Query(ctx context.Context, queryEmbedding []float64, typeAllow []string, since *time.Time, k int) ([]model.Document, error) {
	if len(typeAllow) == 0 {
		return nil, nil
	}

	var rows *sql.Rows
	var err error
	if since != nil {
		query := `SELECT id, type, date, month, text, metadata, embedding FROM elyx_docs WHERE type = ANY($1) AND date >= $2`
		rows, err = s.db.QueryContext(ctx, query, pqTextArray(typeAllow), *since)
	} else {
		query := `SELECT id, type, date, month, text, metadata, embedding FROM elyx_docs WHERE type = ANY($1)`
		rows, err = s.db.QueryContext(ctx, query, pqTextArray(typeAllow))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIndexUnavailable, err)
	}
	defer rows.Close()

	var candidates []model.Document
	for rows.Next() {
		var d model.Document
		var dateVal, monthVal sql.NullString
		var metaRaw []byte
		var embedding []byte
		if err := rows.Scan(&d.ID, &d.Type, &dateVal, &monthVal, &d.Text, &metaRaw, &embedding); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		_ = json.Unmarshal(metaRaw, &d.Metadata)
		d.Embedding = parseFloatArray(embedding)
		candidates = append(candidates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(candidates, func(i, j int) bool {
		return CosineDistance(queryEmbedding, candidates[i].Embedding) < CosineDistance(queryEmbedding, candidates[j].Embedding)
	})
	if k > 0 && len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// MetaDimensions reports the collection's recorded embedding_dimensions and
// document_count, in that order.
func (s *Store) MetaDimensions(ctx context.Context) (int, int, error) {
	var dims, count int
	err := s.db.QueryRowContext(ctx, `SELECT embedding_dimensions, document_count FROM elyx_docs_meta WHERE collection=$1`, collectionName).Scan(&dims, &count)
	if err == sql.ErrNoRows {
		return 0, 0, fmt.Errorf("%w: collection not yet built", apperrors.ErrIndexUnavailable)
	}
	return dims, count, err
}

func float64SliceToArray(v []float64) string {
	out := "{"
	for i, x := range v {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%v", x)
	}
	return out + "}"
}

func parseFloatArray(raw []byte) []float64 {
	// pgx's database/sql driver returns Postgres array literals as
	// "{a,b,c}"; a minimal parser avoids pulling in a full array-decoding
	// dependency for this one column type.
	s := string(raw)
	if len(s) < 2 {
		return nil
	}
	s = s[1 : len(s)-1]
	if s == "" {
		return nil
	}
	var out []float64
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			var f float64
			_, _ = fmt.Sscanf(s[start:i], "%g", &f)
			out = append(out, f)
			start = i + 1
		}
	}
	return out
}

func pqTextArray(vals []string) string {
	out := "{"
	for i, v := range vals {
		if i > 0 {
			out += ","
		}
		out += `"` + v + `"`
	}
	return out + "}"
}
