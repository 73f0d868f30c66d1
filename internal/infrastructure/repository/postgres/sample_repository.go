package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

// SampleRepository is the database-backed sample library for the embedding
// signal. ActiveSamples reads live rows so newly labeled samples take effect
// without a worker restart.
type SampleRepository struct {
	db *sql.DB
}

func NewSampleRepository(db *sql.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

func (r *SampleRepository) EnsureSchema(ctx context.Context) error {
	const query = `
CREATE TABLE IF NOT EXISTS doc_type_samples (
	id TEXT PRIMARY KEY,
	doc_type TEXT NOT NULL,
	filename TEXT NOT NULL,
	embedding JSONB,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_doc_type_samples_active ON doc_type_samples(active);
CREATE INDEX IF NOT EXISTS idx_doc_type_samples_doc_type ON doc_type_samples(doc_type);
`
	return ensureSchema(ctx, r.db, lockSamples, query)
}

func (r *SampleRepository) Add(ctx context.Context, sample domain.LabeledSample) error {
	embedding, err := json.Marshal(sample.Embedding)
	if err != nil {
		return fmt.Errorf("marshal embedding: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO doc_type_samples (id, doc_type, filename, embedding, active, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE
SET doc_type = EXCLUDED.doc_type, embedding = EXCLUDED.embedding, active = EXCLUDED.active
`, sample.ID, string(sample.DocType), sample.Filename, embedding, sample.Active, sample.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert sample: %w", err)
	}
	return nil
}

func (r *SampleRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE doc_type_samples SET active = FALSE WHERE id = $1
`, id)
	if err != nil {
		return fmt.Errorf("deactivate sample: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate sample rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "deactivate sample", fmt.Errorf("id=%s", id))
	}
	return nil
}

// ActiveSamples returns every active labeled sample. Rows with unparseable
// embeddings are skipped rather than failing the whole read; the matcher
// already tolerates samples without vectors.
func (r *SampleRepository) ActiveSamples(ctx context.Context) ([]domain.LabeledSample, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, doc_type, filename, embedding, active, created_at
FROM doc_type_samples
WHERE active = TRUE
ORDER BY created_at
`)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []domain.LabeledSample
	for rows.Next() {
		var (
			s            domain.LabeledSample
			docType      string
			embeddingRaw []byte
		)
		if err := rows.Scan(&s.ID, &docType, &s.Filename, &embeddingRaw, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		s.DocType = domain.ParseDocumentType(docType)
		if len(embeddingRaw) > 0 {
			if err := json.Unmarshal(embeddingRaw, &s.Embedding); err != nil {
				s.Embedding = nil
			}
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return samples, nil
}
