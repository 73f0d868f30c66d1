package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

// ValidationRepository stores rule-engine verdicts, one row per pipeline run.
// The headline columns are queryable; the full result lands in a JSONB
// payload for audits.
type ValidationRepository struct {
	db *sql.DB
}

func NewValidationRepository(db *sql.DB) *ValidationRepository {
	return &ValidationRepository{db: db}
}

func (r *ValidationRepository) EnsureSchema(ctx context.Context) error {
	const query = `
CREATE TABLE IF NOT EXISTS document_validations (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id),
	status TEXT NOT NULL,
	score DOUBLE PRECISION NOT NULL,
	hard_failure_count INTEGER NOT NULL,
	soft_warning_count INTEGER NOT NULL,
	billing_ready BOOLEAN NOT NULL,
	stop_processing BOOLEAN NOT NULL,
	summary TEXT NOT NULL,
	result JSONB NOT NULL,
	validated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_document_validations_document_id ON document_validations(document_id);
CREATE INDEX IF NOT EXISTS idx_document_validations_validated_at ON document_validations(validated_at DESC);
`
	return ensureSchema(ctx, r.db, lockValidations, query)
}

func (r *ValidationRepository) Save(ctx context.Context, documentID string, result domain.ValidationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal validation result: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO document_validations (
	id, document_id, status, score, hard_failure_count, soft_warning_count,
	billing_ready, stop_processing, summary, result, validated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`,
		uuid.NewString(), documentID, string(result.StatusEnum()), result.Score,
		len(result.HardFailures), len(result.SoftWarnings),
		result.BillingReady, result.StopProcessing, result.Summary, payload,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert validation: %w", err)
	}
	return nil
}

func (r *ValidationRepository) ListRecent(ctx context.Context, limit int) ([]domain.ValidationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT v.document_id, d.filename, COALESCE(d.doc_type, ''), v.status, v.score,
	v.hard_failure_count, v.soft_warning_count, v.summary, v.validated_at
FROM document_validations v
JOIN documents d ON d.id = v.document_id
ORDER BY v.validated_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query validations: %w", err)
	}
	defer rows.Close()

	var records []domain.ValidationRecord
	for rows.Next() {
		var (
			rec     domain.ValidationRecord
			docType string
			status  string
		)
		if err := rows.Scan(
			&rec.DocumentID, &rec.Filename, &docType, &status, &rec.Score,
			&rec.HardFailures, &rec.SoftWarnings, &rec.Summary, &rec.ValidatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan validation: %w", err)
		}
		rec.DocType = domain.ParseDocumentType(docType)
		rec.Status = domain.ValidationStatus(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate validations: %w", err)
	}
	return records, nil
}
