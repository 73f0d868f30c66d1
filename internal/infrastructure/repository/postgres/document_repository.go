// Package postgres persists documents, the labeled sample library and
// validation verdicts. All repositories share one *sql.DB opened through the
// pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	order_number TEXT,
	doc_type TEXT,
	confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
	classification JSONB,
	ocr_text TEXT,
	quality_score DOUBLE PRECISION,
	is_blurry BOOLEAN,
	signature_count INTEGER NOT NULL DEFAULT 0,
	document_date TEXT,
	status TEXT NOT NULL,
	error_message TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
CREATE INDEX IF NOT EXISTS idx_documents_doc_type ON documents(doc_type);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC);
`
	return ensureSchema(ctx, r.db, lockDocuments, query)
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO documents (
	id, filename, mime_type, storage_path, order_number, doc_type, confidence,
	ocr_text, quality_score, is_blurry, signature_count, document_date,
	status, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
`,
		doc.ID, doc.Filename, doc.MimeType, doc.StoragePath, doc.OrderNumber,
		string(doc.DocType), doc.Confidence, doc.OCRText, doc.QualityScore,
		doc.IsBlurry, doc.SignatureCount, doc.DocumentDate,
		string(doc.Status), doc.Error, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, mime_type, storage_path, order_number, doc_type, confidence,
	ocr_text, quality_score, is_blurry, signature_count, document_date,
	status, error_message, created_at, updated_at
FROM documents
WHERE id = $1
`, id)

	var (
		doc          domain.Document
		orderNumber  sql.NullString
		docType      sql.NullString
		ocrText      sql.NullString
		qualityScore sql.NullFloat64
		isBlurry     sql.NullBool
		documentDate sql.NullString
		status       string
		errMessage   sql.NullString
	)

	err := row.Scan(
		&doc.ID, &doc.Filename, &doc.MimeType, &doc.StoragePath, &orderNumber,
		&docType, &doc.Confidence, &ocrText, &qualityScore, &isBlurry,
		&doc.SignatureCount, &documentDate, &status, &errMessage,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}

	doc.OrderNumber = orderNumber.String
	doc.OCRText = ocrText.String
	doc.DocumentDate = documentDate.String
	doc.Error = errMessage.String
	doc.Status = domain.DocumentStatus(status)
	if docType.Valid && docType.String != "" {
		doc.DocType = domain.ParseDocumentType(docType.String)
	}
	if qualityScore.Valid {
		q := qualityScore.Float64
		doc.QualityScore = &q
	}
	if isBlurry.Valid {
		b := isBlurry.Bool
		doc.IsBlurry = &b
	}
	return &doc, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return requireRowAffected(result, "update status", id)
}

func (r *DocumentRepository) SaveOCRText(ctx context.Context, id string, text string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET ocr_text = $2, updated_at = $3
WHERE id = $1
`, id, text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save ocr text: %w", err)
	}
	return requireRowAffected(result, "save ocr text", id)
}

// SaveClassification writes the headline columns plus the full result as
// JSONB so evidence and the vote breakdown survive for audits.
func (r *DocumentRepository) SaveClassification(ctx context.Context, id string, cls domain.ClassificationResult) error {
	detail, err := json.Marshal(cls)
	if err != nil {
		return fmt.Errorf("marshal classification: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET doc_type = $2, confidence = $3, classification = $4, updated_at = $5
WHERE id = $1
`, id, string(cls.DocType), cls.Confidence, detail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save classification: %w", err)
	}
	return requireRowAffected(result, "save classification", id)
}

func requireRowAffected(result sql.Result, operation, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, operation, fmt.Errorf("id=%s", id))
	}
	return nil
}
