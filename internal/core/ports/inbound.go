package ports

import (
	"context"
	"io"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor runs the classification + validation pipeline for one
// uploaded document and reports the outcome.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) (*domain.ProcessOutcome, error)
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// ReportExporter renders recent validation verdicts into a report stream.
type ReportExporter interface {
	ExportValidationReport(ctx context.Context, w io.Writer, limit int) (int, error)
}
