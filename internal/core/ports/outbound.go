package ports

import (
	"context"
	"io"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveOCRText(ctx context.Context, id string, text string) error
	SaveClassification(ctx context.Context, id string, result domain.ClassificationResult) error
}

// SampleLibrary provides the labeled reference samples used by the embedding
// signal. Implementations read fresh state per call so the library can be
// refreshed between classifications without a restart. An empty slice is a
// valid (degraded) state.
type SampleLibrary interface {
	ActiveSamples(ctx context.Context) ([]domain.LabeledSample, error)
}

// ValidationRepository persists validation verdicts.
type ValidationRepository interface {
	Save(ctx context.Context, documentID string, result domain.ValidationResult) error
	ListRecent(ctx context.Context, limit int) ([]domain.ValidationRecord, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes document-ingested events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document. OCR engines are
// external; this port also fronts them for scanned inputs.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// Embedder builds a vector for query text. A nil vector without error means
// the backend is unavailable and the embedding signal should abstain.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// DocumentClassifier produces the multi-signal classification for one
// document's text and image. It never fails; degraded inputs yield an
// Unknown result.
type DocumentClassifier interface {
	Classify(ctx context.Context, text string, image []byte) domain.ClassificationResult
}

// RuleValidator evaluates an assembled attribute bag against the rule
// registry. Evaluation is pure and never returns an error.
type RuleValidator interface {
	Validate(doc domain.Attributes) domain.ValidationResult
}

// FieldExtractor pulls structured fields out of document text for a given
// document type.
type FieldExtractor interface {
	ExtractFields(text string, docType domain.DocumentType) domain.FieldExtraction
}

// VisionModel classifies a document image with an external vision-capable
// model. Transport failures and malformed responses surface as errors here;
// the classifier converts them into signal abstention.
type VisionModel interface {
	ClassifyDocument(ctx context.Context, image []byte, textExcerpt string) (domain.Signal, error)
}

// ReportWriter renders validation records into a report document.
type ReportWriter interface {
	Write(w io.Writer, records []domain.ValidationRecord) error
}
