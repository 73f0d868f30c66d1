package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vkarpenko/freightgate/internal/core/domain"
	"github.com/vkarpenko/freightgate/internal/core/ports"
)

// ProcessDocumentUseCase runs the full intake pipeline for one uploaded
// document: text extraction, multi-signal classification, structured field
// extraction and rule validation, persisting each stage as it completes.
type ProcessDocumentUseCase struct {
	repo        ports.DocumentRepository
	storage     ports.ObjectStorage
	extractor   ports.TextExtractor
	classifier  ports.DocumentClassifier
	fields      ports.FieldExtractor
	validator   ports.RuleValidator
	validations ports.ValidationRepository
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	classifier ports.DocumentClassifier,
	fields ports.FieldExtractor,
	validator ports.RuleValidator,
	validations ports.ValidationRepository,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:        repo,
		storage:     storage,
		extractor:   extractor,
		classifier:  classifier,
		fields:      fields,
		validator:   validator,
		validations: validations,
	}
}

// ProcessByID classifies and validates one document. Pipeline errors mark the
// document failed; a validation verdict, even Fail, is a successful run.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) (*domain.ProcessOutcome, error) {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return nil, fmt.Errorf("set status=processing: %w", err)
	}

	outcome, err := uc.processPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return nil, fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return nil, err
	}

	finalStatus := domain.StatusReady
	errMessage := ""
	if outcome.StopProcessing {
		// Hard quality failures mean the upload itself is unusable and the
		// customer has to re-submit.
		finalStatus = domain.StatusFailed
		errMessage = "validation stopped: document must be re-uploaded"
	}
	if err := uc.markStatus(ctx, documentID, finalStatus, errMessage); err != nil {
		return nil, fmt.Errorf("set status=%s: %w", finalStatus, err)
	}

	return outcome, nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) (*domain.ProcessOutcome, error) {
	doc, err := uc.loadDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	image := uc.loadImage(ctx, doc)

	text, err := uc.resolveText(ctx, doc)
	if err != nil {
		return nil, err
	}

	classification := uc.classifier.Classify(ctx, text, image)
	if err := uc.repo.SaveClassification(ctx, doc.ID, classification); err != nil {
		return nil, fmt.Errorf("save classification: %w", err)
	}

	extraction := uc.fields.ExtractFields(text, classification.DocType)

	attrs := pipelineAttributes(doc, text, classification, extraction)
	result := uc.validator.Validate(attrs)

	if err := uc.validations.Save(ctx, doc.ID, result); err != nil {
		return nil, fmt.Errorf("save validation result: %w", err)
	}

	return &domain.ProcessOutcome{
		DocumentID:       doc.ID,
		DocType:          classification.DocType,
		Confidence:       classification.Confidence,
		Method:           classification.Method,
		ValidationStatus: result.StatusEnum(),
		StopProcessing:   result.StopProcessing,
	}, nil
}

func (uc *ProcessDocumentUseCase) loadDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

// loadImage fetches the raw upload for the vision signal. Only image uploads
// are forwarded; a missing or unreadable object degrades to no image, which
// makes the vision signal abstain rather than failing the pipeline.
func (uc *ProcessDocumentUseCase) loadImage(ctx context.Context, doc *domain.Document) []byte {
	if !strings.HasPrefix(doc.MimeType, "image/") {
		return nil
	}
	rc, err := uc.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil
	}
	return data
}

// resolveText prefers OCR text persisted by upstream preprocessing and falls
// back to the extractor for text-bearing formats. An image without OCR text
// proceeds with empty text; the vision signal still classifies it and the
// minimum-text rule fails it during validation.
func (uc *ProcessDocumentUseCase) resolveText(ctx context.Context, doc *domain.Document) (string, error) {
	if strings.TrimSpace(doc.OCRText) != "" {
		return doc.OCRText, nil
	}

	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	if text == "" {
		if strings.HasPrefix(doc.MimeType, "image/") {
			return "", nil
		}
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text", errors.New("empty extracted text"))
	}

	if err := uc.repo.SaveOCRText(ctx, doc.ID, text); err != nil {
		return "", fmt.Errorf("save extracted text: %w", err)
	}
	doc.OCRText = text
	return text, nil
}

// pipelineAttributes assembles the flat attribute bag the rule engine reads.
// Pointer-typed quality data is only set when present so absence reads as
// zero values downstream.
func pipelineAttributes(
	doc *domain.Document,
	text string,
	classification domain.ClassificationResult,
	extraction domain.FieldExtraction,
) domain.Attributes {
	attrs := domain.Attributes{
		domain.AttrDocumentType:             string(classification.DocType),
		domain.AttrOCRText:                  text,
		domain.AttrClassificationConfidence: classification.Confidence,
		domain.AttrSignatureCount:           doc.SignatureCount,
	}
	if doc.QualityScore != nil {
		attrs[domain.AttrQualityScore] = *doc.QualityScore
	}
	if doc.IsBlurry != nil {
		attrs[domain.AttrIsBlurry] = *doc.IsBlurry
	}
	if doc.OrderNumber != "" {
		attrs[domain.AttrOrderNumber] = doc.OrderNumber
	}
	if doc.DocumentDate != "" {
		attrs[domain.AttrDocumentDate] = doc.DocumentDate
	}

	fields := make(map[string]any, len(extraction.Fields))
	for name, value := range extraction.Fields {
		fields[name] = value
	}
	attrs[domain.AttrMetadata] = map[string]any{
		domain.MetaDocTypeFields: fields,
		domain.MetaFieldValidation: map[string]any{
			domain.MetaExtractionScore: extraction.Score,
		},
	}
	return attrs
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
