package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

type statusCall struct {
	status domain.DocumentStatus
	errMsg string
}

type repoFake struct {
	doc            *domain.Document
	getErr         error
	saveClsErr     error
	saveOCRErr     error
	createErr      error
	statusCalls    []statusCall
	savedOCR       string
	classification domain.ClassificationResult
	classifiedID   string
}

func (f *repoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.doc = doc
	return nil
}

func (f *repoFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyDoc := *f.doc
	return &copyDoc, nil
}

func (f *repoFake) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	return nil
}

func (f *repoFake) SaveOCRText(_ context.Context, _ string, text string) error {
	if f.saveOCRErr != nil {
		return f.saveOCRErr
	}
	f.savedOCR = text
	return nil
}

func (f *repoFake) SaveClassification(_ context.Context, id string, result domain.ClassificationResult) error {
	if f.saveClsErr != nil {
		return f.saveClsErr
	}
	f.classifiedID = id
	f.classification = result
	return nil
}

type storageFake struct {
	data    []byte
	saveErr error
	openErr error
	saved   map[string][]byte
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	b, _ := io.ReadAll(data)
	f.saved[key] = b
	return nil
}

func (f *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type textExtractorFake struct {
	text  string
	err   error
	calls int
}

func (f *textExtractorFake) Extract(context.Context, *domain.Document) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type classifierFake struct {
	result    domain.ClassificationResult
	gotText   string
	gotImage  []byte
	callCount int
}

func (f *classifierFake) Classify(_ context.Context, text string, image []byte) domain.ClassificationResult {
	f.callCount++
	f.gotText = text
	f.gotImage = image
	return f.result
}

type fieldsFake struct {
	extraction domain.FieldExtraction
}

func (f *fieldsFake) ExtractFields(string, domain.DocumentType) domain.FieldExtraction {
	return f.extraction
}

type validatorFake struct {
	result   domain.ValidationResult
	gotAttrs domain.Attributes
}

func (f *validatorFake) Validate(doc domain.Attributes) domain.ValidationResult {
	f.gotAttrs = doc
	return f.result
}

type validationsFake struct {
	saveErr error
	listErr error
	savedID string
	saved   domain.ValidationResult
	records []domain.ValidationRecord
}

func (f *validationsFake) Save(_ context.Context, documentID string, result domain.ValidationResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedID = documentID
	f.saved = result
	return nil
}

func (f *validationsFake) ListRecent(context.Context, int) ([]domain.ValidationRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func passResult() domain.ValidationResult {
	return domain.ValidationResult{
		Status:       domain.VerdictPass,
		BillingReady: true,
	}
}

func TestProcessByIDSuccess(t *testing.T) {
	repo := &repoFake{doc: &domain.Document{
		ID:       "doc-1",
		MimeType: "image/jpeg",
		OCRText:  "bill of lading text",
	}}
	classifier := &classifierFake{result: domain.ClassificationResult{
		DocType:    domain.TypeBillOfLading,
		Confidence: 0.88,
		Method:     "embedding_high_confidence",
	}}
	validations := &validationsFake{}
	uc := NewProcessDocumentUseCase(
		repo,
		&storageFake{data: []byte{0xFF, 0xD8}},
		&textExtractorFake{},
		classifier,
		&fieldsFake{},
		&validatorFake{result: passResult()},
		validations,
	)

	outcome, err := uc.ProcessByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}

	if outcome.DocType != domain.TypeBillOfLading || outcome.ValidationStatus != domain.ValidationPass {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected 2 status calls, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[0].status != domain.StatusProcessing || repo.statusCalls[1].status != domain.StatusReady {
		t.Fatalf("unexpected status sequence: %+v", repo.statusCalls)
	}
	if repo.classifiedID != "doc-1" {
		t.Fatalf("expected classification save for doc-1, got %s", repo.classifiedID)
	}
	if validations.savedID != "doc-1" {
		t.Fatalf("expected validation save for doc-1, got %s", validations.savedID)
	}
	if len(classifier.gotImage) == 0 {
		t.Fatalf("image upload should reach the classifier")
	}
}

func TestProcessByIDStopProcessingMarksFailed(t *testing.T) {
	repo := &repoFake{doc: &domain.Document{ID: "doc-1", OCRText: "short text here"}}
	uc := NewProcessDocumentUseCase(
		repo,
		&storageFake{},
		&textExtractorFake{},
		&classifierFake{result: domain.ClassificationResult{DocType: domain.TypeUnknown}},
		&fieldsFake{},
		&validatorFake{result: domain.ValidationResult{
			Status:         domain.VerdictFail,
			StopProcessing: true,
		}},
		&validationsFake{},
	)

	outcome, err := uc.ProcessByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("a failing verdict is still a successful run, got error %v", err)
	}
	if !outcome.StopProcessing {
		t.Fatalf("outcome must carry stop_processing")
	}
	last := repo.statusCalls[len(repo.statusCalls)-1]
	if last.status != domain.StatusFailed || last.errMsg == "" {
		t.Fatalf("expected failed status with message, got %+v", last)
	}
}

func TestProcessByIDExtractsAndPersistsText(t *testing.T) {
	repo := &repoFake{doc: &domain.Document{ID: "doc-1", MimeType: "application/pdf"}}
	extractor := &textExtractorFake{text: "packing list contents"}
	classifier := &classifierFake{result: domain.ClassificationResult{DocType: domain.TypePackingList, Confidence: 0.7}}
	uc := NewProcessDocumentUseCase(
		repo,
		&storageFake{},
		extractor,
		classifier,
		&fieldsFake{},
		&validatorFake{result: passResult()},
		&validationsFake{},
	)

	if _, err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if extractor.calls != 1 {
		t.Fatalf("extractor calls = %d, want 1", extractor.calls)
	}
	if repo.savedOCR != "packing list contents" {
		t.Fatalf("extracted text not persisted, got %q", repo.savedOCR)
	}
	if classifier.gotText != "packing list contents" {
		t.Fatalf("classifier text = %q", classifier.gotText)
	}
	// Non-image uploads carry no image for the vision signal.
	if classifier.gotImage != nil {
		t.Fatalf("pdf upload should not forward an image")
	}
}

func TestProcessByIDSkipsExtractorWhenOCRPresent(t *testing.T) {
	repo := &repoFake{doc: &domain.Document{ID: "doc-1", OCRText: "already extracted"}}
	extractor := &textExtractorFake{text: "should not be used"}
	uc := NewProcessDocumentUseCase(
		repo,
		&storageFake{},
		extractor,
		&classifierFake{result: domain.ClassificationResult{DocType: domain.TypeTripSheet, Confidence: 0.8}},
		&fieldsFake{},
		&validatorFake{result: passResult()},
		&validationsFake{},
	)

	if _, err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if extractor.calls != 0 {
		t.Fatalf("extractor should not run when OCR text exists, got %d calls", extractor.calls)
	}
}

func TestProcessByIDMarksFailedOnExtractError(t *testing.T) {
	repo := &repoFake{doc: &domain.Document{ID: "doc-1"}}
	uc := NewProcessDocumentUseCase(
		repo,
		&storageFake{},
		&textExtractorFake{err: errors.New("extract fail")},
		&classifierFake{},
		&fieldsFake{},
		&validatorFake{},
		&validationsFake{},
	)

	if _, err := uc.ProcessByID(context.Background(), "doc-1"); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.statusCalls) != 2 || repo.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected processing + failed status updates, got %+v", repo.statusCalls)
	}
}

func TestProcessByIDMarksFailedOnValidationSaveError(t *testing.T) {
	repo := &repoFake{doc: &domain.Document{ID: "doc-1", OCRText: "trip sheet odometer"}}
	uc := NewProcessDocumentUseCase(
		repo,
		&storageFake{},
		&textExtractorFake{},
		&classifierFake{result: domain.ClassificationResult{DocType: domain.TypeTripSheet, Confidence: 0.8}},
		&fieldsFake{},
		&validatorFake{result: passResult()},
		&validationsFake{saveErr: errors.New("db down")},
	)

	if _, err := uc.ProcessByID(context.Background(), "doc-1"); err == nil {
		t.Fatalf("expected error")
	}
	if repo.statusCalls[len(repo.statusCalls)-1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
}

func TestPipelineAttributesAssembly(t *testing.T) {
	quality := 82.5
	blurry := false
	doc := &domain.Document{
		ID:             "doc-1",
		OrderNumber:    "ORD-12",
		QualityScore:   &quality,
		IsBlurry:       &blurry,
		SignatureCount: 2,
		DocumentDate:   "08/01/2026",
	}
	cls := domain.ClassificationResult{DocType: domain.TypeBillOfLading, Confidence: 0.9}
	extraction := domain.FieldExtraction{
		Fields: map[string]string{"bol_number": "BL-1"},
		Score:  0.4,
	}

	attrs := pipelineAttributes(doc, "text body", cls, extraction)

	if attrs.Float(domain.AttrQualityScore) != 82.5 {
		t.Fatalf("quality = %f", attrs.Float(domain.AttrQualityScore))
	}
	if attrs.String(domain.AttrDocumentType) != string(domain.TypeBillOfLading) {
		t.Fatalf("document_type = %q", attrs.String(domain.AttrDocumentType))
	}
	if !attrs.HasField("bol_number") {
		t.Fatalf("extracted field missing from attribute bag")
	}
	if attrs.ExtractionScore() != 0.4 {
		t.Fatalf("extraction score = %f", attrs.ExtractionScore())
	}
	if attrs.Int(domain.AttrSignatureCount) != 2 {
		t.Fatalf("signature count = %d", attrs.Int(domain.AttrSignatureCount))
	}
}

func TestPipelineAttributesOmitsMissingQualityData(t *testing.T) {
	doc := &domain.Document{ID: "doc-1"}
	attrs := pipelineAttributes(doc, "text", domain.ClassificationResult{DocType: domain.TypeUnknown}, domain.FieldExtraction{})

	if attrs.Has(domain.AttrQualityScore) || attrs.Has(domain.AttrIsBlurry) || attrs.Has(domain.AttrOrderNumber) {
		t.Fatalf("absent pointer data must not appear in the bag: %+v", attrs)
	}
}
