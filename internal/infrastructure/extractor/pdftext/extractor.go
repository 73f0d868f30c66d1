// Package pdftext extracts plain text from stored uploads. PDF text layers
// are read directly; UTF-8 payloads pass through. Image uploads yield no
// text here, their OCR text arrives from upstream preprocessing and the
// vision signal covers classification.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/vkarpenko/freightgate/internal/core/domain"
	"github.com/vkarpenko/freightgate/internal/core/ports"
)

type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	reader, err := e.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return "", fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read source document: %w", err)
	}

	switch {
	case isPDF(doc, raw):
		return extractPDF(raw)
	case strings.HasPrefix(doc.MimeType, "image/"):
		return "", nil
	case utf8.Valid(raw):
		return strings.TrimSpace(string(raw)), nil
	default:
		return "", fmt.Errorf("unsupported document format: %s (%s)", doc.Filename, doc.MimeType)
	}
}

func isPDF(doc *domain.Document, raw []byte) bool {
	if doc.MimeType == "application/pdf" {
		return true
	}
	if strings.HasSuffix(strings.ToLower(doc.Filename), ".pdf") {
		return true
	}
	return bytes.HasPrefix(raw, []byte("%PDF-"))
}

func extractPDF(raw []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	content, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
