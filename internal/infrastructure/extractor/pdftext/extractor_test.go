package pdftext

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

type storageStub struct {
	data []byte
	err  error
}

func (s *storageStub) Save(context.Context, string, io.Reader) error { return nil }

func (s *storageStub) Open(context.Context, string) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor(&storageStub{data: []byte("  packing list contents  ")})
	text, err := e.Extract(context.Background(), &domain.Document{
		Filename: "list.txt",
		MimeType: "text/plain",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "packing list contents" {
		t.Fatalf("text = %q", text)
	}
}

func TestExtractImageYieldsNoText(t *testing.T) {
	e := NewExtractor(&storageStub{data: []byte{0xFF, 0xD8, 0xFF}})
	text, err := e.Extract(context.Background(), &domain.Document{
		Filename: "scan.jpg",
		MimeType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "" {
		t.Fatalf("image extraction must yield empty text, got %q", text)
	}
}

func TestExtractRejectsUnknownBinary(t *testing.T) {
	e := NewExtractor(&storageStub{data: []byte{0x00, 0x01, 0x02, 0xFE}})
	_, err := e.Extract(context.Background(), &domain.Document{
		Filename: "blob.bin",
		MimeType: "application/octet-stream",
	})
	if err == nil {
		t.Fatalf("expected error for unknown binary format")
	}
}

func TestExtractCorruptPDFFails(t *testing.T) {
	e := NewExtractor(&storageStub{data: []byte("%PDF-1.7 not really a pdf")})
	_, err := e.Extract(context.Background(), &domain.Document{
		Filename: "bol.pdf",
		MimeType: "application/pdf",
	})
	if err == nil {
		t.Fatalf("expected error for corrupt pdf")
	}
}
