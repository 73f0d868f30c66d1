package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishDocumentIngested(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, documentID)
	return nil
}

func (f *queueFake) SubscribeDocumentIngested(context.Context, func(context.Context, string) error) error {
	return nil
}

func TestUploadStoresPersistsAndPublishes(t *testing.T) {
	repo := &repoFake{}
	storage := &storageFake{}
	queue := &queueFake{}
	uc := NewIngestDocumentUseCase(repo, storage, queue)

	doc, err := uc.Upload(context.Background(), "bol scan.pdf", "application/pdf", strings.NewReader("raw bytes"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if doc.ID == "" {
		t.Fatalf("document must get an id")
	}
	if doc.Status != domain.StatusUploaded {
		t.Fatalf("Status = %s, want %s", doc.Status, domain.StatusUploaded)
	}
	if len(storage.saved) != 1 {
		t.Fatalf("expected one stored object, got %d", len(storage.saved))
	}
	if _, ok := storage.saved[doc.StoragePath]; !ok {
		t.Fatalf("storage key %q not saved", doc.StoragePath)
	}
	if strings.Contains(doc.StoragePath, " ") {
		t.Fatalf("storage key must be sanitized: %q", doc.StoragePath)
	}
	if len(queue.published) != 1 || queue.published[0] != doc.ID {
		t.Fatalf("published = %v, want [%s]", queue.published, doc.ID)
	}
}

func TestUploadQueueErrorPropagates(t *testing.T) {
	uc := NewIngestDocumentUseCase(&repoFake{}, &storageFake{}, &queueFake{err: errors.New("nats down")})

	if _, err := uc.Upload(context.Background(), "pod.jpg", "image/jpeg", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUploadStorageErrorSkipsPersistence(t *testing.T) {
	repo := &repoFake{}
	uc := NewIngestDocumentUseCase(repo, &storageFake{saveErr: errors.New("disk full")}, &queueFake{})

	if _, err := uc.Upload(context.Background(), "pod.jpg", "image/jpeg", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error")
	}
	if repo.doc != nil {
		t.Fatalf("metadata must not be created when storage fails")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"bol scan.pdf", "bol_scan.pdf"},
		{"../../etc/passwd", "passwd"},
		{"pod#1 (final).jpg", "pod_1__final_.jpg"},
		{"", "document.bin"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
