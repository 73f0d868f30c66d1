package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

type reportWriterFake struct {
	err  error
	rows int
}

func (f *reportWriterFake) Write(_ io.Writer, records []domain.ValidationRecord) error {
	if f.err != nil {
		return f.err
	}
	f.rows = len(records)
	return nil
}

func TestExportValidationReport(t *testing.T) {
	validations := &validationsFake{records: []domain.ValidationRecord{
		{DocumentID: "doc-1", DocType: domain.TypeBillOfLading, Status: domain.ValidationPass},
		{DocumentID: "doc-2", DocType: domain.TypeProofOfDelivery, Status: domain.ValidationFail},
	}}
	writer := &reportWriterFake{}
	uc := NewExportReportUseCase(validations, writer)

	var buf bytes.Buffer
	n, err := uc.ExportValidationReport(context.Background(), &buf, 10)
	if err != nil {
		t.Fatalf("ExportValidationReport() error = %v", err)
	}
	if n != 2 || writer.rows != 2 {
		t.Fatalf("rows = %d/%d, want 2", n, writer.rows)
	}
}

func TestExportValidationReportListError(t *testing.T) {
	uc := NewExportReportUseCase(&validationsFake{listErr: errors.New("db down")}, &reportWriterFake{})

	var buf bytes.Buffer
	if _, err := uc.ExportValidationReport(context.Background(), &buf, 10); err == nil {
		t.Fatalf("expected error")
	}
}

func TestExportValidationReportWriterError(t *testing.T) {
	uc := NewExportReportUseCase(&validationsFake{}, &reportWriterFake{err: fmt.Errorf("render fail")})

	var buf bytes.Buffer
	if _, err := uc.ExportValidationReport(context.Background(), &buf, 10); err == nil {
		t.Fatalf("expected error")
	}
}
