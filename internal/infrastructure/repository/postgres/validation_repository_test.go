package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

func TestSaveValidationMapsVerdictToStatus(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewValidationRepository(db)

	mock.ExpectExec("INSERT INTO document_validations").
		WithArgs(
			sqlmock.AnyArg(), "doc-1", string(domain.ValidationNeedsReview), 0.86,
			0, 2, false, false, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), "doc-1", domain.ValidationResult{
		Status: domain.VerdictPassWarnings,
		SoftWarnings: []domain.Finding{
			{RuleID: "BOL_007"},
			{RuleID: "BOL_008"},
		},
		Score:   0.86,
		Summary: "Document passed with 2 warning(s). Review recommended.",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListRecentJoinsDocumentMetadata(t *testing.T) {
	db, mock, done := newMockDB(t)
	defer done()
	repo := NewValidationRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"document_id", "filename", "doc_type", "status", "score",
		"hard_failure_count", "soft_warning_count", "summary", "validated_at",
	}).
		AddRow("doc-1", "bol.pdf", "Bill of Lading", "Pass", 1.0, 0, 0, "ok", now).
		AddRow("doc-2", "pod.jpg", "Proof of Delivery", "Fail", 0.5, 2, 1, "failed", now)

	mock.ExpectQuery("SELECT v.document_id, d.filename").
		WithArgs(10).
		WillReturnRows(rows)

	records, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].DocType != domain.TypeBillOfLading || records[0].Status != domain.ValidationPass {
		t.Fatalf("record[0] = %+v", records[0])
	}
	if records[1].HardFailures != 2 || records[1].SoftWarnings != 1 {
		t.Fatalf("record[1] = %+v", records[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
