package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/vkarpenko/freightgate/internal/core/ports"
)

const defaultReportLimit = 100

// ExportReportUseCase renders recent validation verdicts into a report
// stream for back-office review.
type ExportReportUseCase struct {
	validations ports.ValidationRepository
	writer      ports.ReportWriter
}

func NewExportReportUseCase(validations ports.ValidationRepository, writer ports.ReportWriter) *ExportReportUseCase {
	return &ExportReportUseCase{validations: validations, writer: writer}
}

// ExportValidationReport writes the most recent verdicts to w and returns
// how many rows the report contains. An empty report is not an error.
func (uc *ExportReportUseCase) ExportValidationReport(ctx context.Context, w io.Writer, limit int) (int, error) {
	if limit <= 0 {
		limit = defaultReportLimit
	}

	records, err := uc.validations.ListRecent(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("list validation records: %w", err)
	}

	if err := uc.writer.Write(w, records); err != nil {
		return 0, fmt.Errorf("render validation report: %w", err)
	}
	return len(records), nil
}
