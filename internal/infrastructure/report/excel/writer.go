// Package excel renders validation verdicts into an .xlsx workbook for the
// operations team. One row per validated document, newest first, matching
// the order the validation repository returns.
package excel

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

const sheetName = "Validations"

var headers = []string{
	"Document ID",
	"Filename",
	"Document Type",
	"Status",
	"Score",
	"Hard Failures",
	"Soft Warnings",
	"Summary",
	"Validated At",
}

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (wr *Writer) Write(w io.Writer, records []domain.ValidationRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := wr.writeHeader(f); err != nil {
		return err
	}
	for i, rec := range records {
		if err := writeRecord(f, i+2, rec); err != nil {
			return err
		}
	}

	widths := []float64{38, 30, 18, 20, 8, 14, 14, 60, 22}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (wr *Writer) writeHeader(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	for i, title := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return fmt.Errorf("set header %q: %w", title, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return fmt.Errorf("style header %q: %w", title, err)
		}
	}
	return nil
}

func writeRecord(f *excelize.File, row int, rec domain.ValidationRecord) error {
	values := []any{
		rec.DocumentID,
		rec.Filename,
		string(rec.DocType),
		string(rec.Status),
		rec.Score,
		rec.HardFailures,
		rec.SoftWarnings,
		rec.Summary,
		rec.ValidatedAt.Format(time.RFC3339),
	}
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("record cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
