// Command intake uploads freight documents into the pipeline and optionally
// exports the recent validation report. Processing itself happens in the
// worker once the queue delivers the ingested event.
package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/vkarpenko/freightgate/internal/bootstrap"
	"github.com/vkarpenko/freightgate/internal/config"
	"github.com/vkarpenko/freightgate/internal/observability/logging"
)

func main() {
	reportPath := flag.String("report", "", "write the recent validation report to this .xlsx path")
	reportLimit := flag.Int("report-limit", 0, "cap report rows (default from REPORT_LIMIT)")
	flag.Parse()

	cfg := config.Load()
	logger := logging.NewLogger("freightgate-intake", cfg.LogLevel, cfg.LogFormat)

	if flag.NArg() == 0 && *reportPath == "" {
		fmt.Fprintln(os.Stderr, "usage: intake [-report out.xlsx] [file ...]")
		os.Exit(2)
	}

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	for _, path := range flag.Args() {
		if err := uploadFile(ctx, app, path); err != nil {
			logger.Error("upload failed", "path", path, "error", err)
			os.Exit(1)
		}
	}

	if *reportPath != "" {
		limit := *reportLimit
		if limit <= 0 {
			limit = cfg.ReportLimit
		}
		if err := exportReport(ctx, app, *reportPath, limit); err != nil {
			logger.Error("report export failed", "path", *reportPath, "error", err)
			os.Exit(1)
		}
	}
}

func uploadFile(ctx context.Context, app *bootstrap.App, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	doc, err := app.IngestUC.Upload(ctx, filepath.Base(path), mimeType, f)
	if err != nil {
		return err
	}
	app.Logger.Info("document uploaded", "document_id", doc.ID, "filename", doc.Filename)
	return nil
}

func exportReport(ctx context.Context, app *bootstrap.App, path string, limit int) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	count, err := app.ReportUC.ExportValidationReport(ctx, out, limit)
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	app.Logger.Info("report exported", "path", path, "records", count)
	return nil
}
