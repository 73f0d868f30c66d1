package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("SAMPLE_CACHE_TTL", "")
	t.Setenv("GEMINI_RPS", "")

	cfg := Load()
	if cfg.NATSSubject != "documents.ingested" {
		t.Fatalf("NATSSubject = %q", cfg.NATSSubject)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.SampleCacheTTL != 0 {
		t.Fatalf("SampleCacheTTL = %v, want caching disabled", cfg.SampleCacheTTL)
	}
	if cfg.GeminiRPS != 2 {
		t.Fatalf("GeminiRPS = %v", cfg.GeminiRPS)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("SAMPLE_CACHE_TTL", "5m")
	t.Setenv("GEMINI_RPS", "0.5")
	t.Setenv("REPORT_LIMIT", "250")

	cfg := Load()
	if cfg.SampleCacheTTL != 5*time.Minute {
		t.Fatalf("SampleCacheTTL = %v", cfg.SampleCacheTTL)
	}
	if cfg.GeminiRPS != 0.5 {
		t.Fatalf("GeminiRPS = %v", cfg.GeminiRPS)
	}
	if cfg.ReportLimit != 250 {
		t.Fatalf("ReportLimit = %d", cfg.ReportLimit)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SAMPLE_CACHE_TTL", "soon")
	t.Setenv("REPORT_LIMIT", "many")

	cfg := Load()
	if cfg.SampleCacheTTL != 0 {
		t.Fatalf("SampleCacheTTL = %v, want fallback", cfg.SampleCacheTTL)
	}
	if cfg.ReportLimit != 100 {
		t.Fatalf("ReportLimit = %d, want fallback", cfg.ReportLimit)
	}
}

func TestLoadThresholdsDefaultsOnEmptyPath(t *testing.T) {
	thresholds, err := LoadThresholds("")
	if err != nil {
		t.Fatalf("LoadThresholds() error = %v", err)
	}
	if thresholds.MinQualityScore != 55.0 {
		t.Fatalf("MinQualityScore = %v", thresholds.MinQualityScore)
	}
	if thresholds.MinTextLength != 50 {
		t.Fatalf("MinTextLength = %d", thresholds.MinTextLength)
	}
}

func TestLoadThresholdsOverridesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "min_quality_score: 70\nmin_text_length: 25\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	thresholds, err := LoadThresholds(path)
	if err != nil {
		t.Fatalf("LoadThresholds() error = %v", err)
	}
	if thresholds.MinQualityScore != 70.0 {
		t.Fatalf("MinQualityScore = %v", thresholds.MinQualityScore)
	}
	if thresholds.MinTextLength != 25 {
		t.Fatalf("MinTextLength = %d", thresholds.MinTextLength)
	}
	// Fields the file does not set keep their defaults.
	if thresholds.BlurryQualityCutoff != 60.0 {
		t.Fatalf("BlurryQualityCutoff = %v", thresholds.BlurryQualityCutoff)
	}
}

func TestLoadThresholdsMissingFileErrors(t *testing.T) {
	if _, err := LoadThresholds(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
