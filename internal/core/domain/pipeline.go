package domain

import "time"

// ProcessOutcome summarizes one pipeline run for callers and metrics.
type ProcessOutcome struct {
	DocumentID       string           `json:"document_id"`
	DocType          DocumentType     `json:"doc_type"`
	Confidence       float64          `json:"confidence"`
	Method           string           `json:"method_used"`
	ValidationStatus ValidationStatus `json:"validation_status"`
	StopProcessing   bool             `json:"stop_processing"`
}

// FieldExtraction is the outcome of structured field extraction for one
// document: the fields that matched and the share of expected fields found.
type FieldExtraction struct {
	Fields map[string]string `json:"fields"`
	Score  float64           `json:"score"`
}

// ValidationRecord is a persisted verdict row read back for reporting.
type ValidationRecord struct {
	DocumentID   string           `json:"document_id"`
	Filename     string           `json:"filename"`
	DocType      DocumentType     `json:"doc_type"`
	Status       ValidationStatus `json:"status"`
	Score        float64          `json:"score"`
	HardFailures int              `json:"hard_failures"`
	SoftWarnings int              `json:"soft_warnings"`
	Summary      string           `json:"summary"`
	ValidatedAt  time.Time        `json:"validated_at"`
}
