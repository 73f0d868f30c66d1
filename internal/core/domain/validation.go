package domain

import "fmt"

type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// ValidationStatus is the persisted lifecycle status a verdict maps to.
type ValidationStatus string

const (
	ValidationPass        ValidationStatus = "Pass"
	ValidationFail        ValidationStatus = "Fail"
	ValidationNeedsReview ValidationStatus = "Needs Review"
	ValidationPending     ValidationStatus = "Pending"
)

// Verdict statuses reported by the rule engine.
const (
	VerdictPass         = "Pass"
	VerdictPassWarnings = "Pass with Warnings"
	VerdictFail         = "Fail"
)

// Finding records one failed rule with its resolved fail reason.
type Finding struct {
	RuleID   string `json:"rule_id"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
	Category string `json:"category"`
}

// ValidationResult is the aggregate verdict of one validation pass.
// Invariant: TotalRulesChecked == len(PassedRules)+len(HardFailures)+len(SoftWarnings).
type ValidationResult struct {
	Status            string    `json:"status"`
	HardFailures      []Finding `json:"hard_failures"`
	SoftWarnings      []Finding `json:"soft_warnings"`
	PassedRules       []string  `json:"passed_rules"`
	TotalRulesChecked int       `json:"total_rules_checked"`
	Score             float64   `json:"score"`
	BillingReady      bool      `json:"billing_ready"`
	NeedsManualReview bool      `json:"needs_manual_review"`
	StopProcessing    bool      `json:"stop_processing"`
	Summary           string    `json:"summary"`
}

// StatusEnum maps the verdict string to the persisted validation status.
func (r ValidationResult) StatusEnum() ValidationStatus {
	switch r.Status {
	case VerdictPass:
		return ValidationPass
	case VerdictPassWarnings:
		return ValidationNeedsReview
	default:
		return ValidationFail
	}
}

// Summarize builds the one-line human summary keyed off the verdict.
func Summarize(status string, hardFailures, softWarnings int) string {
	switch status {
	case VerdictPass:
		return "All validation rules passed. Document ready for processing."
	case VerdictPassWarnings:
		return fmt.Sprintf("Document passed with %d warning(s). Review recommended.", softWarnings)
	default:
		return fmt.Sprintf("Document failed %d critical rule(s). Action required.", hardFailures)
	}
}
