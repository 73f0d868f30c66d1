package domain

// Confidence boundaries shared by the classifier and the rule engine.
// MinReviewConfidence is the single source of truth for both the classifier's
// needs-review cutoff and the "Document Type Identified" general rule.
const (
	HighConfidence      = 0.75
	MinReviewConfidence = 0.50
)

type ConfidenceStatus string

const (
	ConfidenceHigh        ConfidenceStatus = "high_confidence"
	ConfidenceMedium      ConfidenceStatus = "medium_confidence"
	ConfidenceNeedsReview ConfidenceStatus = "needs_review"
)

// ConfidenceStatusFor buckets a final confidence at the 0.75/0.50 boundaries.
func ConfidenceStatusFor(confidence float64) ConfidenceStatus {
	switch {
	case confidence >= HighConfidence:
		return ConfidenceHigh
	case confidence >= MinReviewConfidence:
		return ConfidenceMedium
	default:
		return ConfidenceNeedsReview
	}
}

// Signal is one classification signal's vote. A zero-value Signal (empty
// DocType) means the signal abstained; abstention is never an error.
type Signal struct {
	DocType         DocumentType `json:"doc_type,omitempty"`
	Confidence      float64      `json:"confidence"`
	Evidence        []string     `json:"evidence,omitempty"`
	MatchedSampleID string       `json:"matched_sample_id,omitempty"`
}

// Voted reports whether the signal produced a usable vote.
func (s Signal) Voted() bool {
	return s.DocType != "" && s.DocType != TypeUnknown && s.Confidence > 0
}

// SignalVote is the per-signal entry in a result's voting breakdown.
type SignalVote struct {
	DocType    DocumentType `json:"doc_type,omitempty"`
	Confidence float64      `json:"confidence"`
	Weight     float64      `json:"weight"`
}

// ClassificationResult is the immutable outcome of one classification call.
type ClassificationResult struct {
	DocType           DocumentType          `json:"doc_type"`
	Confidence        float64               `json:"confidence"`
	ConfidenceStatus  ConfidenceStatus      `json:"confidence_status"`
	Method            string                `json:"method_used"`
	SignalsUsed       []string              `json:"signals_used"`
	Evidence          []string              `json:"matched_evidence,omitempty"`
	MatchedSampleID   string                `json:"matched_sample_id,omitempty"`
	NeedsManualReview bool                  `json:"needs_manual_review"`
	VoteBreakdown     map[string]SignalVote `json:"vote_breakdown,omitempty"`
}
