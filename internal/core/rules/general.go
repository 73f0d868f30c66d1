package rules

import (
	"fmt"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

// Thresholds carries the tunable cutoffs for the general rules. Values are
// configuration, not engine logic.
type Thresholds struct {
	MinQualityScore             float64 `yaml:"min_quality_score"`
	MinTextLength               int     `yaml:"min_text_length"`
	MinClassificationConfidence float64 `yaml:"min_classification_confidence"`
	BlurryQualityCutoff         float64 `yaml:"blurry_quality_cutoff"`
	MinExtractionScore          float64 `yaml:"min_extraction_score"`
}

// DefaultThresholds returns the production defaults. The classification
// confidence floor is the same constant the classifier uses for its
// needs-review cutoff.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinQualityScore:             55.0,
		MinTextLength:               50,
		MinClassificationConfidence: domain.MinReviewConfidence,
		BlurryQualityCutoff:         60.0,
		MinExtractionScore:          0.50,
	}
}

// GeneralRules builds the ordered general rule set. These run first for
// every document; a hard failure here stops all further evaluation.
func GeneralRules(t Thresholds) []Rule {
	return []Rule{
		{
			ID:   "GEN_001",
			Name: "Image Quality Check",
			Check: func(doc domain.Attributes) bool {
				return doc.Float(domain.AttrQualityScore) >= t.MinQualityScore
			},
			FailReason: fmt.Sprintf("Document image quality too low (< %.0f%%). Please re-upload a clearer photo.", t.MinQualityScore),
			Severity:   domain.SeverityHard,
			Category:   "quality",
		},
		{
			ID:   "GEN_002",
			Name: "Minimum Text Extracted",
			Check: func(doc domain.Attributes) bool {
				return len(doc.String(domain.AttrOCRText)) >= t.MinTextLength
			},
			FailReason: fmt.Sprintf("Could not extract enough text (< %d characters). Document may be blank or unreadable.", t.MinTextLength),
			Severity:   domain.SeverityHard,
			Category:   "quality",
		},
		{
			ID:   "GEN_003",
			Name: "Document Type Identified",
			Check: func(doc domain.Attributes) bool {
				return doc.Float(domain.AttrClassificationConfidence) >= t.MinClassificationConfidence
			},
			FailReason: "Document type could not be identified confidently. Manual review needed.",
			Severity:   domain.SeverityHard,
			Category:   "classification",
		},
		{
			ID:   "GEN_004",
			Name: "Not Severely Blurry",
			Check: func(doc domain.Attributes) bool {
				return !(doc.Bool(domain.AttrIsBlurry) && doc.Float(domain.AttrQualityScore) < t.BlurryQualityCutoff)
			},
			FailReason: "Document is too blurry. Please re-upload a clearer image.",
			Severity:   domain.SeverityHard,
			Category:   "quality",
		},
		{
			ID:   "GEN_005",
			Name: "Date Present",
			Check: func(doc domain.Attributes) bool {
				return doc.Has(domain.AttrDocumentDate) ||
					doc.HasField("invoice_date") ||
					doc.HasField("ship_date") ||
					doc.HasField("delivery_date") ||
					doc.HasField("date")
			},
			FailReason: "No date found on document. Date is required for tracking.",
			Severity:   domain.SeveritySoft,
			Category:   "data",
		},
		{
			ID:   "GEN_006",
			Name: "Extraction Completeness",
			Check: func(doc domain.Attributes) bool {
				return doc.ExtractionScore() >= t.MinExtractionScore
			},
			FailReason: fmt.Sprintf("Less than %.0f%% of required fields could be read from document.", t.MinExtractionScore*100),
			Severity:   domain.SeveritySoft,
			Category:   "data",
		},
	}
}
