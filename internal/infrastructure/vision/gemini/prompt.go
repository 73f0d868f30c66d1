package gemini

import (
	"fmt"
	"strings"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

// classificationPrompt asks for a single JSON object naming one of the known
// document types. The OCR excerpt is included when available so the model can
// cross-check the image against already-extracted text.
func classificationPrompt(textExcerpt string) string {
	var sb strings.Builder
	sb.WriteString("You are classifying a scanned trucking logistics document.\n")
	sb.WriteString("Classify it as exactly one of these types:\n")
	for _, docType := range domain.DocumentTypes {
		fmt.Fprintf(&sb, "- %s\n", docType)
	}
	sb.WriteString("If none apply, use \"Unknown\".\n\n")

	if strings.TrimSpace(textExcerpt) != "" {
		sb.WriteString("OCR text extracted from the document:\n---\n")
		sb.WriteString(textExcerpt)
		sb.WriteString("\n---\n\n")
	}

	sb.WriteString("Respond with JSON only, no prose:\n")
	sb.WriteString(`{"document_type": "<one of the types above>", "confidence": <0.0-1.0>, "reasoning": "<one short sentence>"}`)
	return sb.String()
}
