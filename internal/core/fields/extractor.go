// Package fields pulls structured fields out of OCR text with per-type
// regular expressions. Extraction is best effort: a field that does not
// match is simply absent, and the completeness score reflects how much of
// the expected field set was found.
package fields

import (
	"strings"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

const maxFieldValueLen = 100

// Extractor matches per-type field patterns against document text.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFields runs every field pattern for the document type against the
// text. Score is found fields over defined fields; types with no field
// definitions (including Unknown) score zero with an empty field map.
func (e *Extractor) ExtractFields(text string, docType domain.DocumentType) domain.FieldExtraction {
	out := domain.FieldExtraction{Fields: make(map[string]string)}

	defs := fieldDefs[docType]
	if len(defs) == 0 || strings.TrimSpace(text) == "" {
		return out
	}

	for _, d := range defs {
		m := d.pattern.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		value := cleanValue(m[1])
		if value == "" {
			continue
		}
		out.Fields[d.name] = value
	}

	out.Score = float64(len(out.Fields)) / float64(len(defs))
	return out
}

// FieldCount reports how many fields are defined for a type. Zero means the
// type carries no extraction expectations.
func (e *Extractor) FieldCount(docType domain.DocumentType) int {
	return len(fieldDefs[docType])
}

// cleanValue normalizes a captured value: whitespace runs collapse to a
// single space and overlong captures are cut at a word boundary where one
// exists near the limit.
func cleanValue(raw string) string {
	value := strings.Join(strings.Fields(raw), " ")
	value = strings.Trim(value, " ,.:")
	if len(value) > maxFieldValueLen {
		cut := value[:maxFieldValueLen]
		if idx := strings.LastIndexByte(cut, ' '); idx > maxFieldValueLen/2 {
			cut = cut[:idx]
		}
		value = cut
	}
	return value
}
