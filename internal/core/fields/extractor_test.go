package fields

import (
	"math"
	"testing"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

func TestExtractBillOfLadingFields(t *testing.T) {
	text := `BILL OF LADING
B/L No: BL-99812
Order: TRK-5521
Shipper: Acme Distribution
Consignee: Beta Retail
Freight Terms: Prepaid
Total Weight: 12,400 lbs`

	e := NewExtractor()
	out := e.ExtractFields(text, domain.TypeBillOfLading)

	want := map[string]string{
		"bol_number":    "BL-99812",
		"order_number":  "TRK-5521",
		"freight_terms": "Prepaid",
	}
	for name, value := range want {
		if got := out.Fields[name]; got != value {
			t.Fatalf("field %s = %q, want %q (all: %v)", name, got, value, out.Fields)
		}
	}
	if out.Score <= 0 || out.Score > 1 {
		t.Fatalf("Score = %f, want within (0,1]", out.Score)
	}
}

func TestExtractScoreIsShareOfDefinedFields(t *testing.T) {
	e := NewExtractor()

	// Only UN number and hazard class are present; hazmat defines 7 fields.
	out := e.ExtractFields("UN 1203 Class 3 cargo", domain.TypeHazmatDocument)

	if out.Fields["un_number"] != "1203" {
		t.Fatalf("un_number = %q, want 1203", out.Fields["un_number"])
	}
	if out.Fields["hazard_class"] != "3" {
		t.Fatalf("hazard_class = %q, want 3", out.Fields["hazard_class"])
	}
	want := float64(len(out.Fields)) / float64(e.FieldCount(domain.TypeHazmatDocument))
	if math.Abs(out.Score-want) > 1e-9 {
		t.Fatalf("Score = %f, want %f", out.Score, want)
	}
}

func TestExtractUnknownTypeScoresZero(t *testing.T) {
	e := NewExtractor()
	out := e.ExtractFields("any amount of text at all", domain.TypeUnknown)

	if len(out.Fields) != 0 || out.Score != 0 {
		t.Fatalf("Unknown extraction = %+v, want empty", out)
	}
}

func TestExtractEmptyTextScoresZero(t *testing.T) {
	e := NewExtractor()
	out := e.ExtractFields("   \n\t ", domain.TypeBillOfLading)

	if len(out.Fields) != 0 || out.Score != 0 {
		t.Fatalf("blank extraction = %+v, want empty", out)
	}
}

func TestCleanValueNormalizesWhitespace(t *testing.T) {
	got := cleanValue("  Acme   Distribution ,")
	if got != "Acme Distribution" {
		t.Fatalf("cleanValue() = %q, want %q", got, "Acme Distribution")
	}
}
