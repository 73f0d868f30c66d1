package domain

// Attribute bag keys the rule engine reads. The bag is assembled by the
// caller from the document record plus extraction metadata; the engine does
// not know how the values were produced.
const (
	AttrDocumentType             = "document_type"
	AttrQualityScore             = "quality_score"
	AttrOCRText                  = "ocr_text"
	AttrClassificationConfidence = "classification_confidence"
	AttrIsBlurry                 = "is_blurry"
	AttrSignatureCount           = "signature_count"
	AttrOrderNumber              = "order_number"
	AttrInvoiceNumber            = "invoice_number"
	AttrDocumentDate             = "document_date"
	AttrMetadata                 = "metadata"

	MetaDocTypeFields   = "doc_type_fields"
	MetaFieldValidation = "field_extraction_validation"
	MetaExtractionScore = "extraction_score"
)

// Attributes is the flat attribute bag validated by the rule engine.
// Accessors tolerate missing keys and mismatched types: absent values read
// as zero values, matching how upstream treats unpopulated columns.
type Attributes map[string]any

func (a Attributes) String(key string) string {
	v, _ := a[key].(string)
	return v
}

func (a Attributes) Float(key string) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func (a Attributes) Int(key string) int {
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (a Attributes) Bool(key string) bool {
	v, _ := a[key].(bool)
	return v
}

// Has reports whether the key is present with a non-empty value.
func (a Attributes) Has(key string) bool {
	switch v := a[key].(type) {
	case nil:
		return false
	case string:
		return v != ""
	default:
		return true
	}
}

func (a Attributes) nested(key string) Attributes {
	switch v := a[key].(type) {
	case Attributes:
		return v
	case map[string]any:
		return Attributes(v)
	}
	return nil
}

// Metadata returns the nested metadata map, or nil when absent.
func (a Attributes) Metadata() Attributes {
	return a.nested(AttrMetadata)
}

// DocTypeFields returns metadata.doc_type_fields, or nil when absent.
func (a Attributes) DocTypeFields() Attributes {
	if meta := a.Metadata(); meta != nil {
		return meta.nested(MetaDocTypeFields)
	}
	return nil
}

// Field returns a named value from metadata.doc_type_fields as a string.
func (a Attributes) Field(name string) string {
	if fields := a.DocTypeFields(); fields != nil {
		return fields.String(name)
	}
	return ""
}

// HasField reports whether metadata.doc_type_fields carries a non-empty value.
func (a Attributes) HasField(name string) bool {
	if fields := a.DocTypeFields(); fields != nil {
		return fields.Has(name)
	}
	return false
}

// ExtractionScore returns metadata.field_extraction_validation.extraction_score.
func (a Attributes) ExtractionScore() float64 {
	if meta := a.Metadata(); meta != nil {
		if fv := meta.nested(MetaFieldValidation); fv != nil {
			return fv.Float(MetaExtractionScore)
		}
	}
	return 0
}
