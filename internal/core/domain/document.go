package domain

import "time"

// DocumentType is the closed set of trucking paperwork types the pipeline
// understands. Unknown is a valid terminal classification, not an error.
type DocumentType string

const (
	TypeBillOfLading      DocumentType = "Bill of Lading"
	TypeProofOfDelivery   DocumentType = "Proof of Delivery"
	TypePackingList       DocumentType = "Packing List"
	TypeCommercialInvoice DocumentType = "Commercial Invoice"
	TypeHazmatDocument    DocumentType = "Hazmat Document"
	TypeLumperReceipt     DocumentType = "Lumper Receipt"
	TypeTripSheet         DocumentType = "Trip Sheet"
	TypeFreightInvoice    DocumentType = "Freight Invoice"
	TypeUnknown           DocumentType = "Unknown"
)

// DocumentTypes lists every classifiable type in fixed declared order.
// The order is load-bearing: vote ties are broken by position in this slice.
var DocumentTypes = []DocumentType{
	TypeBillOfLading,
	TypeProofOfDelivery,
	TypePackingList,
	TypeCommercialInvoice,
	TypeHazmatDocument,
	TypeLumperReceipt,
	TypeTripSheet,
	TypeFreightInvoice,
}

// ParseDocumentType maps a raw label to a known type, falling back to Unknown.
func ParseDocumentType(raw string) DocumentType {
	for _, dt := range DocumentTypes {
		if string(dt) == raw {
			return dt
		}
	}
	return TypeUnknown
}

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

// Document mirrors the documents table. Quality, blur and signature data are
// produced by upstream preprocessing and consumed here as plain attributes.
type Document struct {
	ID             string         `json:"id"`
	Filename       string         `json:"filename"`
	MimeType       string         `json:"mime_type"`
	StoragePath    string         `json:"storage_path"`
	OrderNumber    string         `json:"order_number,omitempty"`
	DocType        DocumentType   `json:"doc_type,omitempty"`
	Confidence     float64        `json:"confidence,omitempty"`
	OCRText        string         `json:"ocr_text,omitempty"`
	QualityScore   *float64       `json:"quality_score,omitempty"`
	IsBlurry       *bool          `json:"is_blurry,omitempty"`
	SignatureCount int            `json:"signature_count"`
	DocumentDate   string         `json:"document_date,omitempty"`
	Status         DocumentStatus `json:"status"`
	Error          string         `json:"error,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
