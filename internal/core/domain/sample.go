package domain

import "time"

// LabeledSample is one reference document in the sample library. Embedding
// may be nil when the sample was stored before an embedding backend was
// configured; such samples are skipped during similarity matching.
type LabeledSample struct {
	ID        string       `json:"id"`
	DocType   DocumentType `json:"doc_type"`
	Filename  string       `json:"filename"`
	Embedding []float32    `json:"embedding,omitempty"`
	Active    bool         `json:"active"`
	CreatedAt time.Time    `json:"created_at"`
}
