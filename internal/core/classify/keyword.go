package classify

import (
	"strings"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

// keywordSignals maps each document type to its keyword dictionary. The
// first entry is always the type's canonical name and scores 5.0 points;
// other multi-word phrases score 2.0; single words score 1.0.
var keywordSignals = map[domain.DocumentType][]string{
	domain.TypeBillOfLading: {
		"bill of lading", "b/l", "bol", "shipper", "consignee",
		"notify party", "vessel", "port of loading", "port of discharge",
		"freight collect", "freight prepaid", "on board", "carrier",
		"scac", "pro number", "shipment", "freight charges",
	},
	domain.TypeProofOfDelivery: {
		"proof of delivery", "pod", "delivered to", "received in good condition",
		"delivery receipt", "consignee signature", "delivery confirmation",
		"goods received", "recipient signature", "delivery date",
		"received by", "date received",
	},
	domain.TypePackingList: {
		"packing list", "pack list", "carton", "gross weight", "net weight",
		"dimensions", "pieces", "packages", "hs code", "item description",
		"quantity", "total packages", "package contents", "packing details",
	},
	domain.TypeCommercialInvoice: {
		"commercial invoice", "invoice no", "invoice number", "invoice date",
		"payment terms", "unit price", "total amount", "tax invoice",
		"seller", "buyer", "incoterms", "vat", "subtotal", "net total",
		"invoice total", "invoice amount",
	},
	domain.TypeHazmatDocument: {
		"hazardous", "hazmat", "dangerous goods", "un number", "un no",
		"class", "packing group", "emergency contact", "proper shipping name",
		"flashpoint", "placard", "imdg", "dot", "msds", "safety data",
		"un id", "hazard class", "emergency response",
	},
	domain.TypeLumperReceipt: {
		"lumper", "lumper receipt", "unloading", "loading labor",
		"labor receipt", "lumper service", "unload receipt",
		"warehouse labor", "lumper fee", "lumper payment", "lumper charges",
	},
	domain.TypeTripSheet: {
		"trip sheet", "trip report", "odometer", "miles driven",
		"fuel stop", "state crossing", "driver log", "trip log",
		"departure time", "arrival time", "mileage", "fuel receipt",
		"trip number", "route", "stops",
	},
	domain.TypeFreightInvoice: {
		"freight invoice", "freight bill", "carrier invoice",
		"transportation charges", "freight charges", "linehaul",
		"fuel surcharge", "accessorial", "pro number", "pro#",
		"carrier charges", "transportation invoice",
	},
}

const minKeywordTextLen = 10

// Keyword point values: canonical type name, multi-word phrase, single word.
const (
	canonicalNameScore = 5.0
	phraseScore        = 2.0
	wordScore          = 1.0
)

// KeywordClassifier scores text against per-type keyword dictionaries.
// It is the cheapest signal and needs no external dependency.
type KeywordClassifier struct{}

// Classify returns the keyword signal for the given OCR text. Confidence is
// the winning type's score over the sum of all type scores. Too-short text
// and zero matches both yield an abstaining signal.
func (KeywordClassifier) Classify(text string) domain.Signal {
	if len(strings.TrimSpace(text)) < minKeywordTextLen {
		return domain.Signal{}
	}

	lower := strings.ToLower(text)

	var (
		best      domain.DocumentType
		bestScore float64
		bestHits  []string
		total     float64
	)

	// Fixed iteration order so score ties resolve to the earlier type.
	for _, docType := range domain.DocumentTypes {
		keywords := keywordSignals[docType]
		if len(keywords) == 0 {
			continue
		}

		var score float64
		var hits []string
		for _, kw := range keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			hits = append(hits, kw)
			switch {
			case kw == keywords[0]:
				score += canonicalNameScore
			case strings.Contains(kw, " "):
				score += phraseScore
			default:
				score += wordScore
			}
		}

		total += score
		if score > bestScore {
			best = docType
			bestScore = score
			bestHits = hits
		}
	}

	if bestScore == 0 {
		return domain.Signal{}
	}

	return domain.Signal{
		DocType:    best,
		Confidence: bestScore / total,
		Evidence:   bestHits,
	}
}
