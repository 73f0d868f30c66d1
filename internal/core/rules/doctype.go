package rules

import (
	"strings"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

func hasField(name string) Predicate {
	return func(doc domain.Attributes) bool {
		return doc.HasField(name)
	}
}

func hasOrderNumber(doc domain.Attributes) bool {
	return doc.Has(domain.AttrOrderNumber) || doc.HasField("order_number")
}

func minSignatures(n int) Predicate {
	return func(doc domain.Attributes) bool {
		return doc.Int(domain.AttrSignatureCount) >= n
	}
}

// DocTypeRules builds the per-type rule tables. Each list runs only after
// every general rule passed; hard failures here fail the document without
// halting the surrounding pipeline.
func DocTypeRules() map[domain.DocumentType][]Rule {
	return map[domain.DocumentType][]Rule{
		domain.TypeBillOfLading: {
			{
				ID:         "BOL_001",
				Name:       "Requires 2 Signatures",
				Check:      minSignatures(2),
				FailReason: "BOL must have minimum 2 signatures (shipper + carrier). Found {count}.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "BOL_002",
				Name:       "BOL Number Present",
				Check:      hasField("bol_number"),
				FailReason: "BOL number is missing. This is required for tracking.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "BOL_003",
				Name:       "Order/Load Number Present",
				Check:      hasOrderNumber,
				FailReason: "Order or Load number is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "BOL_004",
				Name:       "Shipper Name Present",
				Check:      hasField("shipper"),
				FailReason: "Shipper name is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "BOL_005",
				Name:       "Consignee Name Present",
				Check:      hasField("consignee"),
				FailReason: "Consignee name is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:   "BOL_006",
				Name: "Origin and Destination Present",
				Check: func(doc domain.Attributes) bool {
					return doc.HasField("origin") && doc.HasField("destination")
				},
				FailReason: "Origin or Destination location is missing.",
				Severity:   domain.SeveritySoft,
			},
			{
				ID:         "BOL_007",
				Name:       "Freight Terms Specified",
				Check:      hasField("freight_terms"),
				FailReason: "Freight terms (Prepaid/Collect) not specified.",
				Severity:   domain.SeveritySoft,
			},
			{
				ID:         "BOL_008",
				Name:       "Weight Present",
				Check:      hasField("total_weight"),
				FailReason: "Total weight is missing.",
				Severity:   domain.SeveritySoft,
			},
		},

		domain.TypeProofOfDelivery: {
			{
				ID:         "POD_001",
				Name:       "Consignee Signature Required",
				Check:      minSignatures(1),
				FailReason: "POD must have consignee signature to confirm delivery.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "POD_002",
				Name:       "Order Number Present",
				Check:      hasOrderNumber,
				FailReason: "Order/Load number is missing on POD.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "POD_003",
				Name:       "Delivery Date Present",
				Check:      hasField("delivery_date"),
				FailReason: "Delivery date is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "POD_004",
				Name:       "Delivered To Name Present",
				Check:      hasField("delivered_to"),
				FailReason: "Recipient name is missing.",
				Severity:   domain.SeveritySoft,
			},
			{
				ID:         "POD_005",
				Name:       "Delivery Condition Noted",
				Check:      hasField("condition"),
				FailReason: "Delivery condition (Good/Damaged) not noted.",
				Severity:   domain.SeveritySoft,
			},
			{
				ID:   "POD_006",
				Name: "No Damage Reported",
				Check: func(doc domain.Attributes) bool {
					switch strings.ToLower(doc.Field("condition")) {
					case "damaged", "refused", "partial":
						return false
					}
					return true
				},
				FailReason: "Delivery condition shows damage or refusal - escalate for review.",
				Severity:   domain.SeveritySoft,
			},
		},

		domain.TypeCommercialInvoice: {
			{
				ID:   "INV_001",
				Name: "Invoice Number Present",
				Check: func(doc domain.Attributes) bool {
					return doc.Has(domain.AttrInvoiceNumber) || doc.HasField("invoice_number")
				},
				FailReason: "Invoice number is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "INV_002",
				Name:       "Order Number Present",
				Check:      hasOrderNumber,
				FailReason: "Order/PO number is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "INV_003",
				Name:       "Total Amount Present",
				Check:      hasField("total_amount"),
				FailReason: "Invoice total amount is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:   "INV_004",
				Name: "Seller and Buyer Present",
				Check: func(doc domain.Attributes) bool {
					return doc.HasField("seller") && doc.HasField("buyer")
				},
				FailReason: "Seller or Buyer name is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "INV_005",
				Name:       "Payment Terms Present",
				Check:      hasField("payment_terms"),
				FailReason: "Payment terms are missing.",
				Severity:   domain.SeveritySoft,
			},
			{
				ID:         "INV_006",
				Name:       "Invoice Date Present",
				Check:      hasField("invoice_date"),
				FailReason: "Invoice date is missing.",
				Severity:   domain.SeveritySoft,
			},
		},

		domain.TypePackingList: {
			{
				ID:         "PKG_001",
				Name:       "Order Number Present",
				Check:      hasOrderNumber,
				FailReason: "Order number is missing on packing list.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "PKG_002",
				Name:       "Total Cartons Present",
				Check:      hasField("total_cartons"),
				FailReason: "Total carton count is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "PKG_003",
				Name:       "Weight Present",
				Check:      hasField("gross_weight"),
				FailReason: "Gross weight is missing.",
				Severity:   domain.SeveritySoft,
			},
			{
				ID:         "PKG_004",
				Name:       "Destination Present",
				Check:      hasField("destination"),
				FailReason: "Destination is missing.",
				Severity:   domain.SeveritySoft,
			},
		},

		domain.TypeHazmatDocument: {
			{
				ID:         "HAZ_001",
				Name:       "UN Number Required",
				Check:      hasField("un_number"),
				FailReason: "UN number is MANDATORY for hazmat documents.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "HAZ_002",
				Name:       "Proper Shipping Name Required",
				Check:      hasField("shipping_name"),
				FailReason: "Proper shipping name is required.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "HAZ_003",
				Name:       "Hazard Class Required",
				Check:      hasField("hazard_class"),
				FailReason: "Hazard class is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "HAZ_004",
				Name:       "Emergency Contact Required",
				Check:      hasField("emergency_contact"),
				FailReason: "Emergency contact number is MANDATORY for hazmat.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "HAZ_005",
				Name:       "Packing Group Present",
				Check:      hasField("packing_group"),
				FailReason: "Packing group (I/II/III) is missing.",
				Severity:   domain.SeveritySoft,
			},
			{
				ID:         "HAZ_006",
				Name:       "Shipper Signature Required",
				Check:      minSignatures(1),
				FailReason: "Hazmat document requires shipper signature.",
				Severity:   domain.SeverityHard,
			},
		},

		domain.TypeLumperReceipt: {
			{
				ID:         "LMP_001",
				Name:       "Signature Required",
				Check:      minSignatures(1),
				FailReason: "Lumper receipt must be signed.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "LMP_002",
				Name:       "Order Number Present",
				Check:      hasOrderNumber,
				FailReason: "Order/Load number is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "LMP_003",
				Name:       "Amount Present",
				Check:      hasField("amount"),
				FailReason: "Payment amount is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "LMP_004",
				Name:       "Date Present",
				Check:      hasField("date"),
				FailReason: "Date is missing on lumper receipt.",
				Severity:   domain.SeveritySoft,
			},
			{
				ID:         "LMP_005",
				Name:       "Service Type Present",
				Check:      hasField("service_type"),
				FailReason: "Service type (Loading/Unloading) not specified.",
				Severity:   domain.SeveritySoft,
			},
		},

		domain.TypeTripSheet: {
			{
				ID:         "TRP_001",
				Name:       "Trip Number Present",
				Check:      hasField("trip_number"),
				FailReason: "Trip/Load number is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "TRP_002",
				Name:       "Driver Name Present",
				Check:      hasField("driver_name"),
				FailReason: "Driver name is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "TRP_003",
				Name:       "Driver Signature Required",
				Check:      minSignatures(1),
				FailReason: "Driver signature is required on trip sheet.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "TRP_004",
				Name:       "Mileage Present",
				Check:      hasField("total_miles"),
				FailReason: "Total mileage is missing.",
				Severity:   domain.SeveritySoft,
			},
			{
				ID:         "TRP_005",
				Name:       "Truck Number Present",
				Check:      hasField("truck_number"),
				FailReason: "Truck/Unit number is missing.",
				Severity:   domain.SeveritySoft,
			},
		},

		domain.TypeFreightInvoice: {
			{
				ID:         "FRT_001",
				Name:       "PRO Number Present",
				Check:      hasField("pro_number"),
				FailReason: "PRO number is missing on freight invoice.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "FRT_002",
				Name:       "Order Number Present",
				Check:      hasOrderNumber,
				FailReason: "Order/Load number is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "FRT_003",
				Name:       "Total Charges Present",
				Check:      hasField("total_charges"),
				FailReason: "Total charges amount is missing.",
				Severity:   domain.SeverityHard,
			},
			{
				ID:         "FRT_004",
				Name:       "Carrier Name Present",
				Check:      hasField("carrier_name"),
				FailReason: "Carrier name is missing.",
				Severity:   domain.SeveritySoft,
			},
			{
				ID:         "FRT_005",
				Name:       "Invoice Date Present",
				Check:      hasField("invoice_date"),
				FailReason: "Invoice date is missing.",
				Severity:   domain.SeveritySoft,
			},
		},
	}
}
