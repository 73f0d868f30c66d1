package fields

import (
	"regexp"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

type fieldDef struct {
	name    string
	pattern *regexp.Regexp
}

func def(name, pattern string) fieldDef {
	return fieldDef{name: name, pattern: regexp.MustCompile(`(?i)` + pattern)}
}

// Per-type field definitions. Each pattern's first capture group is the
// field value. Unknown has no definitions; extraction for it scores 0.
var fieldDefs = map[domain.DocumentType][]fieldDef{
	domain.TypeBillOfLading: {
		def("bol_number", `b/?l[\s#:no\.]*([A-Z0-9\-]+)`),
		def("order_number", `(?:order|load)[\s#:no\.]*([A-Z0-9\-]+)`),
		def("shipper", `shipper[\s:]*([A-Za-z\s,\.&]+)`),
		def("consignee", `consignee[\s:]*([A-Za-z\s,\.&]+)`),
		def("origin", `(?:origin|from|port of loading)[\s:]*([A-Za-z\s,]+)`),
		def("destination", `(?:destination|to|port of discharge)[\s:]*([A-Za-z\s,]+)`),
		def("ship_date", `(?:ship date|date)[\s:]*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`),
		def("carrier", `carrier[\s:]*([A-Za-z\s,\.&]+)`),
		def("total_weight", `(?:total weight|gross weight)[\s:]*([0-9,\.]+\s*(?:lbs|kg)?)`),
		def("total_pieces", `(?:total pieces|pieces|units)[\s:]*([0-9,]+)`),
		def("freight_terms", `(?:freight terms|terms)[\s:]*(prepaid|collect|third party)`),
	},
	domain.TypeProofOfDelivery: {
		def("order_number", `(?:order|load)[\s#:no\.]*([A-Z0-9\-]+)`),
		def("delivery_date", `(?:delivery date|delivered on)[\s:]*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`),
		def("delivery_time", `(?:time|delivery time)[\s:]*(\d{1,2}:\d{2}\s*(?:AM|PM)?)`),
		def("delivered_to", `(?:delivered to|received by|recipient)[\s:]*([A-Za-z\s]+)`),
		def("delivery_address", `(?:address|delivery address)[\s:]*([A-Za-z0-9\s,\.#]+)`),
		def("condition", `(?:condition|goods condition)[\s:]*(good|damaged|partial|refused)`),
		def("driver_name", `(?:driver|driver name)[\s:]*([A-Za-z\s]+)`),
		def("exceptions", `(?:exceptions|notes|remarks)[\s:]*([A-Za-z0-9\s,\.]+)`),
	},
	domain.TypeCommercialInvoice: {
		def("invoice_number", `invoice[\s#:no\.]*([A-Z0-9\-]+)`),
		def("invoice_date", `(?:invoice date|date)[\s:]*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`),
		def("order_number", `(?:order|po number|po#)[\s#:no\.]*([A-Z0-9\-]+)`),
		def("seller", `(?:seller|from|vendor)[\s:]*([A-Za-z\s,\.&]+)`),
		def("buyer", `(?:buyer|bill to|sold to)[\s:]*([A-Za-z\s,\.&]+)`),
		def("total_amount", `(?:total|total amount|grand total)[\s:]*\$?\s*([0-9,\.]+)`),
		def("currency", `\b(USD|EUR|GBP|CAD|INR)\b`),
		def("payment_terms", `(?:payment terms|terms)[\s:]*(net\s*\d+|due on receipt|prepaid)`),
		def("incoterms", `\b(FOB|CIF|EXW|DDP|DAP|CFR)\b`),
	},
	domain.TypePackingList: {
		def("order_number", `(?:order|load|ref)[\s#:no\.]*([A-Z0-9\-]+)`),
		def("packing_date", `(?:date|packing date)[\s:]*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`),
		def("total_cartons", `(?:total cartons|cartons|packages|total packages)[\s:]*([0-9,]+)`),
		def("gross_weight", `(?:gross weight|total gross)[\s:]*([0-9,\.]+\s*(?:lbs|kg)?)`),
		def("net_weight", `(?:net weight|total net)[\s:]*([0-9,\.]+\s*(?:lbs|kg)?)`),
		def("total_volume", `(?:volume|cbm|total volume)[\s:]*([0-9,\.]+\s*(?:cbm|m3|ft3)?)`),
		def("destination", `(?:destination|ship to)[\s:]*([A-Za-z\s,]+)`),
	},
	domain.TypeHazmatDocument: {
		def("un_number", `(?:un|un no|un number)[\s#:\.]*(\d{4})`),
		def("shipping_name", `(?:proper shipping name|shipping name)[\s:]*([A-Za-z\s,]+)`),
		def("hazard_class", `(?:class|hazard class)[\s:]*([0-9\.]+[A-Z]?)`),
		def("packing_group", `(?:packing group|pg)[\s:]*(I{1,3}|1|2|3)`),
		def("total_quantity", `(?:total quantity|quantity)[\s:]*([0-9,\.]+\s*(?:L|kg|lbs|gal)?)`),
		def("emergency_contact", `(?:emergency|emergency contact|chemtrec)[\s:]*([0-9\-\+\(\)\s]+)`),
		def("shipper", `shipper[\s:]*([A-Za-z\s,\.&]+)`),
	},
	domain.TypeLumperReceipt: {
		def("order_number", `(?:order|load|ref)[\s#:no\.]*([A-Z0-9\-]+)`),
		def("date", `date[\s:]*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`),
		def("lumper_company", `(?:company|lumper company|service)[\s:]*([A-Za-z\s,\.&]+)`),
		def("worker_name", `(?:worker|employee|name)[\s:]*([A-Za-z\s]+)`),
		def("service_type", `(?:service|type)[\s:]*(unloading|loading|both)`),
		def("hours_worked", `(?:hours|hrs worked)[\s:]*([0-9\.]+\s*(?:hrs|hours)?)`),
		def("amount", `(?:amount|total|fee|charge)[\s:]*\$?\s*([0-9,\.]+)`),
		def("facility", `(?:facility|location|warehouse)[\s:]*([A-Za-z0-9\s,#\.]+)`),
	},
	domain.TypeTripSheet: {
		def("trip_number", `(?:trip|load|trip no)[\s#:no\.]*([A-Z0-9\-]+)`),
		def("driver_name", `(?:driver|driver name)[\s:]*([A-Za-z\s]+)`),
		def("truck_number", `(?:truck|unit|vehicle)[\s#:no\.]*([A-Z0-9\-]+)`),
		def("date", `date[\s:]*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`),
		def("start_odometer", `(?:start|beginning|odometer start)[\s:]*([0-9,]+)`),
		def("end_odometer", `(?:end|ending|odometer end)[\s:]*([0-9,]+)`),
		def("total_miles", `(?:total miles|miles driven|mileage)[\s:]*([0-9,]+)`),
		def("origin", `(?:origin|from|start location)[\s:]*([A-Za-z\s,]+)`),
		def("destination", `(?:destination|to|end location)[\s:]*([A-Za-z\s,]+)`),
		def("fuel_stops", `(?:fuel stops|stops)[\s:]*([0-9]+)`),
		def("states_crossed", `(?:states|states crossed)[\s:]*([A-Z,\s]+)`),
	},
	domain.TypeFreightInvoice: {
		def("pro_number", `(?:pro|pro no|pro#)[\s#:\.]*([A-Z0-9\-]+)`),
		def("invoice_number", `invoice[\s#:no\.]*([A-Z0-9\-]+)`),
		def("order_number", `(?:order|load|ref)[\s#:no\.]*([A-Z0-9\-]+)`),
		def("invoice_date", `(?:invoice date|date)[\s:]*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`),
		def("carrier_name", `(?:carrier|carrier name)[\s:]*([A-Za-z\s,\.&]+)`),
		def("origin", `(?:origin|from)[\s:]*([A-Za-z\s,]+)`),
		def("destination", `(?:destination|to)[\s:]*([A-Za-z\s,]+)`),
		def("linehaul", `(?:linehaul|line haul)[\s:]*\$?\s*([0-9,\.]+)`),
		def("fuel_surcharge", `(?:fuel surcharge|fsc)[\s:]*\$?\s*([0-9,\.]+)`),
		def("accessorial", `(?:accessorial|accessorial charges)[\s:]*\$?\s*([0-9,\.]+)`),
		def("total_charges", `(?:total|total charges|amount due)[\s:]*\$?\s*([0-9,\.]+)`),
		def("payment_due", `(?:due date|payment due|pay by)[\s:]*(\d{1,2}[\/\-]\d{1,2}[\/\-]\d{2,4})`),
	},
}
