package enums

// QuotationActivityType labels entries in the append-only quotation log.
type QuotationActivityType string

const (
	QuotationActivityAssigned      QuotationActivityType = "assigned"
	QuotationActivityContacted     QuotationActivityType = "contacted"
	QuotationActivityQuoteCreated  QuotationActivityType = "quote_created"
	QuotationActivityStatusChanged QuotationActivityType = "status_changed"
)

var validQuotationActivityTypes = []QuotationActivityType{
	QuotationActivityAssigned,
	QuotationActivityContacted,
	QuotationActivityQuoteCreated,
	QuotationActivityStatusChanged,
}

// String implements fmt.Stringer.
func (q QuotationActivityType) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuotationActivityType.
func (q QuotationActivityType) IsValid() bool {
	for _, candidate := range validQuotationActivityTypes {
		if candidate == q {
			return true
		}
	}
	return false
}
