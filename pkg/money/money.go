// Package money holds the integer minor-unit helpers shared by the pricing
// console and the customer-facing catalog. Amounts are stored as pence/cents
// so no floating point ever touches a price.
package money

import "github.com/shopspring/decimal"

var symbolsByCurrency = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
	"AED": "د.إ",
}

// Symbol returns the display symbol for a currency code, falling back to the
// raw code when the currency is not in the known set.
func Symbol(currencyCode string) string {
	if symbol, ok := symbolsByCurrency[currencyCode]; ok {
		return symbol
	}
	return currencyCode
}

// Format renders a minor-unit amount as a customer-facing string, e.g.
// Format(19900, "GBP") == "£199.00".
func Format(amountMinor int64, currencyCode string) string {
	return Symbol(currencyCode) + decimal.New(amountMinor, -2).StringFixed(2)
}

// PackTotal derives the stored total for an add-on pack pricing row. Every
// write path for pack pricing must call this instead of multiplying inline so
// the unit price and the total can never drift apart.
func PackTotal(pricePerInspectionMinor int64, inspectionQuantity int) int64 {
	return pricePerInspectionMinor * int64(inspectionQuantity)
}
