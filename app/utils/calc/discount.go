package calc

import "github.com/shopspring/decimal"

// ComputeDiscount derives the integer percent-off from a list price and the
// current sale price. Nil means no discount: either price missing, or the
// list price is not strictly greater than the sale price. The percentage is
// floored, so 100 -> 80 yields 20 and 3 -> 2 yields 33.
func ComputeDiscount(wasPrice, price *decimal.Decimal) *int {
	if wasPrice == nil || price == nil {
		return nil
	}
	if wasPrice.LessThanOrEqual(*price) || wasPrice.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	percent := int(wasPrice.Sub(*price).Div(*wasPrice).Mul(decimal.NewFromInt(100)).IntPart())
	return &percent
}

// ParsePrice turns a form value into a price. Empty or unparseable input
// yields nil rather than an error, matching the optional price fields.
func ParsePrice(raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}
