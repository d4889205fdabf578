package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var money = accounting.Accounting{Symbol: "KSh ", Precision: 2, Thousand: ",", Decimal: "."}

// Price renders a nullable product price for templates. Missing prices
// render as an empty string, not zero.
func Price(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return money.FormatMoneyDecimal(*d)
}
