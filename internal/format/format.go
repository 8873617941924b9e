// Package format renders numbers for axis ticks and hover labels.
package format

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol prefixes currency values
const CurrencySymbol = "$"

// maxFractionDigits matches the precision of a default locale number format
const maxFractionDigits = 3

var printer = message.NewPrinter(language.English)

// Grouped formats v with English digit grouping and at most three
// fraction digits, e.g. 1234567.8912 -> "1,234,567.891".
func Grouped(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(maxFractionDigits)))
}

// Plain formats v in its shortest exact decimal form, e.g. 1234.5 -> "1234.5"
func Plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Currency prefixes the plain decimal form of v with the currency symbol
func Currency(v float64) string {
	return CurrencySymbol + Plain(v)
}
