// Package format turns raw values into localized display strings. All
// functions are pure; locale and currency are fixed at construction.
package format

import (
	"strconv"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders numbers and prices for one locale.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// New creates a Formatter for the given locale and currency.
func New(tag language.Tag, unit currency.Unit) *Formatter {
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}
}

// Default renders for English with Korean won, matching the catalog's
// pricing currency.
func Default() *Formatter {
	return New(language.English, currency.KRW)
}

// Number renders a number with locale-appropriate digit grouping.
func (f *Formatter) Number(v float64) string {
	return f.printer.Sprint(number.Decimal(v))
}

// Price renders an amount in the formatter's currency, with symbol and
// grouping.
func (f *Formatter) Price(v float64) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(v)))
}

// Count renders an integer with digit grouping.
func (f *Formatter) Count(v int64) string {
	return f.printer.Sprint(number.Decimal(v))
}

// Truncate shortens text to maxLen runes, appending an ellipsis when it
// was cut.
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

// Itoa is a convenience wrapper kept for display call sites.
func Itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
