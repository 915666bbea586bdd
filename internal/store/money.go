package store

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatMoney renders an amount with its currency symbol for tables and
// invoice output. Unknown currency codes fall back to "<amount> <code>".
func FormatMoney(code string, amount float64) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, code)
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", currency.NarrowSymbol(unit.Amount(amount)))
}
