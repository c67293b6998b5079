// Package price renders whole-unit prices the way the marketing site shows
// them: Polish digit grouping followed by the currency symbol.
package price

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is appended to every formatted amount.
const Currency = "zł"

// minGrouped is the smallest magnitude that gets digit grouping. Polish
// leaves four-digit amounts ungrouped ("5000 zł").
const minGrouped = 10000

var printer = message.NewPrinter(language.Polish)

// Format renders an amount as e.g. "105 000 zł".
func Format(amount int64) string {
	if amount > -minGrouped && amount < minGrouped {
		return fmt.Sprintf("%d %s", amount, Currency)
	}
	return printer.Sprintf("%d %s", amount, Currency)
}

// FormatFrom renders a starting price for catalog cards, e.g. "od 60 000 zł".
func FormatFrom(amount int64) string {
	return "od " + Format(amount)
}
