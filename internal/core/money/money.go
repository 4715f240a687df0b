package money

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCurrency renders amount with the symbol of the given ISO 4217
// currency code, localized for lang. Unknown languages fall back to
// English, unknown currency codes to USD.
func FormatCurrency(amount float64, code, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}

	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(amount)))
}
