package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatCurrency verifies localized formatting and fallbacks.
func TestFormatCurrency(t *testing.T) {
	t.Run("USD", func(t *testing.T) {
		out := FormatCurrency(49.90, "USD", "en")
		assert.Contains(t, out, "$")
	})

	t.Run("UnknownCurrencyFallsBackToUSD", func(t *testing.T) {
		out := FormatCurrency(10, "NOPE", "en")
		assert.Contains(t, out, "$")
	})

	t.Run("UnknownLangDoesNotPanic", func(t *testing.T) {
		out := FormatCurrency(10, "EUR", "not-a-lang")
		assert.NotEmpty(t, out)
	})
}
