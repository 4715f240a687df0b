package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestT verifies lookup, English fallback and key fallback.
func TestT(t *testing.T) {
	t.Run("KnownLang", func(t *testing.T) {
		assert.Equal(t, "Please enter your city", T("error.city", "en"))
		assert.Equal(t, "يرجى إدخال المدينة", T("error.city", "ar"))
	})

	t.Run("UnknownLangFallsBackToEnglish", func(t *testing.T) {
		assert.Equal(t, "Please enter your city", T("error.city", "fr"))
	})

	t.Run("UnknownKeyFallsBackToKey", func(t *testing.T) {
		assert.Equal(t, "error.does_not_exist", T("error.does_not_exist", "en"))
	})
}
