// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("en"))

	assert.Equal(t, "Product not found", T("en", KeyProductNotFound))
	assert.Equal(t, "找不到品項", T("zh_TW", KeyProductNotFound))
	assert.Equal(t, "Invalid product ID", T("en", KeyValidationID, "product"))

	// unknown language falls back to the default
	assert.Equal(t, "Thawed batch not found", T("fr", KeyThawNotFound))
	// unknown key is returned as-is
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))

	assert.True(t, IsSupported("zh_TW"))
	assert.False(t, IsSupported("fr"))
	assert.ElementsMatch(t, []string{"en", "zh_TW"}, GetSupportedLanguages())
}
