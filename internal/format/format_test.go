package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		locale string
		amount float64
		want   string
	}{
		{"en-US", 1234.5, "EUR 1,234.50"},
		{"de-DE", 1234.5, "EUR 1.234,50"},
		{"en-GB", 0, "EUR 0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			got, err := Currency(tt.amount, "EUR", tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrency_RejectsBadInput(t *testing.T) {
	_, err := Currency(1, "EURO", "en-US")
	assert.Error(t, err)

	_, err = Currency(1, "EUR", "not a locale!")
	assert.Error(t, err)
}

func TestQuantity(t *testing.T) {
	got, err := Quantity(32.13, "m2", "en-US")
	require.NoError(t, err)
	assert.Equal(t, "32.13 m²", got)

	got, err = Quantity(1234, "m", "de-DE")
	require.NoError(t, err)
	assert.Equal(t, "1.234,00 m", got)
}

func TestPercent(t *testing.T) {
	f, err := New("en-US")
	require.NoError(t, err)
	assert.Equal(t, "21%", f.Percent(0.21))
}
