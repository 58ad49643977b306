package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuantity(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		stock int
	}{
		{"more than ten", ">10", 100},
		{"single unit maps to zero", "1", 0},
		{"plain number", "7", 7},
		{"zero", "0", 0},
		{"two digits", "10", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stock, err := NormalizeQuantity(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.stock, stock)
		})
	}
}

func TestNormalizeQuantity_Malformed(t *testing.T) {
	for _, raw := range []string{"", "много", "1.5", ">5"} {
		t.Run(raw, func(t *testing.T) {
			_, err := NormalizeQuantity(raw)
			require.Error(t, err)

			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, "quantity", formatErr.Kind)
			assert.Equal(t, raw, formatErr.Raw)
		})
	}
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		price string
	}{
		{"currency and separators", "1 234.56 ₽", "1234"},
		{"plain digits", "999", "999"},
		{"apostrophe thousands", "5'990.00 руб.", "5990"},
		{"decimal part dropped", "500.00", "500"},
		{"non-breaking space", "12 990.00", "12990"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := NormalizePrice(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.price, price)
		})
	}
}

func TestNormalizePrice_Malformed(t *testing.T) {
	for _, raw := range []string{"", "руб.", ".56"} {
		t.Run(raw, func(t *testing.T) {
			_, err := NormalizePrice(raw)
			require.Error(t, err)

			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, "price", formatErr.Kind)
		})
	}
}
