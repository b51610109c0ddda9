package entity

import (
	"encoding/json"
	"testing"

	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected Amount
		}{
			{"100.00", 10000},
			{"0.01", 1},
			{"0.10", 10},
			{"1", 100},
			{"1.5", 150},
			{"1000", 100000},
			{" 2500 ", 250000},
			{"10.", 1000},
			{".5", 50},
			{"0", 0},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				amount, err := ParseAmount(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, amount)
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			description string
		}{
			{"", "Empty string"},
			{"   ", "Whitespace only"},
			{"-1.00", "Negative amount"},
			{"+5", "Explicit sign"},
			{"1.234", "Too many decimal places"},
			{"abc", "Non-numeric"},
			{"12abc", "Trailing letters"},
			{"1,000.00", "Comma as thousands separator"},
			{"1.00.00", "Multiple decimal points"},
			{".", "Lone decimal point"},
			{"$100", "Currency symbol"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			})
		}
	})
}

func TestAmountFormatting(t *testing.T) {
	testCases := []struct {
		amount  Amount
		str     string
		decimal string
		whole   int64
	}{
		{100000, "1000.00", "1000", 1000},
		{1050, "10.50", "10.5", 10},
		{1, "0.01", "0.01", 0},
		{0, "0.00", "0", 0},
		{99999, "999.99", "999.99", 999},
	}

	for _, tc := range testCases {
		t.Run(tc.str, func(t *testing.T) {
			assert.Equal(t, tc.str, tc.amount.String())
			assert.Equal(t, tc.decimal, tc.amount.Decimal())
			assert.Equal(t, tc.whole, tc.amount.Whole())
		})
	}

	assert.Equal(t, Amount(50000), AmountFromWhole(500))
}

func TestAmountJSON(t *testing.T) {
	t.Run("Decodes numbers, strings and null", func(t *testing.T) {
		var bounds struct {
			Min Amount `json:"min"`
			Max Amount `json:"max"`
			Opt Amount `json:"opt"`
			Raw Amount `json:"raw"`
		}
		err := json.Unmarshal([]byte(`{"min":500,"max":"100000.00","opt":null,"raw":12.345}`), &bounds)
		require.NoError(t, err)

		assert.Equal(t, Amount(50000), bounds.Min)
		assert.Equal(t, Amount(10000000), bounds.Max)
		assert.Equal(t, Amount(0), bounds.Opt)
		assert.Equal(t, Amount(1234), bounds.Raw)
	})

	t.Run("Rejects garbage", func(t *testing.T) {
		var a Amount
		err := json.Unmarshal([]byte(`"lots"`), &a)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Encodes as a bare number", func(t *testing.T) {
		out, err := json.Marshal(map[string]Amount{"amount": 100000})
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":1000}`, string(out))
	})
}
