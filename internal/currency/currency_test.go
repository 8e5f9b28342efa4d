package currency

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		err      error
	}{
		{name: "plain amount", input: "12.84", expected: 1284},
		{name: "with symbol", input: "$4.28", expected: 428},
		{name: "with grouping", input: "$1,234.56", expected: 123456},
		{name: "surrounding spaces", input: "  999.99 ", expected: 99999},
		{name: "whole number", input: "5", expected: 500},
		{name: "one decimal", input: "0.5", expected: 50},
		{name: "sub-cent digits truncate", input: "1.239", expected: 123},
		{name: "negative clamps to zero", input: "-3.00", expected: 0},
		{name: "euro symbol", input: "€10.00", expected: 1000},
		{name: "zero", input: "0.00", expected: 0},
		{name: "empty", input: "", err: ErrInvalidAmount},
		{name: "only symbol", input: "$", err: ErrInvalidAmount},
		{name: "letters", input: "abc", err: ErrInvalidAmount},
		{name: "two dots", input: "1.2.3", err: ErrInvalidAmount},
		{name: "too large", input: "99999999999", err: ErrAmountTooLarge},
		{name: "too many integer digits", input: "1234567890123", err: ErrAmountTooLarge},
		{name: "leading zeros are not counted", input: "0000000000000001.00", expected: 100},
		{name: "long fraction truncates", input: "1." + strings.Repeat("9", 5000), expected: 199},
		{name: "leading dot", input: ".5", expected: 50},
		{name: "trailing dot", input: "7.", expected: 700},
		{name: "only dot", input: ".", err: ErrInvalidAmount},
		{name: "real symbol", input: "R$ 12.50", expected: 1250},
		{name: "sign before symbol", input: "-$3.00", expected: 0},
		{name: "plus sign", input: "+2.00", expected: 200},
		{name: "symbol inside digits", input: "1R2", err: ErrInvalidAmount},
		{name: "symbol after digits", input: "12$", err: ErrInvalidAmount},
		{name: "exponent", input: "1e3", err: ErrInvalidAmount},
		{name: "upper case exponent", input: "1E5", err: ErrInvalidAmount},
		{name: "huge exponent", input: "1e40000000", err: ErrInvalidAmount},
		{name: "sign in the middle", input: "1-2", err: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMinorUnits(tt.input)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseMinorUnits_HugeExponentReturnsQuickly(t *testing.T) {
	start := time.Now()
	_, err := ParseMinorUnits("1e" + strings.Repeat("9", 9))
	require.ErrorIs(t, err, ErrInvalidAmount)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestFormatMinorUnits(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{177, "1.77"},
		{1284, "12.84"},
		{99999, "999.99"},
		{-5, "-0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMinorUnits(tt.input))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		symbol   string
		expected string
	}{
		{name: "zero", input: 0, symbol: "$", expected: "$0.00"},
		{name: "below one thousand", input: 99999, symbol: "$", expected: "$999.99"},
		{name: "thousands", input: 123456, symbol: "$", expected: "$1,234.56"},
		{name: "millions", input: 123456789, symbol: "$", expected: "$1,234,567.89"},
		{name: "default symbol", input: 428, symbol: "", expected: "$4.28"},
		{name: "other symbol", input: 1000, symbol: "€", expected: "€10.00"},
		{name: "negative", input: -100, symbol: "$", expected: "-$1.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(tt.input, tt.symbol))
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, cents := range []int{1, 99, 100, 4280, 99999} {
		parsed, err := ParseMinorUnits(FormatCurrency(cents, "$"))
		require.NoError(t, err)
		assert.Equal(t, cents, parsed)
	}
}
