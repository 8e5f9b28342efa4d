// Package currency converts between user-facing money text and integer minor units.
// Arithmetic stays in shopspring/decimal until the final truncation to cents;
// no floating point is involved.
package currency

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSymbol is used when no symbol is configured.
const DefaultSymbol = "$"

// maxParsableMinorUnits bounds parsed amounts well below int overflow.
const maxParsableMinorUnits = 1<<31 - 1

// maxIntegerDigits caps the whole-unit digits read from text; anything longer
// cannot fit maxParsableMinorUnits anyway.
const maxIntegerDigits = 12

// symbolPrefixes are stripped from the start of amount text, longest first.
var symbolPrefixes = []string{"R$", "US$", "$", "€", "£", "¥"}

var (
	// ErrInvalidAmount is returned for empty or non-numeric amount text.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrAmountTooLarge is returned when the amount does not fit in minor units.
	ErrAmountTooLarge = errors.New("amount too large")
)

var hundred = decimal.NewFromInt(100)

// ParseMinorUnits turns text such as "$1,234.56" or "12.8" into minor units.
// An optional sign and a leading currency symbol are accepted; grouping commas
// and spaces are ignored. The rest must be digits with at most one decimal
// point. Sub-cent digits are truncated and negative amounts clamp to zero.
func ParseMinorUnits(text string) (int, error) {
	s := strings.TrimSpace(text)

	negative := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = strings.TrimSpace(s[1:])
	}
	for _, prefix := range symbolPrefixes {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			s = strings.TrimSpace(rest)
			break
		}
	}

	whole, frac, err := splitDigits(s)
	if err != nil {
		return 0, err
	}
	if negative {
		return 0, nil
	}

	value, err := decimal.NewFromString(whole + "." + frac)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents := value.Mul(hundred).Truncate(0)
	if cents.GreaterThan(decimal.NewFromInt(maxParsableMinorUnits)) {
		return 0, ErrAmountTooLarge
	}
	return int(cents.IntPart()), nil
}

// splitDigits drops grouping characters and returns the whole and fractional
// digits, the latter cut to two places. Leading zeros of the whole part do not
// count toward maxIntegerDigits.
func splitDigits(s string) (whole, frac string, err error) {
	var b strings.Builder
	b.Grow(len(s))
	dots := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			dots++
			if dots > 1 {
				return "", "", ErrInvalidAmount
			}
			b.WriteRune(r)
		case r == ',' || r == ' ' || r == '\u00a0':
		default:
			return "", "", ErrInvalidAmount
		}
	}

	whole, frac, _ = strings.Cut(b.String(), ".")
	if whole == "" && frac == "" {
		return "", "", ErrInvalidAmount
	}
	whole = strings.TrimLeft(whole, "0")
	if len(whole) > maxIntegerDigits {
		return "", "", ErrAmountTooLarge
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		frac = frac[:2]
	}
	if frac == "" {
		frac = "0"
	}
	return whole, frac, nil
}

// FormatMinorUnits renders minor units as a plain amount with two decimals, e.g. "12.84".
func FormatMinorUnits(minorUnits int) string {
	return decimal.New(int64(minorUnits), -2).StringFixed(2)
}

// FormatCurrency renders minor units with a symbol and thousands separators, e.g. "$1,234.56".
func FormatCurrency(minorUnits int, symbol string) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}

	sign := ""
	if minorUnits < 0 {
		sign = "-"
		minorUnits = -minorUnits
	}

	plain := FormatMinorUnits(minorUnits)
	whole, frac, _ := strings.Cut(plain, ".")

	var b strings.Builder
	b.Grow(len(plain) + len(whole)/3 + len(symbol) + 1)
	b.WriteString(sign)
	b.WriteString(symbol)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
