// Package money converts between the decimal amounts exchanged with
// clients (major units, e.g. "100.00" INR) and the int64 minor units
// (paise) the ledger stores.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// minorFactor is the number of minor units per major unit (paise per rupee).
var minorFactor = decimal.NewFromInt(100)

// ParseMajor parses a decimal string in major units into minor units.
// Fails on malformed input or sub-paisa precision. The sign is preserved;
// callers enforce positivity.
func ParseMajor(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	minor := d.Mul(minorFactor)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("amount %q has sub-paisa precision", s)
	}
	return minor.IntPart(), nil
}

// FormatMinor renders minor units as a major-unit decimal string
// with two places, e.g. 12345 -> "123.45".
func FormatMinor(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// ToMajor converts minor units to a decimal in major units.
func ToMajor(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// Convert applies an exchange rate to an amount in minor units and
// returns the result in the target currency's minor units, rounded
// half-up to the nearest unit.
func Convert(minor int64, rate decimal.Decimal) int64 {
	return ToMajor(minor).Mul(rate).Mul(minorFactor).Round(0).IntPart()
}
