package utils

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// maxMinorUnitDigits is the digit count of math.MaxInt64.
const maxMinorUnitDigits = 19

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

// AmountPrecision is the number of fractional digits shown for box balances.
const AmountPrecision = 2

// FormatAmount formats an optional amount with exactly two fractional digits.
// Example: absent returns "0.00", 12.5 returns "12.50", 3 returns "3.00", 2.345 returns "2.35"
func FormatAmount(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return FormatWithPrecision(decimal.Zero, AmountPrecision)
	}
	return FormatWithPrecision(amount.Decimal, AmountPrecision)
}

// FormatWithPrecision formats an amount with the given number of fractional digits,
// rounding half away from zero and padding with zeros.
// Example: amount 12.3456 with precision 2 returns "12.35"
// Example: amount 12 with precision 2 returns "12.00"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// DisplayAmount formats an optional amount with the symbol and separators of
// currencyCode, e.g. "R$12,50" for BRL or "$12.50" for USD.
// Unknown currency codes and amounts whose minor units do not fit in an int64
// fall back to FormatAmount.
func DisplayAmount(amount decimal.NullDecimal, currencyCode string) string {
	currency := money.New(0, currencyCode).Currency()
	if currency == nil || currency.Grapheme == "" {
		return FormatAmount(amount)
	}
	value := decimal.Zero
	if amount.Valid {
		value = amount.Decimal
	}
	minor := value.Shift(int32(currency.Fraction))
	// Digit count is checked before any comparison that would expand the exponent.
	if minor.NumDigits()+int(minor.Exponent()) > maxMinorUnitDigits {
		return FormatAmount(amount)
	}
	minor = minor.Round(0)
	if minor.GreaterThan(maxMinorUnits) || minor.LessThan(minMinorUnits) {
		return FormatAmount(amount)
	}
	return money.New(minor.IntPart(), currency.Code).Display()
}
