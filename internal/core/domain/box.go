package domain

import (
	"fmt"
	"sync"

	"github.com/SscSPs/class_fund_app/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Box represents a named sub-fund of the class fund with its current balance.
// Balance is nullable: a box may be stored without a balance and is displayed as zero.
type Box struct {
	ID      string              `json:"id" validate:"required"`   // Stable unique identifier, set by the creator
	Name    string              `json:"name" validate:"required"` // Display label, not unique
	Balance decimal.NullDecimal `json:"balance"`                  // Current balance, null when never set
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func boxValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Bounds on a box balance. Values outside them are rejected before they reach
// the ledger so that encoding and formatting stay proportional to the input.
const (
	MaxBalanceIntegerDigits  = 15
	MaxBalanceFractionDigits = 8
)

// Validate checks the required fields of the box and the range of its balance.
func (b Box) Validate() error {
	if err := boxValidator().Struct(b); err != nil {
		return fmt.Errorf("%w: invalid box: %s", apperrors.ErrValidation, err.Error())
	}
	if b.Balance.Valid {
		return CheckBalance(b.Balance.Decimal)
	}
	return nil
}

// CheckBalance rejects balances with more than MaxBalanceIntegerDigits integer
// digits or more than MaxBalanceFractionDigits fractional digits.
// Only the coefficient length and exponent are inspected, so exponent-form
// input such as 1e20000000 is rejected without expanding it.
func CheckBalance(d decimal.Decimal) error {
	exp := int64(d.Exponent())
	if exp < -MaxBalanceFractionDigits {
		return fmt.Errorf("%w: balance has more than %d fractional digits", apperrors.ErrValidation, MaxBalanceFractionDigits)
	}
	if int64(d.NumDigits())+exp > MaxBalanceIntegerDigits {
		return fmt.Errorf("%w: balance exceeds %d integer digits", apperrors.ErrValidation, MaxBalanceIntegerDigits)
	}
	return nil
}

// Equal reports whether two boxes carry the same id, name and balance.
// Balances are compared numerically, so 12.5 and 12.50 are equal.
func (b Box) Equal(other Box) bool {
	if b.ID != other.ID || b.Name != other.Name {
		return false
	}
	if b.Balance.Valid != other.Balance.Valid {
		return false
	}
	return !b.Balance.Valid || b.Balance.Decimal.Equal(other.Balance.Decimal)
}

// NewBalance returns a present balance for d.
func NewBalance(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}

// CloneBoxes returns a copy of boxes that shares no backing array with the input.
func CloneBoxes(boxes []Box) []Box {
	out := make([]Box, len(boxes))
	copy(out, boxes)
	return out
}
