package services

import (
	"context"

	"github.com/SscSPs/class_fund_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EditHandle hands a box to the presentation layer together with the ledger's
// edit operation, so new field values can be applied without the controller.
type EditHandle struct {
	Box  domain.Box
	Edit func(ctx context.Context, updated domain.Box) (replaced bool, err error)
}

// SelectionSvc tracks the box shown in detail view for each presentation session
// and formats amounts for display. Selections are never persisted.
type SelectionSvc interface {
	// Select sets the selected box of a session. A nil box clears the selection.
	Select(sessionID string, box *domain.Box)

	// Selected returns the selected box of a session.
	Selected(sessionID string) (domain.Box, bool)

	// State returns NoSelection or HasSelection for a session.
	State(sessionID string) domain.SelectionState

	// FormatAmount renders an amount with exactly two fractional digits, "0.00" when absent.
	FormatAmount(amount decimal.NullDecimal) string

	// DisplayAmount renders an amount with the configured currency symbol.
	DisplayAmount(amount decimal.NullDecimal) string

	// RequestEdit returns an edit handle for box bound to the ledger.
	RequestEdit(box domain.Box) EditHandle
}
