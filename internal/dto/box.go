package dto

import (
	"time"

	"github.com/SscSPs/class_fund_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBoxRequest defines the data needed to create a new box.
// ID is optional; the server generates one when it is empty.
type CreateBoxRequest struct {
	ID      string           `json:"id" binding:"omitempty,max=128"`
	Name    string           `json:"name" binding:"required,max=200"`
	Balance *decimal.Decimal `json:"balance"` // Optional, null keeps the balance absent
}

// UpdateBoxRequest defines the data allowed for editing a box.
// The whole box is replaced: omitting balance stores it as absent.
type UpdateBoxRequest struct {
	Name    string           `json:"name" binding:"required,max=200"`
	Balance *decimal.Decimal `json:"balance"`
}

// BoxResponse defines the data returned for a box.
type BoxResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Balance          *decimal.Decimal `json:"balance"`          // Stored value, null when absent
	BalanceFormatted string           `json:"balanceFormatted"` // Two fractional digits, "0.00" when absent
	BalanceDisplay   string           `json:"balanceDisplay"`   // With currency symbol
}

// AmountFormatter renders balances for display.
type AmountFormatter interface {
	FormatAmount(amount decimal.NullDecimal) string
	DisplayAmount(amount decimal.NullDecimal) string
}

// EditBoxResponse is returned by box edits. Replaced is false when no box had the id.
type EditBoxResponse struct {
	Box      BoxResponse `json:"box"`
	Replaced bool        `json:"replaced"`
}

// UnsyncedMutationResponse is returned when a change was applied in memory but
// could not be persisted.
type UnsyncedMutationResponse struct {
	Error   string      `json:"error"`
	Warning string      `json:"warning"`
	Box     BoxResponse `json:"box"`
}

// SelectBoxRequest selects a box by id; a null boxID clears the selection.
type SelectBoxRequest struct {
	BoxID *string `json:"boxID"`
}

// SelectionResponse describes the detail view of the caller's session.
type SelectionResponse struct {
	State string       `json:"state"`
	Box   *BoxResponse `json:"box"`
}

// SyncStatusResponse exposes whether memory and storage may have diverged.
type SyncStatusResponse struct {
	Loaded       bool       `json:"loaded"`
	PendingSync  bool       `json:"pendingSync"`
	LastError    *string    `json:"lastError"`
	LastSyncedAt *time.Time `json:"lastSyncedAt"`
}

// ToDomainBox converts a create request to a domain Box
func (r CreateBoxRequest) ToDomainBox() domain.Box {
	return domain.Box{ID: r.ID, Name: r.Name, Balance: toNullDecimal(r.Balance)}
}

// ToDomainBox converts an update request for boxID to a domain Box
func (r UpdateBoxRequest) ToDomainBox(boxID string) domain.Box {
	return domain.Box{ID: boxID, Name: r.Name, Balance: toNullDecimal(r.Balance)}
}

// ToBoxResponse converts a domain.Box to BoxResponse DTO
func ToBoxResponse(box domain.Box, f AmountFormatter) BoxResponse {
	res := BoxResponse{
		ID:               box.ID,
		Name:             box.Name,
		BalanceFormatted: f.FormatAmount(box.Balance),
		BalanceDisplay:   f.DisplayAmount(box.Balance),
	}
	if box.Balance.Valid {
		balance := box.Balance.Decimal
		res.Balance = &balance
	}
	return res
}

// ToListBoxResponse converts a slice of domain.Box to BoxResponse DTOs, keeping order
func ToListBoxResponse(boxes []domain.Box, f AmountFormatter) []BoxResponse {
	res := make([]BoxResponse, len(boxes))
	for i, box := range boxes {
		res[i] = ToBoxResponse(box, f)
	}
	return res
}

// ToSyncStatusResponse converts a domain.SyncStatus to its DTO
func ToSyncStatusResponse(status domain.SyncStatus) SyncStatusResponse {
	res := SyncStatusResponse{
		Loaded:      status.Loaded,
		PendingSync: status.PendingSync,
	}
	if status.LastError != nil {
		msg := status.LastError.Error()
		res.LastError = &msg
	}
	if !status.LastSyncedAt.IsZero() {
		at := status.LastSyncedAt
		res.LastSyncedAt = &at
	}
	return res
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return domain.NewBalance(*d)
}
