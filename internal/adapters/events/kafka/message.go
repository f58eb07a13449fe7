package kafka

import (
	"time"

	"github.com/SscSPs/class_fund_app/internal/core/domain"
)

// message is the wire form of a BoxEvent. Balance is a decimal string, or nil when absent.
type message struct {
	Type       string    `json:"type"`
	BoxID      string    `json:"boxID"`
	Name       string    `json:"name"`
	Balance    *string   `json:"balance"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newMessage(event domain.BoxEvent) message {
	m := message{
		Type:       string(event.Type),
		BoxID:      event.Box.ID,
		Name:       event.Box.Name,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.Box.Balance.Valid {
		balance := event.Box.Balance.Decimal.String()
		m.Balance = &balance
	}
	return m
}
