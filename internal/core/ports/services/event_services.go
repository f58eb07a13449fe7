package services

import (
	"context"

	"github.com/SscSPs/class_fund_app/internal/core/domain"
)

// EventPublisher delivers box change notifications to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BoxEvent) error
	Close() error
}
