package domain

import "time"

// BoxEventType names the mutation that produced a BoxEvent.
type BoxEventType string

const (
	BoxAdded  BoxEventType = "box.added"
	BoxEdited BoxEventType = "box.edited"
)

// BoxEvent is emitted after a mutation has been persisted.
type BoxEvent struct {
	Type       BoxEventType `json:"type"`
	Box        Box          `json:"box"`
	OccurredAt time.Time    `json:"occurredAt"`
}
