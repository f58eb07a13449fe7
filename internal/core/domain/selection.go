package domain

// SelectionState is the state of a presentation session's detail view.
type SelectionState string

const (
	NoSelection  SelectionState = "NO_SELECTION"
	HasSelection SelectionState = "HAS_SELECTION"
)
