package models

import (
	"encoding/json"
	"fmt"
)

// Box is the stored record of a box inside the serialized collection.
// Field names are part of the persisted format and must not change.
type Box struct {
	ID      BoxID        `json:"id"`
	Name    string       `json:"name"`
	Balance *json.Number `json:"balance"` // Written as a JSON number, null when absent
}

// BoxID is a box identifier as stored. Older clients wrote numeric ids
// (e.g. millisecond timestamps), so both JSON strings and numbers are accepted.
type BoxID string

// UnmarshalJSON accepts a JSON string or a JSON number.
func (id *BoxID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = BoxID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("box id must be a string or a number, got %s", string(data))
	}
	*id = BoxID(n.String())
	return nil
}
