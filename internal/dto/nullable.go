package dto

import (
	"bytes"
	"encoding/json"
)

// NullableString distinguishes an omitted field from an explicit null.
// Set is true whenever the key was present in the request body.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// Ptr returns the value when set, otherwise fallback.
func (n NullableString) Ptr(fallback *string) *string {
	if !n.Set {
		return fallback
	}
	return n.Value
}
