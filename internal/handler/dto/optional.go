package dto

import "encoding/json"

// OptionalString is a tri-state JSON string: absent, explicit null, or a
// value. PATCH bodies need the distinction so "leave unchanged" and "clear
// the field" do not collapse into one.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

// UnmarshalJSON records presence and nullability alongside the value.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
