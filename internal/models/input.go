package models

import "encoding/json"

type CreateTaskInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Assignee    *string `json:"assignee"`
}

// UpdateTaskInput carries a partial update. Nil pointers mean "leave
// unchanged". Assignee needs a third state (explicit null clears it), so it
// uses OptionalString instead of a plain pointer.
type UpdateTaskInput struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *Status        `json:"status"`
	Assignee    OptionalString `json:"assignee"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil && !in.Assignee.Set
}

// MarshalJSON emits only the fields that are actually set, so an
// UpdateTaskInput round-trips without inventing an "assignee": null.
func (in UpdateTaskInput) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, 4)
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Assignee.Set {
		fields["assignee"] = in.Assignee.Value
	}
	return json.Marshal(fields)
}

// OptionalString distinguishes an omitted JSON field (Set false) from an
// explicit null (Set true, Value nil) and from a value (Set true, Value set).
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Opt wraps a concrete string value.
func Opt(v string) OptionalString {
	return OptionalString{Set: true, Value: &v}
}

// OptNull is an explicit null, used to clear the assignee.
func OptNull() OptionalString {
	return OptionalString{Set: true}
}
