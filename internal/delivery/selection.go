package delivery

import (
	"encoding/json"
	"fmt"

	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
)

// SelectionOptions carries the per-delivery toggles.
type SelectionOptions struct {
	Signature bool `json:"signature"`
}

// Selection is the single canonical choice handed to the order form: one date,
// exactly one time slot, the option toggles, and the pickup location when the
// shopper chose pickup. It is overwritten wholesale on every change.
type Selection struct {
	Date    string           `json:"date"`
	Time    []TimeSlot       `json:"time"`
	Options SelectionOptions `json:"options"`
	Pickup  *PickupLocation  `json:"pickup,omitempty"`
}

// FieldSink is the hidden order-form field the selection is published to.
// SetValue triggers the surrounding form's change handling, so writers must
// avoid redundant calls.
type FieldSink interface {
	Value() string
	SetValue(value string)
}

// Serializer publishes selections to the form field, skipping writes whose
// serialized value matches what the field already holds.
type Serializer struct {
	sink FieldSink
}

// NewSerializer wires the serializer to its form field.
func NewSerializer(sink FieldSink) (*Serializer, error) {
	if sink == nil {
		return nil, fmt.Errorf("field sink required")
	}
	return &Serializer{sink: sink}, nil
}

// Write serializes the selection into the field. It reports whether the field
// actually changed; an identical value is not rewritten, so no downstream
// change notification fires.
func (s *Serializer) Write(selection *Selection) (bool, error) {
	if selection == nil {
		return s.Clear(), nil
	}
	encoded, err := json.Marshal(selection)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serializing selection")
	}
	value := string(encoded)
	if s.sink.Value() == value {
		return false, nil
	}
	s.sink.SetValue(value)
	return true, nil
}

// Clear empties the field. An empty string signals "no selection" to the order
// form. Reports whether the field changed.
func (s *Serializer) Clear() bool {
	if s.sink.Value() == "" {
		return false
	}
	s.sink.SetValue("")
	return true
}

// Current decodes the selection currently held by the field.
func (s *Serializer) Current() (*Selection, bool) {
	raw := s.sink.Value()
	if raw == "" {
		return nil, false
	}
	var selection Selection
	if err := json.Unmarshal([]byte(raw), &selection); err != nil {
		return nil, false
	}
	return &selection, true
}

// FormField is an in-memory FieldSink. The change counter stands in for the
// order form's change notification.
type FormField struct {
	value    string
	changes  int
	onChange func(value string)
}

// NewFormField builds a form field; onChange may be nil.
func NewFormField(onChange func(value string)) *FormField {
	return &FormField{onChange: onChange}
}

// Value returns the current field value.
func (f *FormField) Value() string {
	return f.value
}

// SetValue stores the value and fires the change notification.
func (f *FormField) SetValue(value string) {
	f.value = value
	f.changes++
	if f.onChange != nil {
		f.onChange(value)
	}
}

// Changes returns how many change notifications have fired.
func (f *FormField) Changes() int {
	return f.changes
}
