package delivery

import (
	"testing"
)

func testSelection() *Selection {
	return &Selection{
		Date:    "2026-09-01",
		Time:    []TimeSlot{{Start: "09:00:00", End: "17:00:00", PriceComment: "standard"}},
		Options: SelectionOptions{Signature: true},
	}
}

func TestSerializerWritesSelection(t *testing.T) {
	field := NewFormField(nil)
	serializer, err := NewSerializer(field)
	if err != nil {
		t.Fatalf("new serializer: %v", err)
	}

	changed, err := serializer.Write(testSelection())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !changed {
		t.Fatal("expected first write to change the field")
	}
	if field.Changes() != 1 {
		t.Fatalf("expected one change notification, got %d", field.Changes())
	}

	current, ok := serializer.Current()
	if !ok {
		t.Fatal("expected current selection")
	}
	if current.Date != "2026-09-01" || !current.Options.Signature {
		t.Fatalf("round trip mismatch: %+v", current)
	}
}

func TestSerializerSkipsIdenticalWrite(t *testing.T) {
	field := NewFormField(nil)
	serializer, err := NewSerializer(field)
	if err != nil {
		t.Fatalf("new serializer: %v", err)
	}

	if _, err := serializer.Write(testSelection()); err != nil {
		t.Fatalf("first write: %v", err)
	}
	changed, err := serializer.Write(testSelection())
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if changed {
		t.Fatal("identical selection must not rewrite the field")
	}
	if field.Changes() != 1 {
		t.Fatalf("expected no second change notification, got %d", field.Changes())
	}
}

func TestSerializerClear(t *testing.T) {
	field := NewFormField(nil)
	serializer, err := NewSerializer(field)
	if err != nil {
		t.Fatalf("new serializer: %v", err)
	}

	if serializer.Clear() {
		t.Fatal("clearing an empty field must be a no-op")
	}
	if _, err := serializer.Write(testSelection()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !serializer.Clear() {
		t.Fatal("expected clear to change the field")
	}
	if field.Value() != "" {
		t.Fatalf("expected empty field, got %q", field.Value())
	}
	if _, ok := serializer.Current(); ok {
		t.Fatal("expected no current selection after clear")
	}
}

func TestSerializerNilSelectionClears(t *testing.T) {
	field := NewFormField(nil)
	serializer, err := NewSerializer(field)
	if err != nil {
		t.Fatalf("new serializer: %v", err)
	}

	if _, err := serializer.Write(testSelection()); err != nil {
		t.Fatalf("write: %v", err)
	}
	changed, err := serializer.Write(nil)
	if err != nil {
		t.Fatalf("nil write: %v", err)
	}
	if !changed {
		t.Fatal("expected nil write to clear the field")
	}
	if field.Value() != "" {
		t.Fatalf("expected empty field, got %q", field.Value())
	}
}

func TestNewSerializerRequiresSink(t *testing.T) {
	if _, err := NewSerializer(nil); err == nil {
		t.Fatal("expected error without field sink")
	}
}
