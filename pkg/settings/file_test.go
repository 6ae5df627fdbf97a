package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileFlattensSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	content := `{
		"general": {"cutoff_time": "17:00:00", "dropoff_delay": 0},
		"pickup": {"active": "1", "fee": "0.50"},
		"version": "1.8.3"
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}

	if got, err := values.TimeOfDay("general/cutoff_time"); err != nil || got != "17:00" {
		t.Fatalf("expected normalized cutoff, got %q err %v", got, err)
	}
	if got, err := values.Bool("pickup/active"); err != nil || !got {
		t.Fatalf("expected pickup active, got %v err %v", got, err)
	}
	if got, err := values.String("version"); err != nil || got != "1.8.3" {
		t.Fatalf("expected top-level key kept, got %q err %v", got, err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for invalid json")
	}
}
