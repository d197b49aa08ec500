package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	opts := Default()
	if !opts.StrictFlattenPolicy {
		t.Error("expected StrictFlattenPolicy to default to true")
	}
	if opts.MaxErrors != 0 {
		t.Errorf("expected MaxErrors to default to 0 (unbounded), got %d", opts.MaxErrors)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hexen.yaml")
	if err := os.WriteFile(path, []byte("strictFlattenPolicy: false\nmaxErrors: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if opts.StrictFlattenPolicy {
		t.Error("expected strictFlattenPolicy: false to override the default")
	}
	if opts.MaxErrors != 50 {
		t.Errorf("expected maxErrors 50, got %d", opts.MaxErrors)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
