package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orosp/dpll/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	prefs, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("Load() on a missing file returned no error")
	}
	want := config.Default()
	if prefs != want {
		t.Fatalf("Load() on a missing file = %+v, want defaults %+v", prefs, want)
	}
}

func TestLoadMalformedYAMLReturnsDefaults(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(fn, []byte("json: [this is not a bool\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	prefs, err := config.Load(fn)
	if err == nil {
		t.Fatal("Load() on malformed YAML returned no error")
	}
	if prefs != config.Default() {
		t.Fatalf("Load() on malformed YAML = %+v, want defaults", prefs)
	}
}

func TestLoadParsesFields(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "config.yaml")
	body := "json: true\npretty: true\npollInterval: 500ms\n"
	if err := os.WriteFile(fn, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	prefs, err := config.Load(fn)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	want := config.Preferences{JSON: true, Pretty: true, PollInterval: 500 * time.Millisecond}
	if prefs != want {
		t.Fatalf("Load() = %+v, want %+v", prefs, want)
	}
}

func TestLoadDefaultsPollIntervalWhenOmitted(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(fn, []byte("json: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	prefs, err := config.Load(fn)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if prefs.PollInterval != time.Second {
		t.Fatalf("PollInterval = %v, want the 1s default", prefs.PollInterval)
	}
}
