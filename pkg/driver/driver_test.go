package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mysorescript/pkg/rt"
)

func TestLoadConfigMissingFileUsesDefault(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != "" {
		t.Errorf("default config should disable the backend, got %q", cfg.Backend)
	}
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mysorescript.yml")
	if err := os.WriteFile(path, []byte("backend: nonsense\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for unknown backend")
	}
}

func TestLoadConfigNegativeThresholdRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mysorescript.yml")
	if err := os.WriteFile(path, []byte("compile_threshold: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for negative threshold")
	}
}

func TestRunFileInterpretsSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "program.mys")
	if err := os.WriteFile(path, []byte("var r = 2 + 3;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errBuf bytes.Buffer
	s := NewSession(DefaultConfig(), &out, &errBuf)
	if err := RunFile(s, path); err != nil {
		t.Fatal(err)
	}
	v, err := s.Context().Lookup("r")
	if err != nil {
		t.Fatal(err)
	}
	if got := rt.Unbox(v); got != 5 {
		t.Errorf("r = %d, want 5", got)
	}
}

func TestRunREPLPersistsGlobalsAcrossPrompts(t *testing.T) {
	var out, errBuf bytes.Buffer
	s := NewSession(DefaultConfig(), &out, &errBuf)

	in := strings.NewReader("var x = 41;\nx = x + 1;\n\n")
	if err := RunREPL(s, in, "> "); err != nil {
		t.Fatal(err)
	}

	v, err := s.Context().Lookup("x")
	if err != nil {
		t.Fatal(err)
	}
	if got := rt.Unbox(v); got != 42 {
		t.Errorf("x = %d, want 42", got)
	}
}

func TestRunREPLFatalErrorOnlyAbortsCurrentBatch(t *testing.T) {
	var out, errBuf bytes.Buffer
	s := NewSession(DefaultConfig(), &out, &errBuf)

	in := strings.NewReader("var y = nope;\nvar z = 1;\n\n")
	if err := RunREPL(s, in, "> "); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Context().Lookup("z"); err != nil {
		t.Fatalf("second batch should have run despite the first batch's error: %v", err)
	}
	if errBuf.Len() == 0 {
		t.Error("expected the first batch's error to be reported on stderr")
	}
}
