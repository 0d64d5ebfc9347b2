// # internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docwatch.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	content := `
[[pairs]]
code = "src/auth.go"
docs = "docs/auth.md"

[[pairs]]
code = "src/users.py"
docs = "docs/users.md"

[types.aliases]
MyID = "string"
Amount = "number"

[watch]
debounce = "1s"

[exclude]
files = ["*.gen.go"]

[baseline]
path = "custom/baseline.toml"

[history]
path = ".docwatch/history.db"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Pairs) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(cfg.Pairs))
	}
	if cfg.Pairs[0].Code != "src/auth.go" || cfg.Pairs[0].Docs != "docs/auth.md" {
		t.Errorf("Unexpected first pair: %+v", cfg.Pairs[0])
	}
	if cfg.Types.Aliases["MyID"] != "string" {
		t.Errorf("Unexpected aliases: %v", cfg.Types.Aliases)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Baseline.Path != "custom/baseline.toml" {
		t.Errorf("Unexpected baseline path: %s", cfg.Baseline.Path)
	}
	if cfg.History.Path != ".docwatch/history.db" {
		t.Errorf("Unexpected history path: %s", cfg.History.Path)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `[[pairs]]
code = "a.go"
docs = "a.md"
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Watch.Debounce != 300*time.Millisecond {
		t.Errorf("Expected default debounce 300ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Baseline.Path != ".docwatch/baseline.toml" {
		t.Errorf("Unexpected default baseline path: %s", cfg.Baseline.Path)
	}
	if !cfg.Alerts.Terminal {
		t.Error("Terminal alerts should default on")
	}
	if len(cfg.Exclude.Dirs) == 0 {
		t.Error("Expected default exclude dirs")
	}
}

func TestLoadExplicitTerminalOff(t *testing.T) {
	cfg, err := Load(writeConfig(t, `[alerts]
terminal = false
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Alerts.Terminal {
		t.Error("An explicit terminal = false must survive defaulting")
	}
}

func TestLoadError(t *testing.T) {
	if _, err := Load("nonexistent.toml"); err == nil {
		t.Error("Expected error for missing config")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	code := filepath.Join(dir, "a.go")
	docs := filepath.Join(dir, "a.md")
	os.WriteFile(code, []byte("package a"), 0o644)
	os.WriteFile(docs, []byte("# a"), 0o644)

	cfg := Default()
	cfg.Pairs = []Pair{{Code: code, Docs: docs}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed for existing files: %v", err)
	}

	cfg.Pairs = append(cfg.Pairs, Pair{Code: filepath.Join(dir, "missing.go"), Docs: docs})
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for a missing pair file")
	}
}
