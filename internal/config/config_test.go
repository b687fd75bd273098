package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok || got != want {
		t.Fatalf("Find = %q, %v; want %q, true", got, ok, want)
	}
}

func TestFindMissingIsNotAnError(t *testing.T) {
	_, ok, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok {
		t.Fatalf("expected no manifest in an empty tree")
	}
}

func TestLoadParsesManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[workspace]
name = "acme"

[analysis]
semantic = false
max_diagnostics = 42
`)

	m, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("manifest not found")
	}
	if m.Config.Workspace.Name != "acme" {
		t.Fatalf("workspace name = %q", m.Config.Workspace.Name)
	}
	if m.Root != dir {
		t.Fatalf("Root = %q, want %q", m.Root, dir)
	}
	if m.Config.Analysis.MaxDiagnostics != 42 {
		t.Fatalf("max_diagnostics = %d", m.Config.Analysis.MaxDiagnostics)
	}

	opts := m.Config.Analysis.Options()
	if !opts.Syntax {
		t.Fatalf("absent syntax switch must keep the default")
	}
	if opts.Semantic {
		t.Fatalf("explicit semantic = false must stick")
	}
}

func TestLoadRejectsMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "not toml =")
	if _, _, err := Load(dir); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestOptionsDefaultsWhenAllAbsent(t *testing.T) {
	var cfg AnalysisConfig
	opts := cfg.Options()
	if !opts.Syntax || !opts.Semantic || opts.ScriptSemantic {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}
