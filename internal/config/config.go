// Package config loads the flare.toml manifest that carries workspace and
// analysis settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"flare/internal/driver"
)

// ManifestName is the file looked up from the start directory upward.
const ManifestName = "flare.toml"

// Manifest is a located, parsed flare.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest layout.
type Config struct {
	Workspace WorkspaceConfig `toml:"workspace"`
	Analysis  AnalysisConfig  `toml:"analysis"`
}

// WorkspaceConfig names the session.
type WorkspaceConfig struct {
	Name string `toml:"name"`
}

// AnalysisConfig holds the analysis switches. Pointers distinguish "absent"
// from "explicitly false" so defaults survive a partial manifest.
type AnalysisConfig struct {
	Syntax         *bool `toml:"syntax"`
	Semantic       *bool `toml:"semantic"`
	ScriptSemantic *bool `toml:"script_semantic"`
	MaxDiagnostics int   `toml:"max_diagnostics"`
}

// Options folds the manifest over the defaults.
func (c AnalysisConfig) Options() driver.Options {
	opts := driver.DefaultOptions()
	if c.Syntax != nil {
		opts.Syntax = *c.Syntax
	}
	if c.Semantic != nil {
		opts.Semantic = *c.Semantic
	}
	if c.ScriptSemantic != nil {
		opts.ScriptSemantic = *c.ScriptSemantic
	}
	return opts
}

// Find walks from startDir toward the filesystem root looking for
// flare.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the manifest. The second return is false when no
// manifest exists, which is not an error: callers fall back to defaults.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, false, err
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}
