// Package manifest handles autogen.toml generator configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents an autogen.toml configuration.
type Manifest struct {
	Catalog Catalog `toml:"catalog"`
	Output  Output  `toml:"output"`
	Filter  Filter  `toml:"filter"`

	// Dir is the directory containing the autogen.toml file (set at load time).
	Dir string `toml:"-"`
}

// Catalog locates the function catalog to generate from.
type Catalog struct {
	Desc string `toml:"desc"`
}

// Output configures the three generated artifacts.
type Output struct {
	Dir      string `toml:"dir"`
	Gen      string `toml:"gen"`
	Instance string `toml:"instance"`
	Decl     string `toml:"decl"`
}

// Filter extends the built-in deny-list of functions never translated.
type Filter struct {
	Blacklist []string `toml:"blacklist"`
}

// Load parses an autogen.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "autogen.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	m.applyDefaults()
	return &m, nil
}

// FindAndLoad walks up from startDir to find an autogen.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "autogen.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Default returns the configuration used when no autogen.toml exists.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Catalog.Desc == "" {
		m.Catalog.Desc = "pari.desc"
	}
	if m.Output.Dir == "" {
		m.Output.Dir = "cypari2"
	}
	if m.Output.Gen == "" {
		m.Output.Gen = "auto_gen.pxi"
	}
	if m.Output.Instance == "" {
		m.Output.Instance = "auto_instance.pxi"
	}
	if m.Output.Decl == "" {
		m.Output.Decl = "auto_paridecl.pxd"
	}
}

// GenPath returns the path of the Gen method file.
func (m *Manifest) GenPath() string { return filepath.Join(m.Output.Dir, m.Output.Gen) }

// InstancePath returns the path of the Pari method file.
func (m *Manifest) InstancePath() string { return filepath.Join(m.Output.Dir, m.Output.Instance) }

// DeclPath returns the path of the declaration file.
func (m *Manifest) DeclPath() string { return filepath.Join(m.Output.Dir, m.Output.Decl) }
