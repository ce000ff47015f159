// Package buildspec reads the framework buildspec files that describe which
// DLC images a build job produces.
package buildspec

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Buildspec holds the top-level buildspec keys this tool cares about.
// Unknown keys (repository_info, images, context) are ignored.
type Buildspec struct {
	Framework    string `yaml:"framework"`
	Version      string `yaml:"version"`
	ShortVersion string `yaml:"short_version"`
	ArchType     string `yaml:"arch_type"`

	// AutopatchBuild is written both as a YAML bool and as the string "True".
	AutopatchBuild any `yaml:"autopatch_build"`
}

// Load reads and parses the buildspec at path.
func Load(path string) (*Buildspec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading buildspec: %w", err)
	}

	var bs Buildspec
	if err := yaml.Unmarshal(data, &bs); err != nil {
		return nil, fmt.Errorf("parsing buildspec %s: %w", path, err)
	}
	return &bs, nil
}

// Autopatch reports whether the buildspec is an autopatch build.
func (b *Buildspec) Autopatch() bool {
	switch v := b.AutopatchBuild.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

// AutopatchEnabled reports whether the buildspec at path is an autopatch
// build. An empty path means no buildspec is known and returns false.
func AutopatchEnabled(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	bs, err := Load(path)
	if err != nil {
		return false, err
	}
	return bs.Autopatch(), nil
}
