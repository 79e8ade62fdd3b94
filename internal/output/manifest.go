package output

import (
	"fmt"
	"io"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Artifact describes one file produced by a pack run.
type Artifact struct {
	// Name is the logical artifact name (client, server, main, icon).
	Name string `yaml:"name"`

	// Path is the artifact location relative to the output root.
	Path string `yaml:"path"`

	// Size is the artifact size in bytes. Directories report the summed
	// size of their files.
	Size int64 `yaml:"size"`
}

// Manifest describes the artifacts of one pack run.
type Manifest struct {
	GeneratedAt time.Time  `yaml:"generatedAt"`
	Artifacts   []Artifact `yaml:"artifacts"`
}

// WriteManifest writes the manifest as YAML. Artifacts are sorted by path
// for deterministic output.
func WriteManifest(w io.Writer, m Manifest) error {
	sort.Slice(m.Artifacts, func(i, j int) bool {
		return m.Artifacts[i].Path < m.Artifacts[j].Path
	})

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	return encoder.Close()
}
