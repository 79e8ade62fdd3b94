package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shellpack/cli/internal/output"
)

// manifestName is the artifact manifest file written into the output root.
const manifestName = "manifest.yaml"

// writeManifest records the produced artifacts in <outRoot>/manifest.yaml.
func writeManifest(outRoot string) error {
	entries, err := os.ReadDir(outRoot)
	if err != nil {
		return err
	}

	artifacts := make([]output.Artifact, 0, len(entries))
	for _, e := range entries {
		if e.Name() == manifestName {
			continue
		}

		size, err := entrySize(filepath.Join(outRoot, e.Name()), e.IsDir())
		if err != nil {
			return err
		}

		artifacts = append(artifacts, output.Artifact{
			Name: artifactName(e.Name()),
			Path: e.Name(),
			Size: size,
		})
	}

	f, err := os.Create(filepath.Join(outRoot, manifestName))
	if err != nil {
		return err
	}

	if err := output.WriteManifest(f, output.Manifest{
		GeneratedAt: time.Now().UTC(),
		Artifacts:   artifacts,
	}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// entrySize returns the file size, or the summed file sizes for a directory.
func entrySize(path string, isDir bool) (int64, error) {
	if !isDir {
		info, err := os.Stat(path)
		if err != nil {
			return 0, err
		}
		return info.Size(), nil
	}

	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// artifactName maps an output entry to its logical artifact name.
func artifactName(entry string) string {
	switch entry {
	case "public":
		return "client"
	case "server.js":
		return "server"
	case "main.js":
		return "main"
	default:
		return strings.TrimSuffix(entry, filepath.Ext(entry))
	}
}
