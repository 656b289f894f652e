// Package manifest records which modules a bundle registered.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/obsi2/bundler/internal/bundle"
	oerrors "github.com/obsi2/bundler/internal/errors"
)

// Manifest lists a bundle's modules in emission order.
type Manifest struct {
	Namespace string  `json:"namespace"`
	Entry     string  `json:"entry"`
	Modules   []Entry `json:"modules"`
}

// Entry is one registered module.
type Entry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	SHA256   string `json:"sha256"`
	Shadowed bool   `json:"shadowed,omitempty"`
}

// FromRegistered builds a manifest for modules registered under namespace.
func FromRegistered(namespace string, mods []bundle.Registered) *Manifest {
	m := &Manifest{
		Namespace: namespace,
		Entry:     namespace,
		Modules:   make([]Entry, 0, len(mods)),
	}
	for _, r := range mods {
		m.Modules = append(m.Modules, Entry{
			Name:     r.Name,
			Path:     r.Path,
			Size:     r.Size,
			SHA256:   r.SHA256,
			Shadowed: r.Shadowed,
		})
	}
	return m
}

// PathFor returns the manifest path that sits next to a bundle:
// obsi2.lua -> obsi2.manifest.yaml.
func PathFor(bundlePath string) string {
	return strings.TrimSuffix(bundlePath, filepath.Ext(bundlePath)) + ".manifest.yaml"
}

// Write stores m at path, replacing any previous manifest.
func Write(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return oerrors.FromFS(err, "writing manifest", path)
	}
	return nil
}

// Read loads the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oerrors.FromFS(err, "reading manifest", path)
	}

	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return &m, nil
}
