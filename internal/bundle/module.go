// Package bundle assembles module files into a single preload-table artifact.
package bundle

import (
	"iter"
	"os"
	"path/filepath"

	oerrors "github.com/obsi2/bundler/internal/errors"
	"github.com/obsi2/bundler/internal/namer"
	"github.com/obsi2/bundler/internal/walker"
)

// Module is one discovered source file.
type Module struct {
	// Path is relative to the tree root and slash-separated.
	Path string

	// Name is the dotted namespace name derived from Path.
	Name string

	// Content is the raw file content, copied verbatim into the bundle.
	Content []byte
}

// DuplicatePolicy decides what happens when two files map to one name.
type DuplicatePolicy string

const (
	// DuplicateError fails the pass on the second registration.
	DuplicateError DuplicatePolicy = "error"

	// DuplicateWarn logs a warning and lets the later registration win.
	DuplicateWarn DuplicatePolicy = "warn"
)

// Options describes a source tree and how to name its modules.
type Options struct {
	// Root is the directory to walk.
	Root string

	// Namespace is the namespace root prepended to every name. The bundle's
	// entry statement invokes its preload entry.
	Namespace string

	// Walk controls traversal.
	Walk walker.Options

	// OnDuplicate defaults to DuplicateError.
	OnDuplicate DuplicatePolicy
}

// Modules returns the tree's modules in walk order. Content is read one
// file at a time as the sequence advances.
func Modules(opts Options) iter.Seq2[Module, error] {
	return func(yield func(Module, error) bool) {
		for rel, err := range walker.Walk(opts.Root, opts.Walk) {
			if err != nil {
				yield(Module{}, err)
				return
			}

			full := filepath.Join(opts.Root, filepath.FromSlash(rel))
			content, err := os.ReadFile(full)
			if err != nil {
				yield(Module{}, oerrors.FromFS(err, "reading module", full))
				return
			}

			m := Module{
				Path:    rel,
				Name:    namer.Name(rel, opts.Namespace, opts.Walk.Extension),
				Content: content,
			}
			if !yield(m, nil) {
				return
			}
		}
	}
}
