// Package walker enumerates module source files under a tree root.
package walker

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	oerrors "github.com/obsi2/bundler/internal/errors"
	"github.com/obsi2/bundler/internal/output"
)

// Options controls which entries the walker yields.
type Options struct {
	// Extension is the recognized source-file extension, including the dot.
	Extension string

	// Excludes lists basenames that are never yielded or descended into.
	Excludes []string

	// HiddenPrefix marks hidden entries. Empty disables the check.
	HiddenPrefix string

	// FollowSymlinks descends into symlinked directories and yields
	// symlinked files. When false, symlinks are skipped entirely.
	FollowSymlinks bool

	// Sort orders each directory listing by name. When false, entries are
	// visited in the order the filesystem returns them.
	Sort bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Extension:      ".lua",
		Excludes:       []string{"node_modules"},
		HiddenPrefix:   ".",
		FollowSymlinks: true,
	}
}

// Walk returns a lazy pre-order depth-first sequence of source files under
// root. Paths are relative to root and slash-separated. Sub-directories are
// exhausted before the walk returns to their siblings.
//
// A missing root yields a single not-found error. Any other error is
// yielded once and ends the sequence. Each resolved directory is entered at
// most once, so symlink cycles terminate.
func Walk(root string, opts Options) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if err := CheckRoot(root); err != nil {
			yield("", err)
			return
		}

		w := &walker{
			root:    root,
			opts:    opts,
			visited: make(map[string]struct{}),
		}
		w.walkDir("", yield)
	}
}

// CheckRoot reports a not-found error unless root is an existing directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return oerrors.FromFS(err, "reading root directory", root)
	}
	if !info.IsDir() {
		return oerrors.NewNotFoundError(
			fmt.Sprintf("%s is not a directory", root), root,
			"point --root at the directory containing init.lua")
	}
	return nil
}

// Collect drains Walk into a slice, stopping at the first error.
func Collect(root string, opts Options) ([]string, error) {
	var paths []string
	for p, err := range Walk(root, opts) {
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

type walker struct {
	root    string
	opts    Options
	visited map[string]struct{}
}

// walkDir visits one directory. It returns false when the consumer stopped
// or an error was yielded.
func (w *walker) walkDir(rel string, yield func(string, error) bool) bool {
	dir := filepath.Join(w.root, filepath.FromSlash(rel))

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		yield("", oerrors.FromFS(err, "resolving directory", dir))
		return false
	}
	if _, seen := w.visited[resolved]; seen {
		output.Debug("directory already visited, skipping", "path", dir, "resolved", resolved)
		return true
	}
	w.visited[resolved] = struct{}{}

	entries, err := w.readDir(dir)
	if err != nil {
		yield("", oerrors.FromFS(err, "listing directory", dir))
		return false
	}

	for _, entry := range entries {
		name := entry.Name()
		if w.skip(name) {
			continue
		}

		childRel := path.Join(rel, name)
		isDir := entry.IsDir()

		if entry.Type()&fs.ModeSymlink != 0 {
			if !w.opts.FollowSymlinks {
				continue
			}
			target, err := os.Stat(filepath.Join(dir, name))
			if err != nil {
				yield("", oerrors.FromFS(err, "following symlink", filepath.Join(dir, name)))
				return false
			}
			isDir = target.IsDir()
		} else if !isDir && !entry.Type().IsRegular() {
			continue
		}

		if isDir {
			if !w.walkDir(childRel, yield) {
				return false
			}
			continue
		}

		if !strings.HasSuffix(name, w.opts.Extension) {
			continue
		}
		if !yield(childRel, nil) {
			return false
		}
	}

	return true
}

func (w *walker) skip(name string) bool {
	if w.opts.HiddenPrefix != "" && strings.HasPrefix(name, w.opts.HiddenPrefix) {
		return true
	}
	return slices.Contains(w.opts.Excludes, name)
}

// readDir lists dir in filesystem order. os.ReadDir is avoided because it
// always sorts.
func (w *walker) readDir(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	if w.opts.Sort {
		slices.SortFunc(entries, func(a, b fs.DirEntry) int {
			return strings.Compare(a.Name(), b.Name())
		})
	}
	return entries, nil
}
