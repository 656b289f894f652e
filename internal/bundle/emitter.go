package bundle

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	oerrors "github.com/obsi2/bundler/internal/errors"
	"github.com/obsi2/bundler/internal/output"
	"github.com/obsi2/bundler/internal/walker"
)

// Registered describes one module block written to a bundle.
type Registered struct {
	Name   string
	Path   string
	Size   int64
	SHA256 string

	// Shadowed is set when a later module registered the same name.
	Shadowed bool
}

// Writer streams registration blocks to an artifact.
type Writer struct {
	w      io.Writer
	policy DuplicatePolicy
	log    *log.Logger

	seen    map[string]int
	modules []Registered
	written int64
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer, policy DuplicatePolicy, logger *log.Logger) *Writer {
	if policy == "" {
		policy = DuplicateError
	}
	return &Writer{
		w:      w,
		policy: policy,
		log:    logger,
		seen:   make(map[string]int),
	}
}

// Add writes one registration block. A name that was already registered
// fails under DuplicateError before anything is written for it.
func (w *Writer) Add(m Module) error {
	if prev, ok := w.seen[m.Name]; ok {
		first := w.modules[prev].Path
		if w.policy == DuplicateError {
			return oerrors.NewDuplicateError(m.Name, first, m.Path)
		}
		w.log.Warn("module shadows earlier registration", "name", m.Name, "path", m.Path, "shadowed", first)
		w.modules[prev].Shadowed = true
	}

	if err := w.print(fmt.Sprintf("package.preload[%q] = function(...)\n", m.Name)); err != nil {
		return err
	}
	if err := w.write(m.Content); err != nil {
		return err
	}
	if len(m.Content) > 0 && m.Content[len(m.Content)-1] != '\n' {
		if err := w.print("\n"); err != nil {
			return err
		}
	}
	if err := w.print("end\n"); err != nil {
		return err
	}

	sum := sha256.Sum256(m.Content)
	w.seen[m.Name] = len(w.modules)
	w.modules = append(w.modules, Registered{
		Name:   m.Name,
		Path:   m.Path,
		Size:   int64(len(m.Content)),
		SHA256: hex.EncodeToString(sum[:]),
	})
	w.log.Debug("registered module", "name", m.Name, "path", m.Path)

	return nil
}

// Finish writes the statement that starts the bundled program by calling
// the namespace root's preload entry directly. It does not fail when the
// root was never registered.
func (w *Writer) Finish(namespace string) error {
	if _, ok := w.seen[namespace]; !ok {
		w.log.Warn("entry module was never registered; the bundle will fail at runtime", "name", namespace)
	}
	return w.print(fmt.Sprintf("return package.preload[%q]()\n", namespace))
}

// Modules returns the registered modules in emission order.
func (w *Writer) Modules() []Registered {
	return w.modules
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int64 {
	return w.written
}

func (w *Writer) print(s string) error {
	return w.write([]byte(s))
}

func (w *Writer) write(p []byte) error {
	n, err := w.w.Write(p)
	w.written += int64(n)
	if err != nil {
		return fmt.Errorf("writing bundle: %w", err)
	}
	return nil
}

// Emit writes the bundle for opts to path, truncating any previous content.
// The root is checked before the artifact is opened, so a missing root
// leaves the old artifact untouched. The handle is flushed and closed on
// every return path.
func Emit(path string, opts Options) (_ *Produced, err error) {
	if err := walker.CheckRoot(opts.Root); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, oerrors.FromFS(err, "opening bundle for write", path)
	}
	buf := bufio.NewWriter(f)
	defer func() {
		flushErr := buf.Flush()
		closeErr := f.Close()
		if err == nil {
			if cerr := errors.Join(flushErr, closeErr); cerr != nil {
				err = oerrors.FromFS(cerr, "closing bundle", path)
			}
		}
	}()

	w, err := assemble(buf, opts)
	if err != nil {
		return nil, err
	}

	return &Produced{
		path:      path,
		namespace: opts.Namespace,
		modules:   w.Modules(),
		size:      w.Written(),
	}, nil
}

// Plan runs the assembly without writing anything and returns the modules
// a bundle of the current tree would register.
func Plan(opts Options) ([]Registered, error) {
	w, err := assemble(io.Discard, opts)
	if err != nil {
		return nil, err
	}
	return w.Modules(), nil
}

func assemble(dst io.Writer, opts Options) (*Writer, error) {
	modLog := output.ModuleLogger(opts.Namespace)
	w := NewWriter(dst, opts.OnDuplicate, modLog)

	for m, err := range Modules(opts) {
		if err != nil {
			return nil, err
		}
		if err := w.Add(m); err != nil {
			return nil, err
		}
	}

	if err := w.Finish(opts.Namespace); err != nil {
		return nil, err
	}
	return w, nil
}
