// Package license appends license texts to bundle artifacts.
package license

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/obsi2/bundler/internal/bundle"
	oerrors "github.com/obsi2/bundler/internal/errors"
)

// Section is one license text and the subject it covers.
type Section struct {
	// Title names the licensed subject in the section header.
	Title string

	// Path is the license source file.
	Path string
}

// Render wraps text in the section header and closing marker. The text is
// not modified; the closing marker always starts on its own line.
func Render(title string, text []byte) []byte {
	out := make([]byte, 0, len(text)+len(title)+32)
	out = fmt.Appendf(out, "--[==[ %s license\n", title)
	out = append(out, text...)
	if len(text) > 0 && text[len(text)-1] != '\n' {
		out = append(out, '\n')
	}
	return append(out, "]==]\n"...)
}

// Aggregator appends a fixed, ordered list of license sections.
type Aggregator struct {
	sections []Section
	log      *log.Logger
}

// NewAggregator returns an Aggregator for sections, in order.
func NewAggregator(sections []Section, logger *log.Logger) *Aggregator {
	return &Aggregator{sections: sections, log: logger}
}

// Append appends every section to the produced bundle and to each extra
// target, creating extra targets that do not exist yet. Sections are
// appended one at a time: when a source cannot be read, sections already
// appended stay on the artifacts. It returns the number of sections
// appended.
func (a *Aggregator) Append(produced *bundle.Produced, extra ...string) (n int, err error) {
	targets := make([]io.Writer, 0, len(extra)+1)
	var files []*os.File
	defer func() {
		var closeErrs []error
		for _, f := range files {
			closeErrs = append(closeErrs, f.Close())
		}
		if cerr := errors.Join(closeErrs...); cerr != nil && err == nil {
			err = fmt.Errorf("closing license targets: %w", cerr)
		}
	}()

	f, err := os.OpenFile(produced.Path(), os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return 0, oerrors.FromFS(err, "opening bundle for append", produced.Path())
	}
	files = append(files, f)
	targets = append(targets, f)

	for _, path := range extra {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return 0, oerrors.FromFS(err, "opening license target", path)
		}
		files = append(files, f)
		targets = append(targets, f)
	}

	for _, s := range a.sections {
		text, err := os.ReadFile(s.Path)
		if err != nil {
			return n, oerrors.FromFS(err, fmt.Sprintf("reading %s license", s.Title), s.Path)
		}

		block := Render(s.Title, text)
		for i, w := range targets {
			if _, err := w.Write(block); err != nil {
				return n, oerrors.FromFS(err, "appending license", files[i].Name())
			}
		}

		a.log.Debug("appended license", "title", s.Title, "source", s.Path, "targets", len(targets))
		n++
	}

	return n, nil
}
