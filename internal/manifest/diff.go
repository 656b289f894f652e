package manifest

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"
)

// DiffResult compares a stored manifest with the current tree.
type DiffResult struct {
	Added     []string
	Removed   []string
	Changed   []string
	Unchanged []string

	// Report is the rendered dyff report, empty when nothing changed.
	Report string
}

// IsEmpty returns true if there are no changes.
func (r *DiffResult) IsEmpty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// Summary returns a summary string of changes.
func (r *DiffResult) Summary() string {
	if r.IsEmpty() {
		return "No changes"
	}

	parts := make([]string, 0, 3)
	if len(r.Added) > 0 {
		parts = append(parts, fmt.Sprintf("%d added", len(r.Added)))
	}
	if len(r.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", len(r.Removed)))
	}
	if len(r.Changed) > 0 {
		parts = append(parts, fmt.Sprintf("%d changed", len(r.Changed)))
	}

	return strings.Join(parts, ", ")
}

// Diff compares the last written manifest against the current one. Modules
// are matched by name and source path, so a shadowed module and the module
// that replaced it are compared separately; a module changed when its
// content hash did.
func Diff(last, current *Manifest, useColor bool) (*DiffResult, error) {
	result := &DiffResult{}

	lastByKey := make(map[entryKey]Entry, len(last.Modules))
	for _, e := range last.Modules {
		lastByKey[keyOf(e)] = e
	}
	currentKeys := make(map[entryKey]struct{}, len(current.Modules))

	for _, e := range current.Modules {
		currentKeys[keyOf(e)] = struct{}{}
		prev, ok := lastByKey[keyOf(e)]
		switch {
		case !ok:
			result.Added = append(result.Added, e.Name)
		case prev.SHA256 != e.SHA256:
			result.Changed = append(result.Changed, e.Name)
		default:
			result.Unchanged = append(result.Unchanged, e.Name)
		}
	}
	for _, e := range last.Modules {
		if _, ok := currentKeys[keyOf(e)]; !ok {
			result.Removed = append(result.Removed, e.Name)
		}
	}

	if result.IsEmpty() {
		return result, nil
	}

	report, err := renderReport(last, current, useColor)
	if err != nil {
		return nil, err
	}
	result.Report = report

	return result, nil
}

type entryKey struct {
	name string
	path string
}

func keyOf(e Entry) entryKey {
	return entryKey{name: e.Name, path: e.Path}
}

func renderReport(last, current *Manifest, useColor bool) (string, error) {
	lastInput, err := toInput("last build", last)
	if err != nil {
		return "", err
	}
	currentInput, err := toInput("working tree", current)
	if err != nil {
		return "", err
	}

	report, err := dyff.CompareInputFiles(lastInput, currentInput)
	if err != nil {
		return "", fmt.Errorf("comparing manifests: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func toInput(location string, m *Manifest) (ytbx.InputFile, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return ytbx.InputFile{}, fmt.Errorf("encoding %s manifest: %w", location, err)
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, fmt.Errorf("parsing %s manifest: %w", location, err)
	}

	return ytbx.InputFile{
		Location:  location,
		Documents: docs,
	}, nil
}
