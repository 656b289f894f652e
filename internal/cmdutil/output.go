package cmdutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/obsi2/bundler/internal/bundle"
	"github.com/obsi2/bundler/internal/config"
	oerrors "github.com/obsi2/bundler/internal/errors"
	"github.com/obsi2/bundler/internal/output"
)

// RequireConfig returns the loaded configuration after validating it
// against the schema. Validation failures are printed and returned as an
// *ExitError with Printed set.
func RequireConfig(gc *config.GlobalConfig) (*config.Config, error) {
	if gc == nil || gc.Config == nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("configuration not loaded")}
	}
	if gc.LoadErr != nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: gc.LoadErr}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("creating validator: %w", err)
	}
	if err := validator.Validate(gc.Config); err != nil {
		PrintValidationErrors(gc.ConfigPath, err)
		return nil, &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
	}

	return gc.Config, nil
}

// PrintValidationErrors logs each field error of a configuration
// validation failure.
func PrintValidationErrors(path string, err error) {
	var verrs config.ValidationErrors
	if !errors.As(err, &verrs) {
		output.Error("config validation failed", "file", path, "error", err)
		return
	}
	output.Error("config validation failed", "file", path)
	for _, e := range verrs {
		output.Error(fmt.Sprintf("  %s: %s", e.Field, e.Message))
	}
}

// WriteModuleLines logs one line per registered module, marking modules a
// later file replaced as shadowed.
func WriteModuleLines(logger *log.Logger, mods []bundle.Registered) {
	for _, m := range mods {
		status := output.StatusRegistered
		if m.Shadowed {
			status = output.StatusShadowed
		}
		logger.Info(output.FormatModuleLine(m.Name, status))
	}
}

// ModuleRows converts registered modules into listing rows.
func ModuleRows(mods []bundle.Registered) []output.ModuleRow {
	rows := make([]output.ModuleRow, 0, len(mods))
	for _, m := range mods {
		status := output.StatusRegistered
		if m.Shadowed {
			status = output.StatusShadowed
		}
		rows = append(rows, output.ModuleRow{Name: m.Name, Path: m.Path, Size: m.Size, Status: status})
	}
	return rows
}

// Fprintln writes a line to w, ignoring write errors on terminal output.
func Fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
