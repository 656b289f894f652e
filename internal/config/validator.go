package config

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/obsi2/bundler/internal/errors"
)

//go:embed schema.cue
var schemaFS embed.FS

// configDefinition is the schema definition a config file must satisfy.
const configDefinition = "#Config"

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap lets errors.Is match ErrValidation.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schemaData, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	compiled := ctx.CompileBytes(schemaData, cue.Filename("schema.cue"))
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", compiled.Err())
	}

	schema := compiled.LookupPath(cue.ParsePath(configDefinition))
	if schema.Err() != nil {
		return nil, fmt.Errorf("looking up #Config: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate validates the given configuration.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	value := v.schema.Unify(v.ctx.Encode(cfg))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		seen := make(map[string]bool)
		for _, e := range cueerrors.Errors(err) {
			field := fieldPath(e.Path())
			// A failed disjunction reports once per branch; keep the first.
			if seen[field] {
				continue
			}
			seen[field] = true

			format, args := e.Msg()
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf(format, args...),
			})
		}
	}

	if cfg.Minified != "" && filepath.Clean(cfg.Minified) == filepath.Clean(cfg.Output) {
		errs = append(errs, ValidationError{
			Field:   "minified",
			Message: "must differ from output",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// fieldPath joins a CUE error path as a config key, dropping the schema
// definition that prefixes every path.
func fieldPath(path []string) string {
	if len(path) > 0 && path[0] == configDefinition {
		path = path[1:]
	}
	return strings.Join(path, ".")
}

// ValidateFile validates a configuration file at the given path.
func (v *Validator) ValidateFile(path string) error {
	loader := NewLoader()
	cfg, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return v.Validate(cfg)
}
