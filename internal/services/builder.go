package services

import (
	"github.com/alanecode/cymod/pkg/cymod"
)

// BatchBuilder turns parsed fragments into commit-ready batches, binding
// every placeholder to a concrete value. Resolution is eager: a single
// unresolved reference anywhere fails the whole build before any database
// connection is opened.
type BatchBuilder struct {
	logger cymod.Logger
}

// NewBatchBuilder creates a batch builder. Panics if logger is nil.
func NewBatchBuilder(logger cymod.Logger) *BatchBuilder {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &BatchBuilder{logger: logger}
}

// Build produces one batch per fragment, in fragment order. globals are
// the resolved external parameters; they override header defaults of the
// same name. Bindings carry only the names a statement references.
func (b *BatchBuilder) Build(fragments []cymod.ParsedFragment, globals map[string]any) ([]cymod.Batch, error) {
	batches := make([]cymod.Batch, 0, len(fragments))

	for _, frag := range fragments {
		effective := effectiveParams(frag.HeaderParams, globals)

		statements := make([]cymod.StatementUnit, 0, len(frag.Statements))
		for _, stmt := range frag.Statements {
			bound := stmt
			if len(stmt.ParamRefs) > 0 {
				bound.Bindings = make(map[string]any, len(stmt.ParamRefs))
				for _, name := range stmt.ParamRefs {
					value, ok := effective[name]
					if !ok {
						return nil, &cymod.UnresolvedParameterError{
							FragmentPath:   frag.Fragment.Path,
							StatementIndex: stmt.Index,
							Name:           name,
						}
					}
					bound.Bindings[name] = value
				}
			}
			statements = append(statements, bound)
		}

		batches = append(batches, cymod.Batch{
			FragmentPath: frag.Fragment.Path,
			Checksum:     frag.Fragment.Checksum,
			Index:        len(batches),
			Statements:   statements,
		})
		b.logger.Verbose("built batch %d from %s (%d statements)",
			len(batches)-1, frag.Fragment.Path, len(statements))
	}

	return batches, nil
}

// effectiveParams overlays the external set on a fragment's header
// defaults. Returns the globals map unchanged when there are no defaults.
func effectiveParams(header, globals map[string]any) map[string]any {
	if len(header) == 0 {
		return globals
	}
	effective := make(map[string]any, len(header)+len(globals))
	for k, v := range header {
		effective[k] = v
	}
	for k, v := range globals {
		effective[k] = v
	}
	return effective
}
