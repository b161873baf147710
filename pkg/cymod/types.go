package cymod

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all parameters needed for a load operation.
// All fields are enumerated up front and validated eagerly before the
// pipeline starts; nothing is read lazily mid-load.
type Config struct {
	// URI is the full bolt/neo4j connection URI (e.g. "bolt://db:7687").
	// When empty, a URI is assembled from Host and Port.
	URI string

	// Host is the Neo4j server hostname. Ignored when URI is set.
	Host string

	// Port is the bolt port. Zero means DefaultBoltPort. Ignored when URI is set.
	Port int

	// Username and Password authenticate against the server.
	Username string
	Password string

	// Database selects a named database on Neo4j 4+. Empty means the
	// server default.
	Database string

	// ClearExisting wipes the whole graph before the first batch.
	ClearExisting bool

	// ClearMatching deletes only nodes whose properties match the resolved
	// parameter set before the first batch. Mutually exclusive with
	// ClearExisting.
	ClearMatching bool

	// Force skips the interactive approval prompt for clear operations.
	Force bool

	// ParameterFilePath points at an optional parameter source
	// (.json, .yaml/.yml or .env). Empty means no external parameters.
	ParameterFilePath string

	// Parameters are additional key/value pairs merged over the parameter
	// file values (CLI --param flags land here).
	Parameters map[string]any

	// ProjectParameters are defaults from the project file, lowest
	// precedence: the parameter file and explicit Parameters both
	// override them.
	ProjectParameters map[string]any

	// Suffix restricts discovery to fragments whose filename stem ends
	// with this suffix (e.g. "_w" matches "model_w.cql"). Empty matches all.
	Suffix string

	// Timeout bounds the whole load. Zero means no timeout.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks that the Config has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *Config) Validate() error {
	var errs []error

	if c.URI == "" && c.Host == "" {
		errs = append(errs, fmt.Errorf("a connection URI or host is required: %w", ErrInvalidConfig))
	}

	if c.Username == "" {
		errs = append(errs, fmt.Errorf("Username is required: %w", ErrInvalidConfig))
	}

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range: %w", c.Port, ErrInvalidConfig))
	}

	if c.ClearExisting && c.ClearMatching {
		errs = append(errs, fmt.Errorf("clear-existing and clear-matching are mutually exclusive: %w", ErrInvalidConfig))
	}

	if c.Force && !c.ClearExisting && !c.ClearMatching {
		errs = append(errs, fmt.Errorf("force flag requires a clear mode to be enabled: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ResolvedURI returns the connection URI, assembling one from host and port
// when no explicit URI was configured.
func (c *Config) ResolvedURI() string {
	if c.URI != "" {
		return c.URI
	}
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	port := c.Port
	if port == 0 {
		port = DefaultBoltPort
	}
	return fmt.Sprintf("%s://%s:%d", DefaultBoltScheme, host, port)
}

// Target returns a short human-readable description of the load target,
// used in prompts and log lines.
func (c *Config) Target() string {
	if c.Database != "" {
		return fmt.Sprintf("%s/%s", c.ResolvedURI(), c.Database)
	}
	return c.ResolvedURI()
}

// Fragment is one discovered source file. Fragments are created at
// discovery time, are immutable, and are discarded after parsing.
type Fragment struct {
	// Path is the slash-separated path relative to the fragment root.
	// It is the fragment's unique key and determines commit order.
	Path string

	// AbsPath is the absolute filesystem path, kept for error messages.
	AbsPath string

	// Index is the discovery order position (0-based).
	Index int

	// RawText is the unprocessed file content.
	RawText string

	// Checksum is the SHA-256 of the comment- and whitespace-normalized
	// content, shown in plan listings so reruns can be compared.
	Checksum string
}

// StatementUnit is one executable Cypher statement extracted from a
// fragment. The text keeps its $name placeholders symbolic; Bindings
// carries the concrete values for the driver to apply at execution time.
type StatementUnit struct {
	FragmentPath string

	// Index is the statement's position within its fragment (0-based).
	Index int

	// Text is the executable statement with comments stripped and
	// placeholder markers preserved.
	Text string

	// StartLine and EndLine are 1-based line numbers in the original
	// fragment, used to report errors against the source.
	StartLine int
	EndLine   int

	// ParamRefs lists the referenced parameter names in first-use order,
	// without duplicates.
	ParamRefs []string

	// Bindings maps parameter name to resolved value. Populated by the
	// batch builder; nil until then.
	Bindings map[string]any
}

// Preview returns the statement text truncated for error messages.
func (s StatementUnit) Preview() string {
	if len(s.Text) <= MaxErrorPreviewLength {
		return s.Text
	}
	return s.Text[:MaxErrorPreviewLength] + "…"
}

// ParsedFragment is the parser's output for one fragment: its statements
// plus any fragment-local parameter defaults from a leading JSON header.
type ParsedFragment struct {
	Fragment   Fragment
	Statements []StatementUnit

	// HeaderParams are default parameter values declared in the optional
	// JSON header block at the top of the fragment. The external parameter
	// set overrides them.
	HeaderParams map[string]any
}

// Batch is an ordered group of statement units committed as one
// transaction. One fragment produces one batch.
type Batch struct {
	FragmentPath string

	// Checksum is the source fragment's normalized checksum, carried into
	// the plan so listings can be compared across runs.
	Checksum string

	// Index is the batch's position in commit order (0-based).
	Index int

	Statements []StatementUnit
}

// LoadPlan is the ready-to-commit output of the validation stages. It can
// be inspected before any irreversible change is made.
type LoadPlan struct {
	// Root is the fragment root directory the plan was built from.
	Root string

	// Batches are in commit order, one per fragment.
	Batches []Batch

	// Parameters is the resolved global parameter set (file values merged
	// with explicit overrides). Shared read-only across all batches.
	Parameters map[string]any
}

// FragmentCount returns the number of batches (one per fragment).
func (p *LoadPlan) FragmentCount() int {
	return len(p.Batches)
}

// StatementCount returns the total number of statements across all batches.
func (p *LoadPlan) StatementCount() int {
	n := 0
	for _, b := range p.Batches {
		n += len(b.Statements)
	}
	return n
}

// LoadState tracks a load through its lifecycle. Done and Failed are
// terminal; there is no partial-success state.
type LoadState int

const (
	StateIdle LoadState = iota
	StateLocating
	StateParsing
	StateResolving
	StateBuilding
	StateCommitting
	StateDone
	StateFailed
)

// String returns a human-readable name for the state.
func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLocating:
		return "Locating"
	case StateParsing:
		return "Parsing"
	case StateResolving:
		return "Resolving"
	case StateBuilding:
		return "Building"
	case StateCommitting:
		return "Committing"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Terminal reports whether the state is final.
func (s LoadState) Terminal() bool {
	return s == StateDone || s == StateFailed
}
