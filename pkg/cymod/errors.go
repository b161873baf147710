package cymod

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := loader.Commit(ctx)
//	if errors.Is(err, cymod.ErrCommit) {
//	    // inspect the CommitError for the failing fragment
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotFound indicates the fragment root does not exist or is not a
	// directory.
	ErrNotFound = errors.New("fragment root not found")

	// ErrParse indicates malformed fragment syntax.
	ErrParse = errors.New("fragment parse failed")

	// ErrParamFile indicates a malformed parameter source.
	ErrParamFile = errors.New("parameter file invalid")

	// ErrUnresolvedParameter indicates a statement references a parameter
	// absent from the resolved set.
	ErrUnresolvedParameter = errors.New("unresolved parameter")

	// ErrCommit indicates a database-level execution failure.
	ErrCommit = errors.New("commit failed")

	// ErrApprovalDenied indicates the user denied the clear-graph approval.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrConnectionFailed indicates the graph database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrNoPlan indicates Commit was called before a successful Load.
	ErrNoPlan = errors.New("no load plan built")

	// ErrLoadFinished indicates the session already reached a terminal
	// state and cannot be reused for another load.
	ErrLoadFinished = errors.New("load session already finished")
)

// ParseError reports malformed fragment syntax with its location.
type ParseError struct {
	// Path is the fragment path relative to the root.
	Path string

	// StartLine and EndLine bound the offending region (1-based).
	StartLine int
	EndLine   int

	// Msg describes what is malformed.
	Msg string
}

func (e *ParseError) Error() string {
	if e.StartLine == e.EndLine {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.StartLine, e.Msg)
	}
	return fmt.Sprintf("%s:%d-%d: %s", e.Path, e.StartLine, e.EndLine, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// ParamFileError reports a malformed or unreadable parameter source.
type ParamFileError struct {
	Path string
	Err  error
}

func (e *ParamFileError) Error() string {
	return fmt.Sprintf("parameter file %s: %v", e.Path, e.Err)
}

func (e *ParamFileError) Unwrap() []error { return []error{ErrParamFile, e.Err} }

// UnresolvedParameterError reports a statement referencing a parameter that
// is absent from the resolved set. It is raised eagerly, before any
// database connection is opened.
type UnresolvedParameterError struct {
	FragmentPath   string
	StatementIndex int
	Name           string
}

func (e *UnresolvedParameterError) Error() string {
	return fmt.Sprintf("%s: statement %d references parameter %q which is not defined in the fragment header, parameter file or explicit parameters",
		e.FragmentPath, e.StatementIndex, e.Name)
}

func (e *UnresolvedParameterError) Unwrap() error { return ErrUnresolvedParameter }

// CommitError reports a database-level execution failure during commit.
// Batches before BatchesCommitted remain committed; later batches were
// never attempted.
type CommitError struct {
	FragmentPath string

	// StatementIndex is the failing statement within the batch, or -1 when
	// the transaction commit itself failed after all statements ran.
	StatementIndex int

	// BatchesCommitted is how many batches were durably committed before
	// the failure.
	BatchesCommitted int

	Err error
}

func (e *CommitError) Error() string {
	if e.StatementIndex < 0 {
		return fmt.Sprintf("%s: transaction commit failed after %d batch(es) committed: %v",
			e.FragmentPath, e.BatchesCommitted, e.Err)
	}
	return fmt.Sprintf("%s: statement %d failed after %d batch(es) committed: %v",
		e.FragmentPath, e.StatementIndex, e.BatchesCommitted, e.Err)
}

func (e *CommitError) Unwrap() []error { return []error{ErrCommit, e.Err} }

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrParse):
		return ExitParseError
	case errors.Is(err, ErrParamFile), errors.Is(err, ErrUnresolvedParameter):
		return ExitParamError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrCommit):
		return ExitCommitFailed
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	}

	// cobra reports flag and argument misuse as plain errors; classify
	// them by message so scripts can tell misuse from real failures.
	msg := err.Error()
	if strings.Contains(msg, "unknown flag") ||
		strings.Contains(msg, "unknown shorthand flag") ||
		strings.Contains(msg, "unknown command") ||
		strings.Contains(msg, "invalid argument") ||
		strings.Contains(msg, "required flag") ||
		strings.Contains(msg, "arg(s), received") ||
		strings.Contains(msg, "missing required argument") {
		return ExitUsageError
	}

	return ExitGeneralError
}
