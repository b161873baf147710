package cymod

import "context"

// Loader is the main interface for running a fragment load. Implementations
// run the validation pipeline (locate, parse, resolve, build) separately
// from the irreversible commit so a caller can inspect the plan in between.
type Loader interface {
	// Load runs discovery, parsing, parameter resolution and batch
	// building, and returns the ready-to-commit plan. No database
	// interaction happens here; any validation-stage error guarantees no
	// partial writes can result.
	Load(ctx context.Context, root string) (*LoadPlan, error)

	// Commit executes the already-built plan against the database, one
	// transaction per batch, in order, failing fast on the first batch
	// that does not commit.
	Commit(ctx context.Context) error
}
