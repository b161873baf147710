package cymod

import "context"

// GraphConnector establishes connections to a graph database. Alternate
// backends are supplied by implementing this capability interface rather
// than by subclassing a loader type.
type GraphConnector interface {
	// Connect opens a connection to the database and verifies it is
	// reachable. The returned connection must be closed by the caller.
	Connect(ctx context.Context) (GraphConnection, error)
}

// GraphConnection abstracts the query-execution protocol the commit engine
// consumes: explicit transactions plus single auto-committed statements for
// administrative operations.
//
// Thread-Safety: implementations are not required to support concurrent
// use; a LoadSession owns its connection exclusively.
type GraphConnection interface {
	// BeginTransaction opens an explicit write transaction.
	BeginTransaction(ctx context.Context) (GraphTransaction, error)

	// Run executes a single statement in its own transaction. Used for
	// administrative operations such as clearing the graph, which are
	// all-or-nothing by themselves.
	Run(ctx context.Context, cypher string, params map[string]any) error

	// Close releases the connection. Safe to call on every exit path.
	Close(ctx context.Context) error
}

// GraphTransaction is one open transaction. Every statement of a batch runs
// inside one transaction; they commit together or not at all.
type GraphTransaction interface {
	// Run executes one statement with its bound parameters.
	Run(ctx context.Context, cypher string, params map[string]any) error

	// Commit makes the transaction's effects durable.
	Commit(ctx context.Context) error

	// Rollback discards the transaction's effects.
	Rollback(ctx context.Context) error
}
