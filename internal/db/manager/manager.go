package manager

import (
	"context"
	"fmt"

	"github.com/alanecode/cymod/pkg/cymod"
)

const (
	clearAllQuery      = "MATCH (n) DETACH DELETE n"
	clearMatchingQuery = "MATCH (n) WHERE all(k IN keys($props) WHERE n[k] = $props[k]) DETACH DELETE n"
)

// GraphManager performs destructive maintenance operations against an
// established connection. Callers are responsible for obtaining approval
// before invoking anything here.
type GraphManager struct {
	logger cymod.Logger
}

// NewGraphManager creates a manager. Panics if logger is nil.
func NewGraphManager(logger cymod.Logger) *GraphManager {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &GraphManager{logger: logger}
}

// ClearAll detaches and deletes every node in the target database.
func (m *GraphManager) ClearAll(ctx context.Context, conn cymod.GraphConnection) error {
	m.logger.Verbose("clearing all existing graph data")
	if err := conn.Run(ctx, clearAllQuery, nil); err != nil {
		return fmt.Errorf("failed to clear graph: %w", err)
	}
	return nil
}

// ClearMatching detaches and deletes every node whose properties contain
// all of the given key/value pairs. The pairs travel as a bound parameter,
// never interpolated into the query text.
func (m *GraphManager) ClearMatching(ctx context.Context, conn cymod.GraphConnection, props map[string]any) error {
	if len(props) == 0 {
		return fmt.Errorf("refusing to clear with an empty property filter")
	}
	m.logger.Verbose("clearing graph data matching %d properties", len(props))
	if err := conn.Run(ctx, clearMatchingQuery, map[string]any{"props": props}); err != nil {
		return fmt.Errorf("failed to clear matching graph data: %w", err)
	}
	return nil
}
