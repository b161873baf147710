package cymod

import "context"

// Approver handles user interaction for approval workflows, particularly
// for the destructive clear-graph step that precedes a load in reset mode.
//
// Implementations:
//   - ForcedApprover: shows a countdown and automatically approves
//   - InteractiveApprover: prompts the user to confirm the clear
type Approver interface {
	// RequestApproval prompts for confirmation before clearing graph data.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - target: Description of the database about to be cleared
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, target string) (bool, error)
}
