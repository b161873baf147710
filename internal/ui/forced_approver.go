package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alanecode/cymod/pkg/cymod"
)

// ForcedApprover approves automatically after a visible countdown, giving
// the operator a last chance to interrupt a scripted clear with Ctrl-C.
type ForcedApprover struct {
	out       io.Writer
	countdown time.Duration
}

// NewForcedApprover creates an approver with the default countdown.
func NewForcedApprover() *ForcedApprover {
	return NewForcedApproverWith(os.Stderr, cymod.DefaultForceApprovalCountdown)
}

// NewForcedApproverWith creates an approver with an explicit output stream
// and countdown, used by tests. Panics if out is nil.
func NewForcedApproverWith(out io.Writer, countdown time.Duration) *ForcedApprover {
	if out == nil {
		panic("out cannot be nil")
	}
	return &ForcedApprover{out: out, countdown: countdown}
}

// RequestApproval counts down and then approves. Cancelling the context
// during the countdown denies.
func (a *ForcedApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	fmt.Fprintf(a.out, "Force mode: deleting existing data in %s.\n", target)

	remaining := a.countdown
	for remaining > 0 {
		step := time.Second
		if remaining < step {
			step = remaining
		}
		fmt.Fprintf(a.out, "Proceeding in %d... press Ctrl-C to abort\n", int(remaining.Seconds()+0.5))

		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out, "Aborted.")
			return false, ctx.Err()
		case <-time.After(step):
		}
		remaining -= step
	}

	return true, nil
}

// Verify ForcedApprover implements the interface at compile time
var _ cymod.Approver = (*ForcedApprover)(nil)
