package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alanecode/cymod/pkg/cymod"
)

// confirmationWord must be typed exactly to approve a destructive clear.
const confirmationWord = "clear"

// InteractiveApprover asks the user to confirm a destructive clear by
// typing a confirmation word. Anything else denies.
type InteractiveApprover struct {
	in  io.Reader
	out io.Writer
}

// NewInteractiveApprover creates an approver reading from stdin and
// writing to stderr.
func NewInteractiveApprover() *InteractiveApprover {
	return NewInteractiveApproverIO(os.Stdin, os.Stderr)
}

// NewInteractiveApproverIO creates an approver with explicit streams.
// Panics if in or out is nil.
func NewInteractiveApproverIO(in io.Reader, out io.Writer) *InteractiveApprover {
	if in == nil {
		panic("in cannot be nil")
	}
	if out == nil {
		panic("out cannot be nil")
	}
	return &InteractiveApprover{in: in, out: out}
}

// RequestApproval prompts for the confirmation word. Approval requires an
// exact match; an empty line or anything else denies without error.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	fmt.Fprintf(a.out, "About to delete existing data in %s.\n", target)
	fmt.Fprintf(a.out, "Type %q to confirm, anything else to abort: ", confirmationWord)

	type answer struct {
		text string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		reader := bufio.NewReader(a.in)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			ch <- answer{err: err}
			return
		}
		ch <- answer{text: strings.TrimSpace(line)}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case ans := <-ch:
		if ans.err != nil {
			if ans.err == io.EOF {
				return false, nil
			}
			return false, fmt.Errorf("failed to read confirmation: %w", ans.err)
		}
		return ans.text == confirmationWord, nil
	}
}

// Verify InteractiveApprover implements the interface at compile time
var _ cymod.Approver = (*InteractiveApprover)(nil)
