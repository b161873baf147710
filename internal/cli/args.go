package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireFragmentRoot validates that exactly one fragment_root argument is
// provided. Returns a helpful error message with usage and examples if
// missing or too many.
func RequireFragmentRoot(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <fragment_root>

Usage: %s <fragment_root>

Example:
  %s ./graph -d models`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
