package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cymod",
	Short: "Load versioned Cypher fragments into Neo4j",
	Long: `cymod assembles a graph model from a directory tree of Cypher fragment
files and commits it to Neo4j, one transaction per fragment, in a
deterministic order.

Fragments are validated end to end (discovery, parsing, parameter
resolution) before the first connection is opened, so a malformed tree
never leaves the graph half-written.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection failed
  12 - User denied clear approval
  13 - Cypher execution failed
  14 - Fragment root not found
  15 - Fragment parse error
  16 - Parameter file invalid or parameter unresolved`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for cymod")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
