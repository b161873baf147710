package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/alanecode/cymod/internal/cli"
	"github.com/alanecode/cymod/pkg/cymod"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(cymod.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(cymod.ExitCodeForError(err))
	}
}
