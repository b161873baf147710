// Package ui holds the terminal interaction pieces: approval prompts for
// destructive operations and the hidden password prompt.
package ui
