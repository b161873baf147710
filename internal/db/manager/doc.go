// Package manager holds destructive graph maintenance operations kept
// separate from the load pipeline so they are easy to audit.
package manager
