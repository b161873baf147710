// Package locator provides deterministic discovery of Cypher fragment
// files in a directory tree.
//
// The locator is responsible for:
//   - Recursively discovering .cql/.cypher files under a root directory
//   - Applying the optional filename suffix filter
//   - Producing a stable, lexicographic commit order
//   - Reading fragment content and computing checksums
//
// It is filesystem-agnostic through the filesystem.Provider interface,
// enabling production use with the OS filesystem and testing with
// in-memory filesystems.
package locator
