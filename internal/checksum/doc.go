// Package checksum computes SHA-256 fingerprints of Cypher fragments.
// The normalized variant ignores comments and whitespace so plan listings
// can show whether a fragment's executable content changed between runs.
package checksum
