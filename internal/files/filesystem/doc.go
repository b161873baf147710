// Package filesystem abstracts file access behind a small Provider
// interface so the fragment locator can run against the OS filesystem in
// production and an in-memory filesystem in tests.
package filesystem
