// Package logging provides concrete implementations of the cymod.Logger
// interface used throughout the load pipeline.
package logging
