// Package services contains the load pipeline orchestration: batch
// building, session acquisition and the load service that drives a load
// from discovery through commit.
package services
