package testinfra

import (
	"context"
	"os"
	"sync"
	"testing"
)

var (
	testContainerOnce sync.Once
	testContainerURI  string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		container, err := StartNeo4j(context.Background())
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerURI = container.BoltURL
	})
	return testContainerURI, testContainerErr
}

// GetTestURI returns the bolt URI of a test database.
// Priority: CYMOD_TEST_URI env var > auto-started testcontainer > skip test.
// When CYMOD_TEST_URI is set, CYMOD_TEST_PASSWORD must hold the password.
func GetTestURI(t *testing.T) (uri, password string) {
	t.Helper()

	if uri := os.Getenv("CYMOD_TEST_URI"); uri != "" {
		return uri, os.Getenv("CYMOD_TEST_PASSWORD")
	}

	uri, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("CYMOD_TEST_URI not set and Docker unavailable: %v", err)
	}
	return uri, Neo4jPassword
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestURI for convenience.
func RequireDatabase(t *testing.T) (uri, password string) {
	t.Helper()

	SkipIfShort(t)
	return GetTestURI(t)
}
