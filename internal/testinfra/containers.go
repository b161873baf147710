package testinfra

import (
	"context"
	"fmt"

	tcneo4j "github.com/testcontainers/testcontainers-go/modules/neo4j"
)

const (
	Neo4jImage    = "neo4j:5"
	Neo4jUsername = "neo4j"
	Neo4jPassword = "letmein.123"
)

// Neo4jContainer wraps a running Neo4j test container with its resolved
// bolt URL.
type Neo4jContainer struct {
	*tcneo4j.Neo4jContainer
	BoltURL string
}

// StartNeo4j launches a disposable Neo4j container and waits until it
// accepts bolt connections.
func StartNeo4j(ctx context.Context) (_ *Neo4jContainer, err error) {
	// testcontainers panics (rather than returning an error) when no Docker
	// host can be found; surface that as an error so callers can skip.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("start neo4j: %v", r)
		}
	}()

	ctr, err := tcneo4j.Run(ctx,
		Neo4jImage,
		tcneo4j.WithAdminPassword(Neo4jPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("start neo4j: %w", err)
	}

	boltURL, err := ctr.BoltUrl(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get bolt url: %w", err)
	}

	return &Neo4jContainer{Neo4jContainer: ctr, BoltURL: boltURL}, nil
}
