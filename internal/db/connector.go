package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/alanecode/cymod/pkg/cymod"
)

// Connector establishes verified Neo4j connections from a load
// configuration. Connectivity is proven before a connection is handed
// out, so callers never hold a session to an unreachable server.
type Connector struct {
	cfg    cymod.Config
	logger cymod.Logger
}

// NewConnector creates a connector for the given configuration.
// Panics if logger is nil.
func NewConnector(cfg cymod.Config, logger cymod.Logger) *Connector {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Connector{cfg: cfg, logger: logger}
}

// Connect opens a driver against the configured server, verifies
// connectivity and returns a write session bound to the target database.
func (c *Connector) Connect(ctx context.Context) (cymod.GraphConnection, error) {
	uri := c.cfg.ResolvedURI()
	c.logger.Verbose("connecting to %s", c.cfg.Target())

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(c.cfg.Username, c.cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid connection URI %q: %v", cymod.ErrConnectionFailed, uri, err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("%w: %s: %v", cymod.ErrConnectionFailed, c.cfg.Target(), err)
	}

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.cfg.Database,
	})
	c.logger.Verbose("connected to %s", c.cfg.Target())

	return &driverConnection{driver: driver, session: session}, nil
}

// driverConnection adapts a neo4j driver session to cymod.GraphConnection.
type driverConnection struct {
	driver  neo4j.DriverWithContext
	session neo4j.SessionWithContext
}

func (c *driverConnection) BeginTransaction(ctx context.Context) (cymod.GraphTransaction, error) {
	tx, err := c.session.BeginTransaction(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &driverTransaction{tx: tx}, nil
}

// Run executes one auto-commit statement outside any explicit transaction.
func (c *driverConnection) Run(ctx context.Context, cypher string, params map[string]any) error {
	res, err := c.session.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

func (c *driverConnection) Close(ctx context.Context) error {
	return errors.Join(c.session.Close(ctx), c.driver.Close(ctx))
}

// driverTransaction adapts an explicit neo4j transaction.
type driverTransaction struct {
	tx neo4j.ExplicitTransaction
}

func (t *driverTransaction) Run(ctx context.Context, cypher string, params map[string]any) error {
	res, err := t.tx.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

func (t *driverTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *driverTransaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// Verify interface implementations at compile time
var (
	_ cymod.GraphConnector   = (*Connector)(nil)
	_ cymod.GraphConnection  = (*driverConnection)(nil)
	_ cymod.GraphTransaction = (*driverTransaction)(nil)
)
