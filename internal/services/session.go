package services

import (
	"context"

	"github.com/alanecode/cymod/pkg/cymod"
)

// SessionManager acquires the exclusively-owned database session a commit
// runs on.
type SessionManager struct {
	connector cymod.GraphConnector
	logger    cymod.Logger
}

// NewSessionManager creates a session manager.
// Panics if connector or logger is nil.
func NewSessionManager(connector cymod.GraphConnector, logger cymod.Logger) *SessionManager {
	if connector == nil {
		panic("connector cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SessionManager{connector: connector, logger: logger}
}

// PrepareSession connects to the database and wraps the verified
// connection in a session. The caller owns the session and must close it.
func (m *SessionManager) PrepareSession(ctx context.Context) (*cymod.Session, error) {
	conn, err := m.connector.Connect(ctx)
	if err != nil {
		return nil, err
	}

	session := cymod.NewSession(conn)
	m.logger.Verbose("session %s established", session.ID())
	return session, nil
}
