package cymod

import (
	"context"

	"github.com/google/uuid"
)

// Session encapsulates the exclusively-owned database connection of one
// load. It is acquired at the start of the commit stage and released on
// every exit path.
//
// Thread-Safety: NOT safe for concurrent use. A single Session must not be
// used for two concurrent loads.
type Session struct {
	id   uuid.UUID
	conn GraphConnection
}

// NewSession creates a new Session around an open connection.
//
// Panics if conn is nil (programmer error - the session manager should
// never create a Session without a connection).
func NewSession(conn GraphConnection) *Session {
	if conn == nil {
		panic("conn cannot be nil")
	}
	return &Session{
		id:   uuid.New(),
		conn: conn,
	}
}

// ID returns the session's unique identifier, used in log lines to
// correlate a load's output.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Conn returns the connection owned by the session.
// The connection is valid until Close() is called.
func (s *Session) Conn() GraphConnection {
	return s.conn
}

// Close releases the connection. Idempotent and safe to call multiple
// times; after Close the Session should not be used.
func (s *Session) Close(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close(ctx)
	s.conn = nil
	return err
}
