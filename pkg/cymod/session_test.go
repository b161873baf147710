package cymod

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type stubConnection struct {
	closed int
}

func (c *stubConnection) BeginTransaction(ctx context.Context) (GraphTransaction, error) {
	return nil, nil
}

func (c *stubConnection) Run(ctx context.Context, cypher string, params map[string]any) error {
	return nil
}

func (c *stubConnection) Close(ctx context.Context) error {
	c.closed++
	return nil
}

func TestNewSession_NilConnPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil connection")
		}
	}()
	NewSession(nil)
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	conn := &stubConnection{}
	s := NewSession(conn)

	if s.Conn() != conn {
		t.Fatal("Conn() should return the injected connection")
	}
	if s.ID() == uuid.Nil {
		t.Error("expected a non-zero session ID")
	}

	ctx := context.Background()
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
	if conn.closed != 1 {
		t.Errorf("connection closed %d times, want 1", conn.closed)
	}
}
