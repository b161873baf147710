package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractiveApprover(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		approve bool
	}{
		{"exact confirmation word", "clear\n", true},
		{"confirmation with surrounding spaces", "  clear  \n", true},
		{"wrong word", "yes\n", false},
		{"empty line", "\n", false},
		{"wrong case", "CLEAR\n", false},
		{"closed input", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			a := NewInteractiveApproverIO(strings.NewReader(tc.input), &out)

			approved, err := a.RequestApproval(context.Background(), "bolt://localhost:7687")
			require.NoError(t, err)
			assert.Equal(t, tc.approve, approved)
			assert.Contains(t, out.String(), "bolt://localhost:7687")
		})
	}
}

func TestInteractiveApprover_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// a pipe with no writer activity blocks the read forever
	blocked, w := io.Pipe()
	defer w.Close()
	a := NewInteractiveApproverIO(blocked, &bytes.Buffer{})

	approved, err := a.RequestApproval(ctx, "target")
	assert.False(t, approved)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewInteractiveApproverIO_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewInteractiveApproverIO(nil, &bytes.Buffer{}) })
	assert.Panics(t, func() { NewInteractiveApproverIO(strings.NewReader(""), nil) })
}

func TestForcedApprover_ApprovesAfterCountdown(t *testing.T) {
	var out bytes.Buffer
	a := NewForcedApproverWith(&out, 0)

	approved, err := a.RequestApproval(context.Background(), "target")
	require.NoError(t, err)
	assert.True(t, approved)
	assert.Contains(t, out.String(), "Force mode")
}

func TestForcedApprover_CancelledDuringCountdown(t *testing.T) {
	var out bytes.Buffer
	a := NewForcedApproverWith(&out, 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	approved, err := a.RequestApproval(ctx, "target")
	assert.False(t, approved)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewForcedApproverWith_NilOutPanics(t *testing.T) {
	assert.Panics(t, func() { NewForcedApproverWith(nil, time.Second) })
}
