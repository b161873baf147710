package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanecode/cymod/internal/logging"
	"github.com/alanecode/cymod/pkg/cymod"
)

func parsedFragment(path string, header map[string]any, stmts ...cymod.StatementUnit) cymod.ParsedFragment {
	for i := range stmts {
		stmts[i].FragmentPath = path
		stmts[i].Index = i
	}
	return cymod.ParsedFragment{
		Fragment:     cymod.Fragment{Path: path},
		Statements:   stmts,
		HeaderParams: header,
	}
}

func TestNewBatchBuilder_NilLoggerPanics(t *testing.T) {
	assert.Panics(t, func() { NewBatchBuilder(nil) })
}

func TestBuild_OneBatchPerFragmentInOrder(t *testing.T) {
	b := NewBatchBuilder(logging.NewNullLogger())
	fragments := []cymod.ParsedFragment{
		parsedFragment("a/first.cql", nil,
			cymod.StatementUnit{Text: "CREATE (a)"},
			cymod.StatementUnit{Text: "CREATE (b)"},
		),
		parsedFragment("b/second.cql", nil,
			cymod.StatementUnit{Text: "CREATE (c)"},
		),
	}

	fragments[0].Fragment.Checksum = "aaa111"
	fragments[1].Fragment.Checksum = "bbb222"

	batches, err := b.Build(fragments, nil)
	require.NoError(t, err)
	require.Len(t, batches, 2)

	assert.Equal(t, "aaa111", batches[0].Checksum)
	assert.Equal(t, "bbb222", batches[1].Checksum)
	assert.Equal(t, "a/first.cql", batches[0].FragmentPath)
	assert.Equal(t, 0, batches[0].Index)
	assert.Len(t, batches[0].Statements, 2)
	assert.Equal(t, "b/second.cql", batches[1].FragmentPath)
	assert.Equal(t, 1, batches[1].Index)
}

func TestBuild_BindsOnlyReferencedParameters(t *testing.T) {
	b := NewBatchBuilder(logging.NewNullLogger())
	fragments := []cymod.ParsedFragment{
		parsedFragment("m.cql", nil,
			cymod.StatementUnit{Text: "CREATE (a {id: $model_ID})", ParamRefs: []string{"model_ID"}},
			cymod.StatementUnit{Text: "CREATE (b)"},
		),
	}
	globals := map[string]any{"model_ID": "mod-1", "unused": true}

	batches, err := b.Build(fragments, globals)
	require.NoError(t, err)

	stmts := batches[0].Statements
	assert.Equal(t, map[string]any{"model_ID": "mod-1"}, stmts[0].Bindings)
	assert.Nil(t, stmts[1].Bindings)
}

func TestBuild_HeaderDefaultsOverriddenByGlobals(t *testing.T) {
	b := NewBatchBuilder(logging.NewNullLogger())
	header := map[string]any{"priority": float64(1), "label": "default"}
	fragments := []cymod.ParsedFragment{
		parsedFragment("m.cql", header,
			cymod.StatementUnit{
				Text:      "CREATE (a {p: $priority, l: $label})",
				ParamRefs: []string{"priority", "label"},
			},
		),
	}

	batches, err := b.Build(fragments, map[string]any{"priority": 9})
	require.NoError(t, err)

	bindings := batches[0].Statements[0].Bindings
	assert.Equal(t, 9, bindings["priority"])
	assert.Equal(t, "default", bindings["label"])
}

func TestBuild_HeaderScopedToItsFragment(t *testing.T) {
	b := NewBatchBuilder(logging.NewNullLogger())
	fragments := []cymod.ParsedFragment{
		parsedFragment("with_header.cql", map[string]any{"owner": "alice"},
			cymod.StatementUnit{Text: "CREATE (a {o: $owner})", ParamRefs: []string{"owner"}},
		),
		parsedFragment("without_header.cql", nil,
			cymod.StatementUnit{Text: "CREATE (b {o: $owner})", ParamRefs: []string{"owner"}},
		),
	}

	_, err := b.Build(fragments, nil)
	require.Error(t, err)

	var uerr *cymod.UnresolvedParameterError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "without_header.cql", uerr.FragmentPath)
	assert.Equal(t, "owner", uerr.Name)
}

func TestBuild_UnresolvedParameter(t *testing.T) {
	b := NewBatchBuilder(logging.NewNullLogger())
	fragments := []cymod.ParsedFragment{
		parsedFragment("m.cql", nil,
			cymod.StatementUnit{Text: "CREATE (a {id: $present})", ParamRefs: []string{"present"}},
			cymod.StatementUnit{Text: "CREATE (b {id: $missing})", ParamRefs: []string{"missing"}},
		),
	}

	_, err := b.Build(fragments, map[string]any{"present": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cymod.ErrUnresolvedParameter))

	var uerr *cymod.UnresolvedParameterError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "m.cql", uerr.FragmentPath)
	assert.Equal(t, 1, uerr.StatementIndex)
	assert.Equal(t, "missing", uerr.Name)
}
