package locator

import (
	"errors"
	"testing"

	"github.com/alanecode/cymod/internal/checksum"
	"github.com/alanecode/cymod/internal/files/filesystem"
	"github.com/alanecode/cymod/pkg/cymod"
)

func newTestLocator(suffix string) (*Locator, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/model")
	return NewLocatorWithFS(checksum.New(), fs, suffix), fs
}

func TestNewLocator_NilCalculator(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil calculator")
		}
	}()
	NewLocator(nil, "")
}

func TestNewLocatorWithFS_NilArgs(t *testing.T) {
	calc := checksum.New()
	fs := filesystem.NewMemoryFileSystem("/")

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil calculator", func() { NewLocatorWithFS(nil, fs, "") }},
		{"nil filesystem", func() { NewLocatorWithFS(calc, nil, "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("Expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestLocate_OrderAndFiltering(t *testing.T) {
	l, fs := newTestLocator("")
	fs.AddFile("views/transitions.cql", "CREATE (:T);")
	fs.AddFile("states.cql", "CREATE (:S);")
	fs.AddFile("README.md", "not cypher")
	fs.AddFile("conditions.CYPHER", "CREATE (:C);")
	fs.AddFile("notes.txt", "skip me")

	frags, err := l.Locate("/model")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	want := []string{"conditions.CYPHER", "states.cql", "views/transitions.cql"}
	if len(frags) != len(want) {
		t.Fatalf("expected %d fragments, got %d", len(want), len(frags))
	}
	for i, f := range frags {
		if f.Path != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], f.Path)
		}
		if f.Index != i {
			t.Errorf("fragment %s: expected index %d, got %d", f.Path, i, f.Index)
		}
		if f.RawText == "" {
			t.Errorf("fragment %s: content not read", f.Path)
		}
		if f.Checksum == "" {
			t.Errorf("fragment %s: checksum not computed", f.Path)
		}
	}
}

func TestLocate_OrderIsReproducible(t *testing.T) {
	l, fs := newTestLocator("")
	fs.AddFile("c.cql", "CREATE (:C);")
	fs.AddFile("a/x.cql", "CREATE (:X);")
	fs.AddFile("b.cql", "CREATE (:B);")

	first, err := l.Locate("/model")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := l.Locate("/model")
		if err != nil {
			t.Fatalf("Locate failed on run %d: %v", i, err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: count changed", i)
		}
		for j := range again {
			if again[j].Path != first[j].Path {
				t.Errorf("run %d position %d: %q != %q", i, j, again[j].Path, first[j].Path)
			}
		}
	}
}

func TestLocate_SuffixFilter(t *testing.T) {
	l, fs := newTestLocator("_w")
	fs.AddFile("model_w.cql", "CREATE (:A);")
	fs.AddFile("scratch.cql", "CREATE (:B);")
	fs.AddFile("views/extra_w.cypher", "CREATE (:C);")

	frags, err := l.Locate("/model")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	if frags[0].Path != "model_w.cql" || frags[1].Path != "views/extra_w.cypher" {
		t.Errorf("unexpected fragments: %v, %v", frags[0].Path, frags[1].Path)
	}
}

func TestLocate_MissingRoot(t *testing.T) {
	l, _ := newTestLocator("")
	_, err := l.Locate("/does/not/exist")
	if !errors.Is(err, cymod.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLocate_RootIsAFile(t *testing.T) {
	l, fs := newTestLocator("")
	fs.AddFile("f.cql", "CREATE (:A);")
	_, err := l.Locate("/model/f.cql")
	if !errors.Is(err, cymod.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
