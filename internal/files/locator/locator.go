package locator

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alanecode/cymod/internal/checksum"
	"github.com/alanecode/cymod/internal/files/filesystem"
	"github.com/alanecode/cymod/pkg/cymod"
)

// Locator discovers Cypher fragment files under a root directory.
// The output order is lexicographic by relative slash-path, which makes it
// stable and reproducible across runs on the same tree.
type Locator struct {
	calculator checksum.Calculator
	fsProvider filesystem.Provider
	suffix     string
}

// NewLocator creates a locator using the OS filesystem.
// suffix, when non-empty, restricts discovery to files whose stem ends
// with it (e.g. "_w" matches "model_w.cql" but not "model.cql").
// Panics if calculator is nil.
func NewLocator(calculator checksum.Calculator, suffix string) *Locator {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Locator{
		calculator: calculator,
		fsProvider: filesystem.NewOSFileSystem(),
		suffix:     suffix,
	}
}

// NewLocatorWithFS creates a locator with a custom filesystem provider,
// primarily for testing with in-memory filesystems.
// Panics if calculator or fsProvider is nil.
func NewLocatorWithFS(calculator checksum.Calculator, fsProvider filesystem.Provider, suffix string) *Locator {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Locator{
		calculator: calculator,
		fsProvider: fsProvider,
		suffix:     suffix,
	}
}

// Locate walks root and returns the fragments in commit order. Files whose
// extension is not a fragment extension are silently skipped; so are files
// rejected by the suffix filter. The fragment content is read here because
// fragments are transient inputs to the parser.
func (l *Locator) Locate(root string) ([]cymod.Fragment, error) {
	dir, err := l.fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%v)", cymod.ErrNotFound, root, err)
	}

	var fragments []cymod.Fragment

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking fragment tree: %w", err)
		}

		if file.Info().IsDir() {
			return nil
		}

		relPath := filepath.ToSlash(file.RelativePath())
		if !l.accepts(relPath) {
			return nil
		}

		content, err := file.ReadContent()
		if err != nil {
			return fmt.Errorf("failed to read fragment %s: %w", relPath, err)
		}

		fragments = append(fragments, cymod.Fragment{
			Path:     relPath,
			AbsPath:  file.Path(),
			RawText:  string(content),
			Checksum: l.calculator.CalculateNormalized(content),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// filepath.Walk already visits lexicographically, but the ordering is
	// part of the contract, so it is enforced here rather than assumed.
	sort.Slice(fragments, func(i, j int) bool {
		return fragments[i].Path < fragments[j].Path
	})
	for i := range fragments {
		fragments[i].Index = i
	}

	return fragments, nil
}

// accepts applies the extension and suffix filters to a relative path.
func (l *Locator) accepts(relPath string) bool {
	ext := filepath.Ext(relPath)
	if !cymod.IsFragmentExtension(ext) {
		return false
	}
	if l.suffix == "" {
		return true
	}
	base := filepath.Base(relPath)
	stem := strings.TrimSuffix(base, ext)
	return strings.HasSuffix(stem, l.suffix)
}

// Verify Locator implements the interface at compile time
var _ cymod.FragmentLocator = (*Locator)(nil)
