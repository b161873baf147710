package cymod

// FragmentLocator discovers Cypher fragment files under a root directory.
// Implementations must produce a deterministic, repeatable order across
// runs on the same tree.
type FragmentLocator interface {
	// Locate walks the root directory and returns the fragments in
	// lexicographic order of their relative slash-paths. Files that are
	// not Cypher fragments are silently skipped. Fails with an error
	// wrapping ErrNotFound if root does not exist or is not a directory.
	Locate(root string) ([]Fragment, error)
}

// StatementParser splits fragment text into executable statement units.
type StatementParser interface {
	// Parse produces the fragment's ordered statements and any
	// fragment-local parameter defaults. Fails with a *ParseError on
	// malformed syntax.
	Parse(frag Fragment) (ParsedFragment, error)
}
