package cymod

import (
	"strings"
	"time"
)

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to the graph database
	ExitApprovalDenied  = 12 // User denied the clear-graph approval
	ExitCommitFailed    = 13 // A batch failed during commit
	ExitNotFound        = 14 // Fragment root directory not found
	ExitParseError      = 15 // Malformed fragment syntax
	ExitParamError      = 16 // Parameter file or parameter resolution failure
)

const (
	// DefaultBoltScheme is the URI scheme used when the connection URI is
	// assembled from host and port.
	DefaultBoltScheme = "bolt"

	// DefaultBoltPort is the standard Neo4j bolt protocol port.
	DefaultBoltPort = 7687

	// DefaultHost is used when neither a URI nor a host is configured.
	DefaultHost = "localhost"

	// DefaultUsername is the stock Neo4j administrative user.
	DefaultUsername = "neo4j"

	// DefaultForceApprovalCountdown is the countdown duration before a
	// forced clear approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// MaxErrorPreviewLength is the maximum number of characters of a
	// failing statement shown in error messages.
	MaxErrorPreviewLength = 200
)

// FragmentExtensions lists the file extensions recognized as Cypher
// fragments. Matching is case-insensitive.
var FragmentExtensions = []string{".cql", ".cypher"}

// IsFragmentExtension reports whether ext denotes a Cypher fragment file.
func IsFragmentExtension(ext string) bool {
	for _, e := range FragmentExtensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
