// Package cypher parses Cypher fragment files into ordered statement
// units, tracking parameter placeholders and fragment-local parameter
// headers.
package cypher
