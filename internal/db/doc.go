// Package db connects to Neo4j over Bolt and adapts driver sessions and
// transactions to the interfaces the load pipeline consumes.
package db
