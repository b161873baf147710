// Package params loads and merges external parameter values from JSON,
// YAML and dotenv files and from command line name=value pairs.
package params
