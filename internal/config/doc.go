// Package config reads optional per-project defaults from a cymod.yaml
// file in the fragment root directory.
package config
