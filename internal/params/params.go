package params

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alanecode/cymod/pkg/cymod"
)

// Set is an immutable collection of named parameter values. The zero
// value is an empty set.
type Set struct {
	values map[string]any
}

// NewSet copies values into a fresh set. A nil map yields an empty set.
func NewSet(values map[string]any) Set {
	s := Set{values: make(map[string]any, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Resolve looks up a parameter by name.
func (s Set) Resolve(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Merge returns a new set with other's values overriding the receiver's.
func (s Set) Merge(other Set) Set {
	merged := make(map[string]any, len(s.values)+len(other.values))
	for k, v := range s.values {
		merged[k] = v
	}
	for k, v := range other.values {
		merged[k] = v
	}
	return Set{values: merged}
}

// Values returns a copy of the underlying map.
func (s Set) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Len returns the number of parameters in the set.
func (s Set) Len() int {
	return len(s.values)
}

// Names returns the parameter names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.values))
	for k := range s.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads a parameter file, dispatching on extension: .json and
// .yaml/.yml files must hold a single top-level object; .env files hold
// KEY=value lines and every value is a string.
func LoadFile(path string) (Set, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return loadJSON(path)
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".env":
		return loadEnv(path)
	default:
		return Set{}, &cymod.ParamFileError{
			Path: path,
			Err:  fmt.Errorf("unsupported parameter file extension %q", ext),
		}
	}
}

func loadJSON(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, &cymod.ParamFileError{Path: path, Err: err}
	}

	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return Set{}, &cymod.ParamFileError{
			Path: path,
			Err:  fmt.Errorf("expected a top-level JSON object: %w", err),
		}
	}
	return Set{values: values}, nil
}

func loadYAML(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, &cymod.ParamFileError{Path: path, Err: err}
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return Set{}, &cymod.ParamFileError{
			Path: path,
			Err:  fmt.Errorf("expected a top-level YAML mapping: %w", err),
		}
	}
	return Set{values: values}, nil
}

func loadEnv(path string) (Set, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return Set{}, &cymod.ParamFileError{Path: path, Err: err}
	}

	values := make(map[string]any, len(env))
	for k, v := range env {
		values[k] = v
	}
	return Set{values: values}, nil
}

// ParseKeyValuePairs converts repeated name=value flag occurrences into a
// set. Values remain strings.
func ParseKeyValuePairs(pairs []string) (Set, error) {
	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return Set{}, fmt.Errorf("invalid parameter %q, expected name=value", pair)
		}
		values[name] = value
	}
	return Set{values: values}, nil
}
