package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is looked up in the fragment root directory.
const ProjectFileName = "cymod.yaml"

// ProjectConfig holds per-project defaults read from cymod.yaml. Every
// field is optional; command line flags and environment variables take
// precedence over anything set here.
type ProjectConfig struct {
	URI        string         `yaml:"uri"`
	Host       string         `yaml:"host"`
	Port       int            `yaml:"port"`
	Username   string         `yaml:"username"`
	Database   string         `yaml:"database"`
	Suffix     string         `yaml:"suffix"`
	Parameters map[string]any `yaml:"parameters"`
}

// LoadProjectConfig reads cymod.yaml from root. A missing file is not an
// error; it returns nil in that case.
func LoadProjectConfig(root string) (*ProjectConfig, error) {
	path := filepath.Join(root, ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}
