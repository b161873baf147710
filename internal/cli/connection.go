package cli

import (
	"os"
	"strconv"

	"github.com/alanecode/cymod/internal/config"
	"github.com/alanecode/cymod/internal/ui"
	"github.com/alanecode/cymod/pkg/cymod"
)

// connectionValues holds one source's connection settings. Zero values
// mean "not set by this source".
type connectionValues struct {
	uri      string
	host     string
	port     int
	username string
	database string
}

// connectionFromEnv reads the NEO4J_* environment variables.
func connectionFromEnv() connectionValues {
	env := connectionValues{
		uri:      os.Getenv("NEO4J_URI"),
		host:     os.Getenv("NEO4J_HOST"),
		username: os.Getenv("NEO4J_USERNAME"),
		database: os.Getenv("NEO4J_DATABASE"),
	}
	if raw := os.Getenv("NEO4J_PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			env.port = port
		}
	}
	return env
}

func connectionFromProject(project *config.ProjectConfig) connectionValues {
	if project == nil {
		return connectionValues{}
	}
	return connectionValues{
		uri:      project.URI,
		host:     project.Host,
		port:     project.Port,
		username: project.Username,
		database: project.Database,
	}
}

// resolveConnection merges connection sources with precedence
// flag > environment > cymod.yaml > default. Host and port defaults are
// left to Config.ResolvedURI so they apply uniformly.
func resolveConnection(flags, env, project connectionValues) connectionValues {
	resolved := connectionValues{
		uri:      firstNonEmpty(flags.uri, env.uri, project.uri),
		host:     firstNonEmpty(flags.host, env.host, project.host),
		username: firstNonEmpty(flags.username, env.username, project.username, cymod.DefaultUsername),
		database: firstNonEmpty(flags.database, env.database, project.database),
		port:     flags.port,
	}
	if resolved.port == 0 {
		resolved.port = env.port
	}
	if resolved.port == 0 {
		resolved.port = project.port
	}
	return resolved
}

// resolvePassword returns the password from the environment, falling back
// to an interactive prompt. Passwords are never accepted as flags; they
// would leak into shell history and the process list.
func resolvePassword(username string) (string, error) {
	if password := os.Getenv("NEO4J_PASSWORD"); password != "" {
		return password, nil
	}
	return ui.PromptPassword(username)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
