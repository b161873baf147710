package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alanecode/cymod/internal/checksum"
	"github.com/alanecode/cymod/internal/config"
	"github.com/alanecode/cymod/internal/cypher"
	"github.com/alanecode/cymod/internal/db"
	"github.com/alanecode/cymod/internal/db/manager"
	"github.com/alanecode/cymod/internal/files/locator"
	"github.com/alanecode/cymod/internal/logging"
	"github.com/alanecode/cymod/internal/params"
	"github.com/alanecode/cymod/internal/services"
	"github.com/alanecode/cymod/internal/ui"
	"github.com/alanecode/cymod/pkg/cymod"
)

var loadCmd = &cobra.Command{
	Use:   "load <fragment_root>",
	Short: "Validate a fragment tree and commit it to Neo4j",
	Long: `Load walks the fragment root for .cql and .cypher files, parses them into
statements, resolves every $parameter reference, and commits the result to
Neo4j one transaction per fragment, in lexicographic path order.

Validation runs to completion before the first connection is opened: a
parse error or unresolved parameter anywhere in the tree means nothing is
written. Once committing starts, the first failing fragment stops the load;
earlier fragments stay committed.

Arguments:
  fragment_root   Directory containing the Cypher fragment files

Password Authentication:
  For security, the password is NOT accepted as a CLI flag. Use one of:
    1. $NEO4J_PASSWORD environment variable
    2. Interactive prompt (hidden input, requires a terminal)
  Never put passwords in shell commands (visible in history and process list)

Examples:
  # Load a fragment tree into the server default database
  cymod load ./graph

  # Load into a named database with a parameter file
  cymod load ./graph -d models -p params.json

  # Restrict to fragments whose filename stem ends in _w
  cymod load ./graph --suffix _w

  # Wipe the graph first (interactive confirmation)
  cymod load ./graph --clear

  # Scripted reset for CI (countdown instead of prompt)
  cymod load ./graph --clear --force

  # Delete only nodes matching the resolved parameters, then load
  cymod load ./graph --clear-matching -p prod.yaml

  # Validate and print the plan without connecting
  cymod load ./graph --dry-run`,
	Args: RequireFragmentRoot,
	RunE: runLoad,
}

type loadFlagValues struct {
	uri, host, username, database string
	port                          int
	clear, clearMatching, force   bool
	dryRun                        bool
	paramFile                     string
	params                        []string
	suffix                        string
	timeout                       time.Duration
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadFlags.uri, "uri", "",
		"Full bolt/neo4j connection URI\n"+
			"Mutually exclusive in spirit with --host/--port; takes precedence when set\n"+
			"Precedence: --uri > $NEO4J_URI > cymod.yaml\n"+
			"Example: bolt://db.internal:7687")
	loadCmd.Flags().StringVarP(&loadFlags.host, "host", "H", "",
		"Neo4j server host\n"+
			"Precedence: --host > $NEO4J_HOST > cymod.yaml > localhost")
	loadCmd.Flags().IntVar(&loadFlags.port, "port", 0,
		"Bolt port\n"+
			"Precedence: --port > $NEO4J_PORT > cymod.yaml > 7687")
	loadCmd.Flags().StringVarP(&loadFlags.username, "username", "U", "",
		"Neo4j user (default: $NEO4J_USERNAME or neo4j)")
	loadCmd.Flags().StringVarP(&loadFlags.database, "database", "d", "",
		"Target database on Neo4j 4+ (default: $NEO4J_DATABASE or the server default)")

	loadCmd.Flags().BoolVar(&loadFlags.clear, "clear", false,
		"Detach-delete every node before the first fragment commits\n"+
			"Requires interactive confirmation unless --force is used")
	loadCmd.Flags().BoolVar(&loadFlags.clearMatching, "clear-matching", false,
		"Detach-delete only nodes whose properties match the resolved parameters\n"+
			"Mutually exclusive with --clear; requires a non-empty parameter set")
	loadCmd.Flags().BoolVar(&loadFlags.force, "force", false,
		"Skip the interactive approval prompt for clear operations\n"+
			"Shows a cancellable countdown instead; use for CI/CD pipelines")

	loadCmd.Flags().StringVarP(&loadFlags.paramFile, "parameters", "p", "",
		"Parameter file (.json, .yaml/.yml or .env)\n"+
			"Values fill $name placeholders; CLI --param overrides them")
	loadCmd.Flags().StringSliceVar(&loadFlags.params, "param", nil,
		"Parameters as name=value pairs (can be specified multiple times)\n"+
			"Highest precedence; values are passed to the server as strings\n"+
			"Example: --param model_ID=mod-1 --param owner=alice")

	loadCmd.Flags().StringVar(&loadFlags.suffix, "suffix", "",
		"Only load fragments whose filename stem ends with this suffix\n"+
			"Example: --suffix _w matches model_w.cql but not model.cql")

	loadCmd.Flags().BoolVar(&loadFlags.dryRun, "dry-run", false,
		"Run every validation stage and print the plan without connecting")

	// Catastrophic failure protection, not normal timeout control
	loadCmd.Flags().DurationVar(&loadFlags.timeout, "timeout", 3*time.Minute,
		"Commit stage timeout (default 3m)\n"+
			"Prevents indefinite hangs from network issues\n"+
			"Examples: 30s, 5m, 1h30m")
}

// buildLoadConfig assembles a Config from flags, environment and the
// optional cymod.yaml in the fragment root. Extracted for testability.
func buildLoadConfig(cmd *cobra.Command, root string, verbose bool) (cymod.Config, error) {
	_ = godotenv.Load()

	projectCfg, err := config.LoadProjectConfig(root)
	if err != nil {
		return cymod.Config{}, fmt.Errorf("%w: %v", cymod.ErrInvalidConfig, err)
	}

	flagValues := connectionValues{
		uri:      loadFlags.uri,
		host:     loadFlags.host,
		port:     loadFlags.port,
		username: loadFlags.username,
		database: loadFlags.database,
	}
	conn := resolveConnection(flagValues, connectionFromEnv(), connectionFromProject(projectCfg))

	cliParams, err := params.ParseKeyValuePairs(loadFlags.params)
	if err != nil {
		return cymod.Config{}, fmt.Errorf("%w: %v", cymod.ErrInvalidConfig, err)
	}

	suffix := loadFlags.suffix
	if suffix == "" && projectCfg != nil {
		suffix = projectCfg.Suffix
	}

	cfg := cymod.Config{
		URI:               conn.uri,
		Host:              conn.host,
		Port:              conn.port,
		Username:          conn.username,
		Database:          conn.database,
		ClearExisting:     loadFlags.clear,
		ClearMatching:     loadFlags.clearMatching,
		Force:             loadFlags.force,
		ParameterFilePath: loadFlags.paramFile,
		Parameters:        cliParams.Values(),
		Suffix:            suffix,
		Timeout:           loadFlags.timeout,
		Verbose:           verbose,
	}
	if projectCfg != nil {
		cfg.ProjectParameters = projectCfg.Parameters
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Connection resolved:\n")
		fmt.Fprintf(os.Stderr, "  Target: %s\n", cfg.Target())
		fmt.Fprintf(os.Stderr, "  User: %s\n", cfg.Username)
	}

	return cfg, nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	root := args[0]
	verbose := getVerboseFlag(cmd)

	cfg, err := buildLoadConfig(cmd, root, verbose)
	if err != nil {
		return err
	}

	if !loadFlags.dryRun {
		password, err := resolvePassword(cfg.Username)
		if err != nil {
			return fmt.Errorf("%w: %v", cymod.ErrInvalidConfig, err)
		}
		cfg.Password = password
	}

	// Select approver implementation based on --force flag
	var approver cymod.Approver
	if cfg.Force {
		approver = ui.NewForcedApprover()
	} else {
		approver = ui.NewInteractiveApprover()
	}
	logger := logging.NewConsoleLogger(verbose)

	svc := services.NewLoadService(cfg, services.LoadServiceDeps{
		Locator:  locator.NewLocator(checksum.New(), cfg.Suffix),
		Parser:   cypher.NewParser(),
		Builder:  services.NewBatchBuilder(logger),
		Sessions: services.NewSessionManager(db.NewConnector(cfg, logger), logger),
		Manager:  manager.NewGraphManager(logger),
		Approver: approver,
		Logger:   logger,
	})

	// Handle interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling load...")
		cancel()
	}()

	plan, err := svc.Load(ctx, root)
	if err != nil {
		return err
	}

	if loadFlags.dryRun {
		printPlan(plan)
		return nil
	}

	if err := svc.Commit(ctx); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	return nil
}

// printPlan writes a dry-run plan listing to stdout.
func printPlan(plan *cymod.LoadPlan) {
	fmt.Printf("Plan for %s: %d fragment(s), %d statement(s)\n",
		plan.Root, plan.FragmentCount(), plan.StatementCount())
	for _, batch := range plan.Batches {
		sum := batch.Checksum
		if len(sum) > 12 {
			sum = sum[:12]
		}
		fmt.Printf("  %3d  %s  %s  (%d statement(s))\n", batch.Index+1, batch.FragmentPath, sum, len(batch.Statements))
	}
	if len(plan.Parameters) > 0 {
		fmt.Printf("Parameters: %d value(s)\n", len(plan.Parameters))
	}
}
