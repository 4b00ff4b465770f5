// Package cli implements the boardcreator command-line interface.
//
// Commands edit a single project persisted in the configured storage
// backend. The CLI is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
//   - board, name: board dimensions and project name
//   - paint, groups: paint cells and inspect tile groups
//   - palette: manage the color palette
//   - export: write the shape file
//   - project: export, import and clear the whole project
//   - edit: interactive terminal editor
//   - serve: HTTP API over independent workspaces
//   - storage: inspect and reset the storage backend
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports every storage and project event.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boardcreator/pkg/buildinfo"
	"github.com/matzehuels/boardcreator/pkg/config"
	"github.com/matzehuels/boardcreator/pkg/grid"
	"github.com/matzehuels/boardcreator/pkg/observability"
	"github.com/matzehuels/boardcreator/pkg/project"
	"github.com/matzehuels/boardcreator/pkg/storage"
	"github.com/matzehuels/boardcreator/pkg/storage/mongo"
	"github.com/matzehuels/boardcreator/pkg/storage/redis"
)

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	legacy     bool
	backend    string

	cfg config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Boardcreator paints tile boards and exports them as shape matrices",
		Long:         `Boardcreator is a tool for hand-painting rectangular grids into a board outline and colored tile groups, exported as compact JSON matrices for game and layout engines.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/boardcreator/config.toml)")
	root.PersistentFlags().StringVar(&c.backend, "backend", "", "storage backend: file, memory, redis, mongo (overrides config)")
	root.PersistentFlags().BoolVar(&c.legacy, "legacy", false, "toggle group tiles off by index only, ignoring color")
	_ = root.RegisterFlagCompletionFunc("backend", completeBackends)

	root.AddCommand(c.boardCommand())
	root.AddCommand(c.nameCommand())
	root.AddCommand(c.paintCommand())
	root.AddCommand(c.groupsCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.projectCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storageCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, applies the log level and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.SetProjectHooks(logHooks{c.Logger})
		observability.SetStorageHooks(logHooks{c.Logger})
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.backend != "" {
		cfg.Storage.Backend = c.backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	c.cfg = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Storage and Project Factory
// =============================================================================

// openStore opens the configured backend, scoped to the configured prefix and
// reporting to the observability hooks. The caller must close it.
func (c *CLI) openStore(ctx context.Context) (storage.Store, error) {
	kv, err := c.openBackend(ctx)
	if err != nil {
		return nil, err
	}
	var s storage.Store = kv
	if p := c.cfg.Storage.Prefix; p != "" {
		s = &closingScope{ScopedStore: storage.Scope(kv, p), inner: kv}
	}
	return storage.Observe(s), nil
}

func (c *CLI) openBackend(ctx context.Context) (storage.Store, error) {
	st := c.cfg.Storage
	switch st.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	case config.BackendRedis:
		spinner := newSpinnerWithContext(ctx, "Connecting to redis at "+st.Redis.Addr+"...")
		spinner.Start()
		s, err := redis.Open(ctx, redis.Config{Addr: st.Redis.Addr, Password: st.Redis.Password, DB: st.Redis.DB})
		if err != nil {
			spinner.StopWithError("redis unavailable at " + st.Redis.Addr)
			return nil, err
		}
		spinner.Stop()
		return s, nil
	case config.BackendMongo:
		spinner := newSpinnerWithContext(ctx, "Connecting to mongo...")
		spinner.Start()
		s, err := mongo.Open(ctx, mongo.Config{URI: st.Mongo.URI, Database: st.Mongo.Database, Collection: st.Mongo.Collection})
		if err != nil {
			spinner.StopWithError("mongo unavailable")
			return nil, err
		}
		spinner.Stop()
		return s, nil
	default:
		dir, err := c.cfg.StoreDir()
		if err != nil {
			return nil, fmt.Errorf("get store dir: %w", err)
		}
		return storage.NewFileStore(dir)
	}
}

// closingScope closes the backend it scopes, since the CLI owns both.
type closingScope struct {
	*storage.ScopedStore
	inner storage.Store
}

func (s *closingScope) Close() error { return s.inner.Close() }

// projectOptions returns the project options derived from configuration and
// flags.
func (c *CLI) projectOptions() []project.Option {
	opts := []project.Option{
		project.WithLogger(c.Logger),
		project.WithDefaults(project.Defaults{
			Board: project.BoardConfig{
				Width:    c.cfg.Board.Width,
				Height:   c.cfg.Board.Height,
				TileSize: c.cfg.Board.TileSize,
			},
			FileName: c.cfg.FileName,
		}),
	}
	if c.legacy {
		opts = append(opts, project.WithMatcher(grid.SameIndex))
	}
	return opts
}

// withProject opens the store, loads the project and runs fn.
func (c *CLI) withProject(ctx context.Context, fn func(*project.Store) error) error {
	kv, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer kv.Close()

	p := project.New(kv, c.projectOptions()...)
	if err := p.Load(ctx); err != nil {
		return err
	}
	return fn(p)
}
