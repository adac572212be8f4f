package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/frameloom/pkg/buildinfo"
	"github.com/matzehuels/frameloom/pkg/config"
	"github.com/matzehuels/frameloom/pkg/document"
	"github.com/matzehuels/frameloom/pkg/snapshot"
)

// appName is the application name used for directories and display.
const appName = "frameloom"

// Execute runs the frameloom CLI and returns an error if any command fails.
// This is the main entry point for the CLI application; ctx cancellation
// stops long-running commands like serve and preview.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "Frameloom edits multi-breakpoint designs on an infinite canvas",
		Long:         `Frameloom is the engine of a responsive design tool: one component tree rendered across multiple viewport frames, with breakpoint-aware property resolution, canvas pan/zoom, and cross-frame selection.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	loadCfg := func() (config.Config, error) { return config.Load(configPath) }

	root.AddCommand(newInitCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newResolveCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newServeCmd(loadCfg))
	root.AddCommand(newPreviewCmd(loadCfg))
	root.AddCommand(newSnapshotCmd(loadCfg))

	return root.ExecuteContext(ctx)
}

// loadDocument reads a document file, or builds the default project when
// path is empty.
func loadDocument(path string) (*document.Document, error) {
	if path == "" {
		return document.NewDefault("untitled"), nil
	}
	return document.ReadDocumentFile(path)
}

// openStore creates the snapshot store selected by the configuration.
func openStore(ctx context.Context, cfg config.Snapshot) (snapshot.Store, error) {
	switch cfg.Backend {
	case "", "file":
		return snapshot.NewFileStore(cfg.Dir)
	case "memory":
		return snapshot.NewMemoryStore(), nil
	case "redis":
		return snapshot.NewRedisStore(ctx, cfg.RedisAddr)
	case "mongo":
		return snapshot.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}
