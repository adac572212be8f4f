package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/frameloom/internal/server"
	"github.com/matzehuels/frameloom/pkg/config"
)

// newServeCmd exposes a document over the HTTP API.
func newServeCmd(loadCfg func() (config.Config, error)) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Expose a document over the HTTP API",
		Long: `Serves the document behind a JSON API: property resolution, canvas
transforms, selection, and snapshots. Without a file argument a default
document is served.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := loadCfg()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			doc, err := loadDocument(path)
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), cfg.Snapshot)
			if err != nil {
				logger.Warn("snapshot store unavailable, snapshot endpoints disabled", "err", err)
				store = nil
			} else {
				defer store.Close()
			}

			srv := server.New(doc, server.Options{
				Addr:   cfg.Server.Addr,
				Store:  store,
				Logger: logger,
			})
			logger.Info("serving document", "name", doc.Name, "addr", cfg.Server.Addr)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
