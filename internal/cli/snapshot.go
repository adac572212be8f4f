package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frameloom/pkg/config"
	"github.com/matzehuels/frameloom/pkg/document"
	"github.com/matzehuels/frameloom/pkg/snapshot"
)

// newSnapshotCmd groups snapshot management subcommands.
func newSnapshotCmd(loadCfg func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save, load, list, and delete named snapshots",
	}

	cmd.AddCommand(newSnapshotSaveCmd(loadCfg))
	cmd.AddCommand(newSnapshotLoadCmd(loadCfg))
	cmd.AddCommand(newSnapshotListCmd(loadCfg))
	cmd.AddCommand(newSnapshotDeleteCmd(loadCfg))
	return cmd
}

func withStore(loadCfg func() (config.Config, error), cmd *cobra.Command, fn func(snapshot.Store) error) error {
	cfg, err := loadCfg()
	if err != nil {
		return err
	}
	store, err := openStore(cmd.Context(), cfg.Snapshot)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newSnapshotSaveCmd(loadCfg func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "save <file> <name>",
		Short: "Save a document as a named snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			return withStore(loadCfg, cmd, func(store snapshot.Store) error {
				prog := newProgress(logger)
				if err := snapshot.Save(cmd.Context(), store, args[1], doc); err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Saved snapshot %q", args[1]))
				return nil
			})
		},
	}
}

func newSnapshotLoadCmd(loadCfg func() (config.Config, error)) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Load a snapshot and write it to a document file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			return withStore(loadCfg, cmd, func(store snapshot.Store) error {
				prog := newProgress(logger)
				doc, err := snapshot.Load(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					return document.WriteDocument(doc, cmd.OutOrStdout())
				}
				if err := document.WriteDocumentFile(doc, output); err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Loaded snapshot %q into %s", args[0], output))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func newSnapshotListCmd(loadCfg func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshot names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(loadCfg, cmd, func(store snapshot.Store) error {
				names, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(names) == 0 {
					fmt.Println(StyleDim.Render("no snapshots"))
					return nil
				}
				for _, name := range names {
					fmt.Printf("%s %s\n", StyleDim.Render(iconInfo), StyleValue.Render(name))
				}
				return nil
			})
		},
	}
}

func newSnapshotDeleteCmd(loadCfg func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(loadCfg, cmd, func(store snapshot.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Printf("%s Deleted snapshot %q\n", StyleSuccess.Render(iconSuccess), args[0])
				return nil
			})
		},
	}
}
