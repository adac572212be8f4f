package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frameloom/pkg/document"
)

// newInitCmd creates a new document file with the default project layout.
func newInitCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init <file>",
		Short: "Create a new document with default breakpoints and frames",
		Long: `Creates a document with mobile (320px), tablet (768px), and desktop
(1280px) breakpoints, desktop as primary, and one viewport frame per
breakpoint laid out side by side on the canvas.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			logger := loggerFromContext(cmd.Context())

			doc := document.NewDefault(name)
			if err := document.WriteDocumentFile(doc, path); err != nil {
				return err
			}

			logger.Debug("document created", "path", path, "frames", len(doc.FrameIDs()))
			fmt.Printf("%s Created %s with %d breakpoints and %d frames\n",
				StyleSuccess.Render(iconSuccess), StyleValue.Render(path),
				doc.Breakpoints.Len(), len(doc.FrameIDs()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "untitled", "document name")
	return cmd
}
