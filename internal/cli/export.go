package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frameloom/pkg/export"
)

// newExportCmd renders a document's component structure as DOT or SVG.
func newExportCmd() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Render the component structure as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			dot := export.ToDOT(doc, export.Options{Detailed: detailed})

			var data []byte
			switch strings.ToLower(format) {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = export.RenderSVG(dot)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (use dot or svg)", format)
			}

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Exported %s", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include property counts and visibility ranges")
	return cmd
}
