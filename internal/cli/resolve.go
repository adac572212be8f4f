package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frameloom/pkg/errors"
	"github.com/matzehuels/frameloom/pkg/property"
)

// newResolveCmd resolves a node's property bag for one breakpoint and
// prints the style/behavior split.
func newResolveCmd() *cobra.Command {
	var breakpointID string

	cmd := &cobra.Command{
		Use:   "resolve <file> <node-id>",
		Short: "Resolve a node's properties for a breakpoint",
		Long: `Resolves every property of the node for the given breakpoint using the
fallback chain (exact match, primary breakpoint, nearest smaller, nearest
larger, base) and prints the resulting style and behavior surfaces.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			nodeID := args[1]
			n := doc.FindNode(nodeID)
			if n == nil {
				return errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", nodeID)
			}

			if breakpointID == "" {
				breakpointID = doc.Breakpoints.PrimaryID()
			}

			resolved, warnings := property.SplitResolved(n.Props, breakpointID, doc.Breakpoints)

			fmt.Printf("%s %s %s %s\n", StyleTitle.Render(nodeID),
				StyleDim.Render("@"), StyleHighlight.Render(breakpointID), StyleDim.Render("breakpoint"))
			fmt.Println()

			printSurface("Style", resolved.Style)
			printSurface("Behavior", resolved.Behavior)

			for _, w := range warnings {
				fmt.Printf("%s %s\n", StyleWarning.Render(iconWarning), StyleWarning.Render(w.String()))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&breakpointID, "breakpoint", "b", "", "breakpoint id (default: primary)")
	return cmd
}

func printSurface(title string, values map[string]any) {
	fmt.Println(StyleHighlight.Render(title))
	if len(values) == 0 {
		fmt.Printf("   %s\n\n", StyleDim.Render("(empty)"))
		return
	}
	for _, k := range slices.Sorted(maps.Keys(values)) {
		fmt.Printf("   %s %s %v\n", StyleValue.Render(k), StyleDim.Render("="), values[k])
	}
	fmt.Println()
}
