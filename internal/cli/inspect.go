package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frameloom/pkg/component"
)

// newInspectCmd prints a document's breakpoints, frames, and component tree.
func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print a document's breakpoints, frames, and component tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(doc.Name))
			fmt.Println()

			fmt.Println(StyleHighlight.Render("Breakpoints"))
			for _, bp := range doc.Breakpoints.Ordered() {
				marker := " "
				if bp.ID == doc.Breakpoints.PrimaryID() {
					marker = StyleSuccess.Render("*")
				}
				fmt.Printf(" %s %s %s %s\n", marker,
					StyleValue.Render(bp.ID),
					StyleDim.Render(fmt.Sprintf("(%s)", bp.Label)),
					StyleDim.Render(fmt.Sprintf("%dpx+", bp.MinWidth)))
			}
			fmt.Println()

			fmt.Println(StyleHighlight.Render("Frames"))
			for _, vp := range doc.ViewportNodes() {
				fmt.Printf("   %s %s %s\n",
					StyleFrame.Render(vp.ID),
					StyleDim.Render(iconArrow),
					StyleDim.Render(fmt.Sprintf("%s %.0fx%.0f at (%.0f, %.0f)",
						vp.Viewport.BreakpointID,
						vp.Viewport.FrameWidth, vp.Viewport.FrameHeight,
						vp.Placement.X, vp.Placement.Y)))
			}
			fmt.Println()

			fmt.Println(StyleHighlight.Render("App Tree"))
			printTree(doc.AppTree(), 1)

			free := 0
			for _, root := range doc.CanvasRoots() {
				if !root.IsViewportNode() {
					free++
				}
			}
			if free > 0 {
				fmt.Println()
				fmt.Println(StyleHighlight.Render("Free Elements"))
				for _, root := range doc.CanvasRoots() {
					if root.IsViewportNode() {
						continue
					}
					printTree(root, 1)
				}
			}
			return nil
		},
	}
	return cmd
}

func printTree(n *component.Node, depth int) {
	kind := string(n.Primitive)
	if n.Kind == component.KindComposite {
		kind = "<" + n.Component + ">"
	}

	var extras []string
	if n.Props.Len() > 0 {
		extras = append(extras, fmt.Sprintf("%d props", n.Props.Len()))
	}
	if n.VisibleFrom != "" || n.VisibleUntil != "" {
		extras = append(extras, fmt.Sprintf("visible %s..%s", n.VisibleFrom, n.VisibleUntil))
	}
	suffix := ""
	if len(extras) > 0 {
		suffix = " " + StyleDim.Render("["+strings.Join(extras, ", ")+"]")
	}

	fmt.Printf("%s%s %s%s\n", strings.Repeat("  ", depth),
		StyleValue.Render(n.ID), StyleDim.Render(kind), suffix)
	for _, c := range n.Children() {
		printTree(c, depth+1)
	}
}
