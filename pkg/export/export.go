// Package export renders a document's component structure as Graphviz
// diagrams.
//
// The exported diagram shows the shared app tree and every canvas root with
// parent/child edges. It is a structural debugging and documentation view,
// not a visual rendering of the design itself.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/frameloom/pkg/component"
	"github.com/matzehuels/frameloom/pkg/document"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes property counts and visibility ranges in node
	// labels. When false, only the node id and type are shown.
	Detailed bool
}

// ToDOT converts a document's node structure to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(d *document.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph frameloom {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	writeSubtree(&buf, d.AppTree(), opts)
	for _, root := range d.CanvasRoots() {
		writeSubtree(&buf, root, opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeSubtree(buf *bytes.Buffer, n *component.Node, opts Options) {
	label := fmtLabel(n, opts.Detailed)
	attrs := fmtAttrs(n, label)
	fmt.Fprintf(buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))

	for _, c := range n.Children() {
		writeSubtree(buf, c, opts)
		fmt.Fprintf(buf, "  %q -> %q;\n", n.ID, c.ID)
	}
}

func fmtLabel(n *component.Node, detailed bool) string {
	kind := string(n.Primitive)
	if n.Kind == component.KindComposite {
		kind = "<" + n.Component + ">"
	}
	label := fmt.Sprintf("%s\n%s", n.ID, kind)
	if !detailed {
		return label
	}

	var parts []string
	if n.Props.Len() > 0 {
		parts = append(parts, fmt.Sprintf("props: %d", n.Props.Len()))
	}
	if n.VisibleFrom != "" || n.VisibleUntil != "" {
		parts = append(parts, fmt.Sprintf("visible: %s..%s", n.VisibleFrom, n.VisibleUntil))
	}
	if n.Viewport != nil {
		parts = append(parts, fmt.Sprintf("frame: %s %.0fx%.0f",
			n.Viewport.BreakpointID, n.Viewport.FrameWidth, n.Viewport.FrameHeight))
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *component.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.IsViewportNode():
		attrs = append(attrs, "fillcolor=lightblue")
	case n.IsCanvasRoot():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case n.Kind == component.KindComposite:
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	return attrs
}

// RenderSVG renders a DOT diagram to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
