// Package document defines the Frameloom document: a breakpoint set, the
// single shared app tree, and the canvas roots (viewport frames and
// free-floating elements) that live on the infinite canvas.
//
// The app tree is one logical component tree rendered once per viewport
// frame. Viewport nodes do not own copies of it; each carries only a
// breakpoint context used to resolve the shared tree's responsive
// properties.
package document

import (
	"fmt"
	"slices"

	"github.com/matzehuels/frameloom/pkg/breakpoint"
	"github.com/matzehuels/frameloom/pkg/component"
	"github.com/matzehuels/frameloom/pkg/errors"
	"github.com/matzehuels/frameloom/pkg/property"
)

// Document is the aggregate the engine operates on.
//
// Document is not safe for concurrent use; the engine runs single-threaded
// and event-driven, and all mutation goes through the defined operations.
type Document struct {
	Name        string
	Breakpoints *breakpoint.Set

	appTree     *component.Node
	canvasRoots []*component.Node
}

// New creates a document from an existing breakpoint set and app tree root.
func New(name string, set *breakpoint.Set, appTree *component.Node) (*Document, error) {
	if set == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "breakpoint set must not be nil")
	}
	if appTree == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "app tree must not be nil")
	}
	if appTree.IsCanvasRoot() {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "app tree root must not carry canvas placement")
	}
	return &Document{Name: name, Breakpoints: set, appTree: appTree}, nil
}

// Default breakpoints for a fresh project.
var defaultBreakpoints = []breakpoint.Breakpoint{
	{ID: "mobile", Label: "Mobile", MinWidth: 320},
	{ID: "tablet", Label: "Tablet", MinWidth: 768},
	{ID: "desktop", Label: "Desktop", MinWidth: 1280},
}

// NewDefault builds the default project: mobile/tablet/desktop breakpoints
// with desktop as primary, one viewport frame per breakpoint laid out side
// by side, and an app tree containing a root container.
func NewDefault(name string) *Document {
	set, err := breakpoint.NewSet(defaultBreakpoints, "desktop")
	if err != nil {
		panic(fmt.Sprintf("default breakpoint set: %v", err)) // static data, cannot fail
	}

	root := component.NewPrimitive("root", component.PrimitiveContainer)
	doc := &Document{Name: name, Breakpoints: set, appTree: root}

	frameHeights := map[string]float64{"mobile": 568, "tablet": 1024, "desktop": 800}
	const gap = 100.0
	x := 0.0
	for _, bp := range set.Ordered() {
		w := float64(bp.MinWidth)
		vp := component.NewViewport("frame-"+bp.ID, bp.ID, w, frameHeights[bp.ID], x, 0)
		doc.canvasRoots = append(doc.canvasRoots, vp)
		x += w + gap
	}
	return doc
}

// AppTree returns the root of the shared component tree.
func (d *Document) AppTree() *component.Node { return d.appTree }

// CanvasRoots returns all canvas-root nodes in insertion order.
func (d *Document) CanvasRoots() []*component.Node { return d.canvasRoots }

// AddCanvasRoot places a node directly on the canvas.
// The node must carry canvas placement, must not duplicate an existing id,
// and a viewport node must reference a breakpoint present in the set.
func (d *Document) AddCanvasRoot(n *component.Node) error {
	if n == nil {
		return errors.New(errors.ErrCodeInvalidInput, "node must not be nil")
	}
	if !n.IsCanvasRoot() {
		return errors.New(errors.ErrCodeInvalidOperation, "node %q has no canvas placement", n.ID)
	}
	if d.FindNode(n.ID) != nil {
		return errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", n.ID)
	}
	if n.Viewport != nil && !d.Breakpoints.Contains(n.Viewport.BreakpointID) {
		return errors.New(errors.ErrCodeInvalidBreakpoint,
			"viewport %q references unknown breakpoint %q", n.ID, n.Viewport.BreakpointID)
	}
	d.canvasRoots = append(d.canvasRoots, n)
	return nil
}

// RemoveCanvasRoot removes the canvas root with the given id and returns it.
func (d *Document) RemoveCanvasRoot(id string) (*component.Node, error) {
	idx := slices.IndexFunc(d.canvasRoots, func(n *component.Node) bool { return n.ID == id })
	if idx < 0 {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no canvas root with id %q", id)
	}
	n := d.canvasRoots[idx]
	d.canvasRoots = slices.Delete(d.canvasRoots, idx, idx+1)
	return n, nil
}

// ViewportNodes returns the canvas roots that are viewport frames, ordered
// by their breakpoint's position in the set (ascending min width).
func (d *Document) ViewportNodes() []*component.Node {
	var vps []*component.Node
	for _, n := range d.canvasRoots {
		if n.IsViewportNode() {
			vps = append(vps, n)
		}
	}
	slices.SortStableFunc(vps, func(a, b *component.Node) int {
		return d.Breakpoints.IndexOf(a.Viewport.BreakpointID) - d.Breakpoints.IndexOf(b.Viewport.BreakpointID)
	})
	return vps
}

// FrameIDs returns the ids of all viewport frames.
func (d *Document) FrameIDs() []string {
	vps := d.ViewportNodes()
	ids := make([]string, len(vps))
	for i, vp := range vps {
		ids[i] = vp.ID
	}
	return ids
}

// FrameBreakpoint returns the breakpoint a viewport frame resolves against.
func (d *Document) FrameBreakpoint(frameID string) (breakpoint.Breakpoint, error) {
	for _, n := range d.canvasRoots {
		if n.ID == frameID && n.Viewport != nil {
			bp, ok := d.Breakpoints.ByID(n.Viewport.BreakpointID)
			if !ok {
				return breakpoint.Breakpoint{}, errors.New(errors.ErrCodeInvalidBreakpoint,
					"frame %q references unknown breakpoint %q", frameID, n.Viewport.BreakpointID)
			}
			return bp, nil
		}
	}
	return breakpoint.Breakpoint{}, errors.New(errors.ErrCodeFrameNotFound, "no viewport frame with id %q", frameID)
}

// FindNode searches the app tree and every canvas-root subtree for a node id.
// Returns nil if not found.
func (d *Document) FindNode(id string) *component.Node {
	if n := d.appTree.FindByID(id); n != nil {
		return n
	}
	for _, root := range d.canvasRoots {
		if n := root.FindByID(id); n != nil {
			return n
		}
	}
	return nil
}

// RemoveBreakpoint removes a breakpoint from the set and reports, without
// cleaning up, every responsive-map entry that still references it. Removal
// of the primary breakpoint fails with PRIMARY_BREAKPOINT and viewport
// frames bound to the breakpoint block removal with INVALID_OPERATION.
//
// Stale responsive entries are a tolerated integrity warning: the resolver
// skips them through its fallback chain, and they keep round-tripping
// through serialization untouched.
func (d *Document) RemoveBreakpoint(id string) ([]property.Warning, error) {
	for _, vp := range d.ViewportNodes() {
		if vp.Viewport.BreakpointID == id {
			return nil, errors.New(errors.ErrCodeInvalidOperation,
				"breakpoint %q is bound to viewport frame %q", id, vp.ID)
		}
	}
	if err := d.Breakpoints.Remove(id); err != nil {
		return nil, err
	}

	var warnings []property.Warning
	for _, n := range d.allNodes() {
		for _, key := range n.Props.Keys() {
			raw, _ := n.Props.Get(key)
			m, ok := raw.(property.Map)
			if !ok {
				continue
			}
			if _, ok := m[id]; ok {
				warnings = append(warnings, property.Warning{
					BreakpointID: id,
					Detail:       fmt.Sprintf("node %q property %q still references removed breakpoint %q", n.ID, key, id),
				})
			}
		}
	}
	return warnings, nil
}

// NormalizeProps re-tags responsive maps across the whole document. Called
// after deserialization, when property values arrive as plain JSON objects.
func (d *Document) NormalizeProps() {
	for _, n := range d.allNodes() {
		for _, key := range n.Props.Keys() {
			raw, _ := n.Props.Get(key)
			n.Props.Set(key, property.Normalize(raw, d.Breakpoints))
		}
	}
}

func (d *Document) allNodes() []*component.Node {
	nodes := d.appTree.Descendants()
	for _, root := range d.canvasRoots {
		nodes = append(nodes, root.Descendants()...)
	}
	return nodes
}
