// Package locate answers "where does this node render?" across viewport
// frames.
//
// One logical node materializes as zero or more render instances, one per
// viewport frame whose breakpoint the node is visible in. Instances are
// addressed by the composite key (frameID, nodeID); the node id alone is
// ambiguous by construction.
//
// The locator is read-only over the document and an externally supplied
// RenderSurface. It computes which instances exist from document state and
// asks the surface for their geometry; it never caches, so results always
// reflect the current tree.
package locate

import (
	"github.com/matzehuels/frameloom/pkg/breakpoint"
	"github.com/matzehuels/frameloom/pkg/component"
	"github.com/matzehuels/frameloom/pkg/document"
	"github.com/matzehuels/frameloom/pkg/errors"
	"github.com/matzehuels/frameloom/pkg/property"
)

// Rect is an axis-aligned rectangle in screen-space pixels, positioned under
// the canvas's current pan/zoom transform.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// RenderSurface provides per-frame geometry for materialized nodes.
// Implementations own layout; the locator owns materialization.
type RenderSurface interface {
	// InstanceBounds returns the current screen-space bounds of the node's
	// render instance in the given frame, or false if the surface holds no
	// live render target for that pair.
	InstanceBounds(frameID, nodeID string) (Rect, bool)
}

// Instance is one rendered occurrence of a node inside a viewport frame.
type Instance struct {
	FrameID      string `json:"frame_id" bson:"frame_id"`
	NodeID       string `json:"node_id" bson:"node_id"`
	BreakpointID string `json:"breakpoint_id" bson:"breakpoint_id"`
	Bounds       Rect   `json:"bounds" bson:"bounds"`
}

// Locator resolves nodes to their render instances.
type Locator struct {
	doc     *document.Document
	surface RenderSurface
}

// New creates a Locator over the given document and render surface.
func New(doc *document.Document, surface RenderSurface) *Locator {
	return &Locator{doc: doc, surface: surface}
}

// Rebind points the locator at a different document, typically after a
// snapshot load swaps the live document.
func (l *Locator) Rebind(doc *document.Document) { l.doc = doc }

// Locate returns the render instance of a node in one specific frame.
// Returns NODE_NOT_FOUND if the node does not exist, FRAME_NOT_FOUND for an
// unknown frame, and a nil instance without error when the node simply does
// not materialize in that frame.
func (l *Locator) Locate(frameID, nodeID string) (*Instance, error) {
	n := l.doc.FindNode(nodeID)
	if n == nil {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", nodeID)
	}
	bp, err := l.doc.FrameBreakpoint(frameID)
	if err != nil {
		return nil, err
	}
	if !l.materializes(n, frameID, bp) {
		return nil, nil
	}
	return l.instance(frameID, nodeID, bp.ID), nil
}

// FindAllInstances returns every render instance of the node across all
// viewport frames, ordered by the frames' breakpoint positions (ascending
// min width). Returns NODE_NOT_FOUND if the node does not exist; a node
// that materializes nowhere yields an empty slice and no error.
func (l *Locator) FindAllInstances(nodeID string) ([]Instance, error) {
	n := l.doc.FindNode(nodeID)
	if n == nil {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", nodeID)
	}

	var out []Instance
	for _, vp := range l.doc.ViewportNodes() {
		bp, ok := l.doc.Breakpoints.ByID(vp.Viewport.BreakpointID)
		if !ok {
			continue
		}
		if !l.materializes(n, vp.ID, bp) {
			continue
		}
		if inst := l.instance(vp.ID, nodeID, bp.ID); inst != nil {
			out = append(out, *inst)
		}
	}
	return out, nil
}

// HasMultipleInstances reports whether the node currently renders in more
// than one viewport frame.
func (l *Locator) HasMultipleInstances(nodeID string) (bool, error) {
	instances, err := l.FindAllInstances(nodeID)
	if err != nil {
		return false, err
	}
	return len(instances) > 1, nil
}

// materializes applies the document half of the instance-existence rule:
// the node must belong to the shared app tree or be the frame itself, sit
// inside its visibility range, and not resolve its "visible" property to
// false for the frame's breakpoint. The other half, a live render target on
// the surface, is checked by instance.
func (l *Locator) materializes(n *component.Node, frameID string, bp breakpoint.Breakpoint) bool {
	// Canvas roots other than the frame itself never materialize inside a
	// frame; they live directly on the canvas.
	if n.IsCanvasRoot() && n.ID != frameID {
		return false
	}
	if !l.inVisibilityRange(n, bp.ID) {
		return false
	}
	if raw, ok := n.Props.Get("visible"); ok {
		if v := property.Resolve(raw, bp.ID, l.doc.Breakpoints); v == false {
			return false
		}
	}
	return true
}

// inVisibilityRange checks the node's VisibleFrom/VisibleUntil bounds,
// inclusive on both ends, against the breakpoint's position in ascending
// min-width order. Bounds referencing breakpoints no longer in the set are
// ignored on that side.
func (l *Locator) inVisibilityRange(n *component.Node, breakpointID string) bool {
	set := l.doc.Breakpoints
	idx := set.IndexOf(breakpointID)
	if idx < 0 {
		return false
	}
	if n.VisibleFrom != "" {
		if from := set.IndexOf(n.VisibleFrom); from >= 0 && idx < from {
			return false
		}
	}
	if n.VisibleUntil != "" {
		if until := set.IndexOf(n.VisibleUntil); until >= 0 && idx > until {
			return false
		}
	}
	return true
}

// instance builds the Instance from the surface's live geometry. A pair the
// surface has not painted (frame never drawn, node clipped away) yields no
// instance: materialization requires a live render target, not just
// document state.
func (l *Locator) instance(frameID, nodeID, breakpointID string) *Instance {
	bounds, ok := l.surface.InstanceBounds(frameID, nodeID)
	if !ok {
		return nil
	}
	return &Instance{FrameID: frameID, NodeID: nodeID, BreakpointID: breakpointID, Bounds: bounds}
}
