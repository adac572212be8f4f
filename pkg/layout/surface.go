// Package layout materializes the shared app tree into per-frame geometry.
//
// The Surface is a deliberately simple block-flow layout: containers stack
// their children vertically (or horizontally when flexDirection resolves to
// "row") with resolved padding and gap, and leaf nodes take their resolved
// width/height or the component defaults. It exists to give the locator and
// selection tracker a concrete RenderSurface; it is not a CSS engine.
//
// Geometry is computed per paint. Repaint walks every viewport frame,
// resolves each node's style for the frame's breakpoint, and caches world
// space bounds keyed by (frameID, nodeID). Queries convert the cached world
// boxes through the transform engine's current pan/zoom, so bounds follow
// the canvas without a repaint. Between paints the layout itself is stale by
// design; callers repaint after document mutations.
package layout

import (
	"github.com/matzehuels/frameloom/pkg/breakpoint"
	"github.com/matzehuels/frameloom/pkg/component"
	"github.com/matzehuels/frameloom/pkg/document"
	"github.com/matzehuels/frameloom/pkg/locate"
	"github.com/matzehuels/frameloom/pkg/property"
	"github.com/matzehuels/frameloom/pkg/transform"
)

type instanceKey struct {
	frameID string
	nodeID  string
}

// Surface computes and caches world-space bounds for render instances and
// serves them in screen space under the engine's current transform.
// It implements locate.RenderSurface.
type Surface struct {
	doc    *document.Document
	engine *transform.Engine
	bounds map[instanceKey]locate.Rect
}

// New creates a Surface over the document and engine and runs an initial
// paint.
func New(doc *document.Document, engine *transform.Engine) *Surface {
	s := &Surface{doc: doc, engine: engine, bounds: make(map[instanceKey]locate.Rect)}
	s.Repaint()
	return s
}

// InstanceBounds returns the current screen-space bounds for a render
// instance, or false if the last paint produced no geometry for it. The
// cached world box is pushed through the engine's pan/zoom on every call, so
// the answer tracks the live transform between repaints.
func (s *Surface) InstanceBounds(frameID, nodeID string) (locate.Rect, bool) {
	r, ok := s.bounds[instanceKey{frameID, nodeID}]
	if !ok {
		return locate.Rect{}, false
	}
	x, y := s.engine.WorldToScreen(r.X, r.Y)
	zoom := s.engine.State().Zoom
	return locate.Rect{X: x, Y: y, Width: r.Width * zoom, Height: r.Height * zoom}, true
}

// Rebind points the surface at a different document and repaints.
func (s *Surface) Rebind(doc *document.Document) {
	s.doc = doc
	s.Repaint()
}

// Repaint recomputes geometry for every viewport frame from current
// document state, replacing the previous cache wholesale.
func (s *Surface) Repaint() {
	s.bounds = make(map[instanceKey]locate.Rect)
	for _, vp := range s.doc.ViewportNodes() {
		bp, ok := s.doc.Breakpoints.ByID(vp.Viewport.BreakpointID)
		if !ok {
			continue
		}
		s.paintFrame(vp, bp)
	}
}

// paintFrame lays the shared app tree into one viewport frame. The frame
// rectangle itself is an instance too, addressed as (frameID, frameID).
func (s *Surface) paintFrame(vp *component.Node, bp breakpoint.Breakpoint) {
	scale := 1.0
	if vp.Placement != nil && vp.Placement.Scale > 0 {
		scale = vp.Placement.Scale
	}
	origin := locate.Rect{
		X:      vp.Placement.X,
		Y:      vp.Placement.Y,
		Width:  vp.Viewport.FrameWidth * scale,
		Height: vp.Viewport.FrameHeight * scale,
	}
	s.bounds[instanceKey{vp.ID, vp.ID}] = origin

	p := &framePainter{surface: s, frameID: vp.ID, bp: bp, scale: scale}
	p.paintNode(s.doc.AppTree(), origin.X, origin.Y, vp.Viewport.FrameWidth)
}

// framePainter carries per-frame paint state through the recursive walk.
type framePainter struct {
	surface *Surface
	frameID string
	bp      breakpoint.Breakpoint
	scale   float64
}

// paintNode lays out one node at world position (x, y) with the given
// frame-local available width, records its bounds, and returns the
// frame-local height it occupies. Hidden nodes occupy no space and record
// no bounds, and neither does their subtree.
func (p *framePainter) paintNode(n *component.Node, x, y, availWidth float64) float64 {
	style, _ := property.SplitResolved(n.Props, p.bp.ID, p.surface.doc.Breakpoints)
	if hidden(n, p.bp.ID, p.surface.doc.Breakpoints) {
		return 0
	}

	width := availWidth
	if w, ok := styleNumber(style.Style, "width"); ok {
		width = w
	}
	padding, _ := styleNumber(style.Style, "padding")
	gap, _ := styleNumber(style.Style, "gap")
	row := style.Style["flexDirection"] == "row"

	contentHeight := 0.0
	if len(n.Children()) > 0 {
		innerX := x + padding*p.scale
		innerY := y + padding*p.scale
		innerWidth := width - 2*padding
		if row {
			childWidth := innerWidth
			if cnt := len(n.Children()); cnt > 0 {
				childWidth = (innerWidth - gap*float64(cnt-1)) / float64(cnt)
			}
			maxH := 0.0
			cx := innerX
			for _, c := range n.Children() {
				h := p.paintNode(c, cx, innerY, childWidth)
				if h > maxH {
					maxH = h
				}
				cx += (childWidth + gap) * p.scale
			}
			contentHeight = maxH
		} else {
			cy := innerY
			for i, c := range n.Children() {
				if i > 0 {
					cy += gap * p.scale
					contentHeight += gap
				}
				h := p.paintNode(c, innerX, cy, innerWidth)
				cy += h * p.scale
				contentHeight += h
			}
		}
		contentHeight += 2 * padding
	}

	height := contentHeight
	if h, ok := styleNumber(style.Style, "height"); ok {
		height = h
	}
	if height == 0 && len(n.Children()) == 0 {
		_, height = n.BoundingSize()
	}

	p.surface.bounds[instanceKey{p.frameID, n.ID}] = locate.Rect{
		X:      x,
		Y:      y,
		Width:  width * p.scale,
		Height: height * p.scale,
	}
	return height
}

// hidden reports whether the node is suppressed for this breakpoint, either
// by its visibility range or by a "visible" property resolving to false.
func hidden(n *component.Node, breakpointID string, set *breakpoint.Set) bool {
	idx := set.IndexOf(breakpointID)
	if n.VisibleFrom != "" {
		if from := set.IndexOf(n.VisibleFrom); from >= 0 && idx < from {
			return true
		}
	}
	if n.VisibleUntil != "" {
		if until := set.IndexOf(n.VisibleUntil); until >= 0 && idx > until {
			return true
		}
	}
	if raw, ok := n.Props.Get("visible"); ok {
		if v := property.Resolve(raw, breakpointID, set); v == false {
			return true
		}
	}
	return false
}

func styleNumber(style map[string]any, key string) (float64, bool) {
	switch v := style[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
