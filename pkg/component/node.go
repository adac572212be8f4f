// Package component implements the Frameloom scene graph: a tree of typed
// nodes with raw (possibly responsive) property bags, exclusive parent/child
// ownership, and optional canvas placement for nodes that live directly on
// the infinite canvas.
//
// # One tree, many frames
//
// A document holds exactly one logical component tree. Viewport nodes do not
// own copies of it - they are canvas roots carrying a breakpoint context, and
// the render surface materializes the shared tree once per viewport frame.
// Anything addressing a rendered instance therefore uses the composite key
// (frameID, nodeID), never the node id alone.
//
// # Canvas placement
//
// Placement fields (position, scale, rotation, z-order, visibility, lock)
// exist only on canvas roots: viewport nodes and free-floating elements.
// A node with placement has no parent. Mutating placement on a non-root node
// is rejected with INVALID_OPERATION rather than silently ignored.
package component

import (
	"github.com/google/uuid"
)

// Kind is the closed variant tag distinguishing built-in visual elements
// from named reusable components.
type Kind string

const (
	// KindPrimitive maps to a built-in visual element type (see Primitive).
	KindPrimitive Kind = "primitive"
	// KindComposite is a named reusable component resolved by an external
	// registry; the core only carries its name.
	KindComposite Kind = "composite"
)

// Primitive enumerates the built-in visual element types.
// The set is small and fixed within the core; rendering specifics live in
// the external render surface.
type Primitive string

const (
	PrimitiveContainer Primitive = "container"
	PrimitiveText      Primitive = "text"
	PrimitiveImage     Primitive = "image"
	PrimitiveButton    Primitive = "button"
	// PrimitiveViewport is the specialized frame node standing for one
	// breakpoint's rendered rectangle on the canvas.
	PrimitiveViewport Primitive = "viewport"
)

// Default bounding size used when a node defines no width/height properties.
const (
	DefaultWidth  = 100.0
	DefaultHeight = 40.0
)

// Scale clamp bounds and rotation range for canvas placement.
const (
	MinScale = 0.1
	MaxScale = 10.0
)

// CanvasPlacement positions a canvas root in world units.
// Present only on nodes without a parent that sit directly on the canvas.
type CanvasPlacement struct {
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Scale    float64 `json:"scale" bson:"scale"`
	Rotation float64 `json:"rotation" bson:"rotation"` // degrees, normalized to [0, 360)
	ZIndex   int     `json:"z_index" bson:"z_index"`
	Visible  bool    `json:"visible" bson:"visible"`
	Locked   bool    `json:"locked" bson:"locked"`
}

// ViewportSpec marks a node as a viewport frame for one breakpoint.
type ViewportSpec struct {
	BreakpointID string  `json:"breakpoint_id" bson:"breakpoint_id"`
	FrameWidth   float64 `json:"frame_width" bson:"frame_width"`
	FrameHeight  float64 `json:"frame_height" bson:"frame_height"`
}

// Node is one element of the design: a container, text block, image,
// interactive widget, composite component instance, or viewport frame.
//
// The zero value is not usable - use NewPrimitive, NewComposite, or
// NewViewport. Node is not safe for concurrent use.
type Node struct {
	ID        string
	Kind      Kind
	Primitive Primitive // set when Kind == KindPrimitive
	Component string    // composite component name when Kind == KindComposite

	// Props is the raw property bag; values may be responsive maps.
	Props *Props

	// VisibleFrom / VisibleUntil optionally restrict which breakpoints the
	// node materializes in (inclusive bounds, by ascending min width).
	// Empty means unbounded on that side.
	VisibleFrom  string
	VisibleUntil string

	// Placement is set only on canvas roots.
	Placement *CanvasPlacement
	// Viewport is set only on viewport frame nodes.
	Viewport *ViewportSpec

	parent   *Node
	children []*Node
}

// NewID generates a fresh unique node id.
func NewID() string { return uuid.NewString() }

// NewPrimitive creates a primitive node of the given type.
// An empty id is replaced with a generated one.
func NewPrimitive(id string, p Primitive) *Node {
	if id == "" {
		id = NewID()
	}
	return &Node{ID: id, Kind: KindPrimitive, Primitive: p, Props: NewProps()}
}

// NewComposite creates a composite node referencing a named reusable
// component in an external registry.
func NewComposite(id, component string) *Node {
	if id == "" {
		id = NewID()
	}
	return &Node{ID: id, Kind: KindComposite, Component: component, Props: NewProps()}
}

// NewViewport creates a viewport frame node for the given breakpoint,
// placed on the canvas at (x, y) with the given frame dimensions.
func NewViewport(id, breakpointID string, frameWidth, frameHeight, x, y float64) *Node {
	n := NewPrimitive(id, PrimitiveViewport)
	n.Viewport = &ViewportSpec{
		BreakpointID: breakpointID,
		FrameWidth:   frameWidth,
		FrameHeight:  frameHeight,
	}
	n.Placement = &CanvasPlacement{X: x, Y: y, Scale: 1, Visible: true}
	return n
}

// NewCanvasRoot creates a free-floating primitive placed directly on the
// canvas (a canvas root that is not a viewport frame).
func NewCanvasRoot(id string, p Primitive, x, y float64) *Node {
	n := NewPrimitive(id, p)
	n.Placement = &CanvasPlacement{X: x, Y: y, Scale: 1, Visible: true}
	return n
}

// IsCanvasRoot reports whether the node has canvas placement fields set.
func (n *Node) IsCanvasRoot() bool { return n.Placement != nil }

// IsViewportNode reports whether the node is a viewport frame.
func (n *Node) IsViewportNode() bool { return n.Viewport != nil }

// Parent returns the owning parent, or nil for roots.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the ordered child list.
// The returned slice is the node's own; treat it as read-only and mutate
// through AddChild/RemoveChild.
func (n *Node) Children() []*Node { return n.children }

// SetProperty stores a raw property value. The value replaces any prior
// value for that key; responsive maps are replaced wholesale, never merged.
func (n *Node) SetProperty(key string, value any) {
	n.Props.Set(key, value)
}

// Property returns the raw (unresolved) value for key.
func (n *Node) Property(key string) (any, bool) {
	return n.Props.Get(key)
}

// BoundingSize returns the node's nominal width and height.
// Viewport nodes report their frame dimensions. Other nodes read numeric
// "width"/"height" properties (ground values only - responsive sizes are
// resolved by the layout pass, not here) and fall back to defaults.
func (n *Node) BoundingSize() (w, h float64) {
	if n.Viewport != nil {
		return n.Viewport.FrameWidth, n.Viewport.FrameHeight
	}
	w, h = DefaultWidth, DefaultHeight
	if v, ok := n.Props.Get("width"); ok {
		if f, ok := asNumber(v); ok {
			w = f
		}
	}
	if v, ok := n.Props.Get("height"); ok {
		if f, ok := asNumber(v); ok {
			h = f
		}
	}
	return w, h
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return 0, false
}
