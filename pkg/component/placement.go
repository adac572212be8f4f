package component

import (
	"math"

	"github.com/matzehuels/frameloom/pkg/errors"
)

// TransformPatch is a partial update to a canvas root's placement.
// Nil fields leave the current value unchanged.
type TransformPatch struct {
	X        *float64
	Y        *float64
	Scale    *float64
	Rotation *float64
	ZIndex   *int
}

// UpdateCanvasTransform applies a partial placement update to a canvas root.
//
// Scale is clamped to [MinScale, MaxScale] and rotation is normalized to
// [0, 360). Calling this on a node without canvas placement is rejected with
// INVALID_OPERATION - placement is only meaningful at canvas roots - as is
// moving a locked node.
func (n *Node) UpdateCanvasTransform(patch TransformPatch) error {
	if n.Placement == nil {
		return errors.New(errors.ErrCodeInvalidOperation, "node %q is not a canvas root", n.ID)
	}
	if n.Placement.Locked {
		return errors.New(errors.ErrCodeInvalidOperation, "node %q is locked", n.ID)
	}
	if patch.X != nil {
		n.Placement.X = *patch.X
	}
	if patch.Y != nil {
		n.Placement.Y = *patch.Y
	}
	if patch.Scale != nil {
		n.Placement.Scale = clampScale(*patch.Scale)
	}
	if patch.Rotation != nil {
		n.Placement.Rotation = normalizeRotation(*patch.Rotation)
	}
	if patch.ZIndex != nil {
		n.Placement.ZIndex = *patch.ZIndex
	}
	return nil
}

// ToggleVisibility flips the canvas root's visible flag and returns the new
// value. Rejected with INVALID_OPERATION on non-root nodes.
func (n *Node) ToggleVisibility() (bool, error) {
	if n.Placement == nil {
		return false, errors.New(errors.ErrCodeInvalidOperation, "node %q is not a canvas root", n.ID)
	}
	n.Placement.Visible = !n.Placement.Visible
	return n.Placement.Visible, nil
}

// ToggleLock flips the canvas root's locked flag and returns the new value.
// Rejected with INVALID_OPERATION on non-root nodes.
func (n *Node) ToggleLock() (bool, error) {
	if n.Placement == nil {
		return false, errors.New(errors.ErrCodeInvalidOperation, "node %q is not a canvas root", n.ID)
	}
	n.Placement.Locked = !n.Placement.Locked
	return n.Placement.Locked, nil
}

func clampScale(s float64) float64 {
	return math.Min(MaxScale, math.Max(MinScale, s))
}

// normalizeRotation maps any angle in degrees into [0, 360).
func normalizeRotation(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	return r
}
