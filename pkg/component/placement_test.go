package component

import (
	"testing"

	"github.com/matzehuels/frameloom/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateCanvasTransform(t *testing.T) {
	tests := []struct {
		name  string
		patch TransformPatch
		check func(t *testing.T, p *CanvasPlacement)
	}{
		{
			name:  "Move",
			patch: TransformPatch{X: ptr(50.0), Y: ptr(-20.0)},
			check: func(t *testing.T, p *CanvasPlacement) {
				if p.X != 50 || p.Y != -20 {
					t.Errorf("position = (%v, %v), want (50, -20)", p.X, p.Y)
				}
			},
		},
		{
			name:  "PartialPatchLeavesRest",
			patch: TransformPatch{X: ptr(5.0)},
			check: func(t *testing.T, p *CanvasPlacement) {
				if p.Y != 0 || p.Scale != 1 {
					t.Errorf("untouched fields changed: %+v", p)
				}
			},
		},
		{
			name:  "ScaleClampHigh",
			patch: TransformPatch{Scale: ptr(50.0)},
			check: func(t *testing.T, p *CanvasPlacement) {
				if p.Scale != MaxScale {
					t.Errorf("scale = %v, want %v", p.Scale, MaxScale)
				}
			},
		},
		{
			name:  "ScaleClampLow",
			patch: TransformPatch{Scale: ptr(0.0001)},
			check: func(t *testing.T, p *CanvasPlacement) {
				if p.Scale != MinScale {
					t.Errorf("scale = %v, want %v", p.Scale, MinScale)
				}
			},
		},
		{
			name:  "RotationNormalized",
			patch: TransformPatch{Rotation: ptr(725.0)},
			check: func(t *testing.T, p *CanvasPlacement) {
				if p.Rotation != 5 {
					t.Errorf("rotation = %v, want 5", p.Rotation)
				}
			},
		},
		{
			name:  "NegativeRotationWraps",
			patch: TransformPatch{Rotation: ptr(-90.0)},
			check: func(t *testing.T, p *CanvasPlacement) {
				if p.Rotation != 270 {
					t.Errorf("rotation = %v, want 270", p.Rotation)
				}
			},
		},
		{
			name:  "ZIndex",
			patch: TransformPatch{ZIndex: ptr(3)},
			check: func(t *testing.T, p *CanvasPlacement) {
				if p.ZIndex != 3 {
					t.Errorf("z-index = %d, want 3", p.ZIndex)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewCanvasRoot("n", PrimitiveContainer, 0, 0)
			if err := n.UpdateCanvasTransform(tt.patch); err != nil {
				t.Fatalf("UpdateCanvasTransform: %v", err)
			}
			tt.check(t, n.Placement)
		})
	}
}

func TestUpdateCanvasTransformRejected(t *testing.T) {
	// Not a canvas root.
	child := NewPrimitive("child", PrimitiveText)
	err := child.UpdateCanvasTransform(TransformPatch{X: ptr(1.0)})
	if errors.GetCode(err) != errors.ErrCodeInvalidOperation {
		t.Errorf("non-root transform = %v, want INVALID_OPERATION", err)
	}

	// Locked root.
	root := NewCanvasRoot("root", PrimitiveContainer, 0, 0)
	if _, err := root.ToggleLock(); err != nil {
		t.Fatalf("ToggleLock: %v", err)
	}
	err = root.UpdateCanvasTransform(TransformPatch{X: ptr(1.0)})
	if errors.GetCode(err) != errors.ErrCodeInvalidOperation {
		t.Errorf("locked transform = %v, want INVALID_OPERATION", err)
	}
	if root.Placement.X != 0 {
		t.Error("locked node moved")
	}
}

func TestToggles(t *testing.T) {
	root := NewCanvasRoot("root", PrimitiveContainer, 0, 0)

	visible, err := root.ToggleVisibility()
	if err != nil || visible {
		t.Errorf("ToggleVisibility = (%v, %v), want (false, nil)", visible, err)
	}
	visible, _ = root.ToggleVisibility()
	if !visible {
		t.Error("second toggle should restore visibility")
	}

	locked, err := root.ToggleLock()
	if err != nil || !locked {
		t.Errorf("ToggleLock = (%v, %v), want (true, nil)", locked, err)
	}

	child := NewPrimitive("child", PrimitiveText)
	if _, err := child.ToggleVisibility(); errors.GetCode(err) != errors.ErrCodeInvalidOperation {
		t.Errorf("non-root ToggleVisibility = %v, want INVALID_OPERATION", err)
	}
	if _, err := child.ToggleLock(); errors.GetCode(err) != errors.ErrCodeInvalidOperation {
		t.Errorf("non-root ToggleLock = %v, want INVALID_OPERATION", err)
	}
}
