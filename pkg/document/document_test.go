package document

import (
	"testing"

	"github.com/matzehuels/frameloom/pkg/component"
	"github.com/matzehuels/frameloom/pkg/errors"
	"github.com/matzehuels/frameloom/pkg/property"
)

func TestNewDefault(t *testing.T) {
	doc := NewDefault("proj")

	if doc.Breakpoints.Len() != 3 {
		t.Fatalf("breakpoints = %d, want 3", doc.Breakpoints.Len())
	}
	if doc.Breakpoints.PrimaryID() != "desktop" {
		t.Errorf("primary = %q, want desktop", doc.Breakpoints.PrimaryID())
	}

	frames := doc.FrameIDs()
	want := []string{"frame-mobile", "frame-tablet", "frame-desktop"}
	if len(frames) != len(want) {
		t.Fatalf("frames = %v, want %v", frames, want)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frames[%d] = %q, want %q", i, frames[i], want[i])
		}
	}

	// Frames sit side by side without overlap.
	vps := doc.ViewportNodes()
	for i := 1; i < len(vps); i++ {
		prevEnd := vps[i-1].Placement.X + vps[i-1].Viewport.FrameWidth
		if vps[i].Placement.X <= prevEnd {
			t.Errorf("frame %q overlaps %q", vps[i].ID, vps[i-1].ID)
		}
	}

	if doc.AppTree().IsCanvasRoot() {
		t.Error("app tree root must not carry canvas placement")
	}
}

func TestAddCanvasRoot(t *testing.T) {
	doc := NewDefault("proj")

	free := component.NewCanvasRoot("note", component.PrimitiveText, 5000, 0)
	if err := doc.AddCanvasRoot(free); err != nil {
		t.Fatalf("AddCanvasRoot: %v", err)
	}
	if doc.FindNode("note") == nil {
		t.Error("free element not findable")
	}

	// A node without placement is not a canvas root.
	plain := component.NewPrimitive("plain", component.PrimitiveText)
	if err := doc.AddCanvasRoot(plain); errors.GetCode(err) != errors.ErrCodeInvalidOperation {
		t.Errorf("AddCanvasRoot(plain) = %v, want INVALID_OPERATION", err)
	}

	// Duplicate ids are rejected.
	dup := component.NewCanvasRoot("note", component.PrimitiveText, 0, 0)
	if err := doc.AddCanvasRoot(dup); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("AddCanvasRoot(dup) = %v, want INVALID_INPUT", err)
	}

	// A viewport must reference a known breakpoint.
	ghost := component.NewViewport("frame-ghost", "ghost", 500, 500, 0, 0)
	if err := doc.AddCanvasRoot(ghost); errors.GetCode(err) != errors.ErrCodeInvalidBreakpoint {
		t.Errorf("AddCanvasRoot(ghost viewport) = %v, want INVALID_BREAKPOINT", err)
	}

	if _, err := doc.RemoveCanvasRoot("note"); err != nil {
		t.Fatalf("RemoveCanvasRoot: %v", err)
	}
	if doc.FindNode("note") != nil {
		t.Error("removed root still findable")
	}
	if _, err := doc.RemoveCanvasRoot("note"); errors.GetCode(err) != errors.ErrCodeNodeNotFound {
		t.Errorf("second RemoveCanvasRoot = %v, want NODE_NOT_FOUND", err)
	}
}

func TestFrameBreakpoint(t *testing.T) {
	doc := NewDefault("proj")

	bp, err := doc.FrameBreakpoint("frame-tablet")
	if err != nil {
		t.Fatalf("FrameBreakpoint: %v", err)
	}
	if bp.ID != "tablet" || bp.MinWidth != 768 {
		t.Errorf("breakpoint = %+v, want tablet/768", bp)
	}

	if _, err := doc.FrameBreakpoint("nope"); errors.GetCode(err) != errors.ErrCodeFrameNotFound {
		t.Errorf("FrameBreakpoint(nope) = %v, want FRAME_NOT_FOUND", err)
	}
}

func TestRemoveBreakpoint(t *testing.T) {
	doc := NewDefault("proj")

	// Bound to a viewport frame: removal blocked.
	if _, err := doc.RemoveBreakpoint("tablet"); errors.GetCode(err) != errors.ErrCodeInvalidOperation {
		t.Fatalf("RemoveBreakpoint(bound) = %v, want INVALID_OPERATION", err)
	}

	// Free the breakpoint by removing its frame, then add a responsive
	// reference so removal produces a warning.
	if _, err := doc.RemoveCanvasRoot("frame-tablet"); err != nil {
		t.Fatalf("RemoveCanvasRoot: %v", err)
	}
	btn := component.NewPrimitive("btn", component.PrimitiveButton)
	btn.SetProperty("width", property.Map{"tablet": "700px", "base": "100px"})
	if err := doc.AppTree().AddChild(btn); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	warnings, err := doc.RemoveBreakpoint("tablet")
	if err != nil {
		t.Fatalf("RemoveBreakpoint: %v", err)
	}
	if len(warnings) != 1 || warnings[0].BreakpointID != "tablet" {
		t.Errorf("warnings = %v, want one tablet warning", warnings)
	}

	// The stale entry is left in place.
	raw, _ := btn.Property("width")
	if m, ok := raw.(property.Map); !ok || m["tablet"] != "700px" {
		t.Errorf("stale entry cleaned up: %v", raw)
	}

	// Primary removal stays blocked.
	if _, err := doc.RemoveBreakpoint("desktop"); errors.GetCode(err) != errors.ErrCodePrimaryBreakpoint {
		t.Errorf("RemoveBreakpoint(primary) = %v, want PRIMARY_BREAKPOINT", err)
	}
}

func TestNormalizeProps(t *testing.T) {
	doc := NewDefault("proj")

	n := component.NewPrimitive("n", component.PrimitiveText)
	n.SetProperty("width", map[string]any{"mobile": "90%", "base": "100px"})
	n.SetProperty("meta", map[string]any{"author": "x"})
	if err := doc.AppTree().AddChild(n); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	doc.NormalizeProps()

	w, _ := n.Property("width")
	if !property.IsResponsive(w) {
		t.Error("width not recognized as responsive")
	}
	m, _ := n.Property("meta")
	if property.IsResponsive(m) {
		t.Error("plain object wrongly tagged responsive")
	}
}
