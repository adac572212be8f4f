package transform

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestNewDefaults(t *testing.T) {
	e := New()
	if got := e.State(); got.Zoom != 1 || got.PanX != 0 || got.PanY != 0 {
		t.Errorf("State = %+v, want {1 0 0}", got)
	}
}

func TestPan(t *testing.T) {
	e := New()
	e.Pan(10, -20)
	e.Pan(5, 5)

	if got := e.State(); got.PanX != 15 || got.PanY != -15 {
		t.Errorf("State = %+v, want pan (15, -15)", got)
	}
}

// Panning is raw screen-space movement: the same delta shifts the canvas by
// the same number of screen pixels at any zoom level.
func TestPanIgnoresZoom(t *testing.T) {
	e := New()
	e.ZoomAroundPoint(0, 0, 4)
	e.Pan(10, 0)
	if got := e.State().PanX; got != 10 {
		t.Errorf("PanX = %v, want 10", got)
	}
}

func TestZoomAroundPointKeepsCursorFixed(t *testing.T) {
	e := New()
	e.Pan(30, -12)

	const sx, sy = 200.0, 150.0
	wx, wy := e.ScreenToWorld(sx, sy)

	e.ZoomAroundPoint(sx, sy, 1.8)

	gx, gy := e.WorldToScreen(wx, wy)
	if math.Abs(gx-sx) > 1e-9 || math.Abs(gy-sy) > 1e-9 {
		t.Errorf("world point moved to (%v, %v), want (%v, %v)", gx, gy, sx, sy)
	}
}

func TestZoomClamp(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		want   float64
	}{
		{"ClampMax", 100, MaxZoom},
		{"ClampMin", 0.001, MinZoom},
		{"Within", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			e.ZoomAroundPoint(0, 0, tt.factor)
			if got := e.State().Zoom; got != tt.want {
				t.Errorf("Zoom = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZoomStep(t *testing.T) {
	e := New()
	e.ZoomStep(ZoomIn, 0, 0)
	if got := e.State().Zoom; math.Abs(got-1.05) > 1e-9 {
		t.Errorf("Zoom after step in = %v, want 1.05", got)
	}
	e.ZoomStep(ZoomOut, 0, 0)
	if got := e.State().Zoom; math.Abs(got-1) > 1e-9 {
		t.Errorf("Zoom after step out = %v, want 1", got)
	}
}

func TestReset(t *testing.T) {
	e := New()
	e.Pan(100, 100)
	e.ZoomAroundPoint(50, 50, 3)
	e.Reset()

	if got := e.State(); got.Zoom != 1 || got.PanX != 0 || got.PanY != 0 {
		t.Errorf("State after Reset = %+v, want {1 0 0}", got)
	}
}

func TestSubscribe(t *testing.T) {
	e := New()

	var order []string
	e.Subscribe(func(State) { order = append(order, "first") })
	unsub := e.Subscribe(func(State) { order = append(order, "second") })

	e.Pan(1, 1)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("notification order = %v, want [first second]", order)
	}

	// Unsubscribed observers stop receiving; remaining order is preserved.
	order = nil
	unsub()
	e.Pan(1, 1)
	if len(order) != 1 || order[0] != "first" {
		t.Errorf("after unsubscribe: %v, want [first]", order)
	}

	// Double unsubscribe is harmless.
	unsub()
	e.Pan(1, 1)
}

func TestSubscriberReceivesState(t *testing.T) {
	e := New()

	var got State
	e.Subscribe(func(s State) { got = s })
	e.Pan(7, 9)

	if got.PanX != 7 || got.PanY != 9 || got.Zoom != 1 {
		t.Errorf("subscriber state = %+v, want {1 7 9}", got)
	}
}

func TestRoundTripConversion(t *testing.T) {
	e := New()
	e.Pan(-40, 25)
	e.ZoomAroundPoint(10, 10, 2.5)

	wx, wy := 123.0, -456.0
	sx, sy := e.WorldToScreen(wx, wy)
	gx, gy := e.ScreenToWorld(sx, sy)

	if math.Abs(gx-wx) > 1e-9 || math.Abs(gy-wy) > 1e-9 {
		t.Errorf("round trip = (%v, %v), want (%v, %v)", gx, gy, wx, wy)
	}
}

// =============================================================================
// Property-based tests
// =============================================================================

// The cursor-centered invariant holds for any sequence of transforms, as
// long as the zoom clamp did not engage on the final zoom.
func TestZoomCursorInvariantProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New()

		// Random prior state.
		e.Pan(
			rapid.Float64Range(-1e4, 1e4).Draw(t, "panX"),
			rapid.Float64Range(-1e4, 1e4).Draw(t, "panY"),
		)
		e.ZoomAroundPoint(0, 0, rapid.Float64Range(0.5, 2).Draw(t, "preZoom"))

		sx := rapid.Float64Range(-2e3, 2e3).Draw(t, "sx")
		sy := rapid.Float64Range(-2e3, 2e3).Draw(t, "sy")
		factor := rapid.Float64Range(0.5, 2).Draw(t, "factor")

		wx, wy := e.ScreenToWorld(sx, sy)
		before := e.State().Zoom
		e.ZoomAroundPoint(sx, sy, factor)
		after := e.State().Zoom

		if after != clampZoom(before*factor) {
			t.Fatalf("zoom = %v, want %v", after, clampZoom(before*factor))
		}

		gx, gy := e.WorldToScreen(wx, wy)
		if math.Abs(gx-sx) > 1e-6 || math.Abs(gy-sy) > 1e-6 {
			t.Fatalf("cursor moved: (%v, %v) != (%v, %v)", gx, gy, sx, sy)
		}
	})
}

func TestZoomAlwaysClampedProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New()
		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			e.ZoomAroundPoint(0, 0, rapid.Float64Range(0.01, 100).Draw(t, "factor"))
			z := e.State().Zoom
			if z < MinZoom || z > MaxZoom {
				t.Fatalf("zoom %v escaped [%v, %v]", z, MinZoom, MaxZoom)
			}
		}
	})
}
