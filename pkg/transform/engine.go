// Package transform owns the canvas's pan offset and zoom factor.
//
// The Engine is the single source of truth for the canvas transform. It is a
// plain observer-list broadcaster deliberately decoupled from any redraw
// cycle or UI-framework reactivity: every mutation notifies subscribers
// synchronously, once, in registration order, and the engine imposes no
// batching. Consumers that paint are expected to coalesce notifications
// themselves (e.g. once per display refresh) if they want frame-rate
// updates rather than per-input-event updates.
//
// # Coordinate spaces
//
// World space is the canvas's own coordinate system, independent of the
// current transform. Screen space is what the user sees:
//
//	screen = world*zoom + pan
//	world  = (screen - pan) / zoom
//
// Pan deltas are raw screen pixels with no zoom compensation - panning is
// 1:1 with cursor/wheel movement. Zoom-compensated dragging of individual
// canvas roots is a gesture-layer concern, not part of this contract.
package transform

import (
	"math"

	"github.com/matzehuels/frameloom/pkg/observability"
)

// Zoom clamp bounds and the step increment applied by ZoomStep.
const (
	MinZoom    = 0.1
	MaxZoom    = 5.0
	stepFactor = 1.05 // 5% per discrete zoom step
)

// ZoomDirection selects the sign of a discrete zoom step.
type ZoomDirection int

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

// State is the complete canvas transform.
type State struct {
	Zoom float64 `json:"zoom" bson:"zoom"`
	PanX float64 `json:"pan_x" bson:"pan_x"`
	PanY float64 `json:"pan_y" bson:"pan_y"`
}

// Subscriber receives the new state after every transform mutation.
type Subscriber func(State)

// Engine is the canvas transform state machine.
//
// The engine runs single-threaded and event-driven: all mutation happens
// synchronously in response to discrete input events, and each mutation
// fully completes - including subscriber notification - before the next
// event is processed. It is not safe for concurrent use.
type Engine struct {
	state State

	subscribers []*subscription
	nextSubID   int
}

type subscription struct {
	id int
	fn Subscriber
}

// New creates an Engine at the default transform {zoom: 1, pan: (0, 0)}.
func New() *Engine {
	return &Engine{state: State{Zoom: 1}}
}

// State returns the current transform.
func (e *Engine) State() State { return e.state }

// Pan shifts the canvas by raw screen-space deltas.
func (e *Engine) Pan(deltaScreenX, deltaScreenY float64) {
	e.state.PanX += deltaScreenX
	e.state.PanY += deltaScreenY
	e.notify()
}

// ZoomAroundPoint zooms by factor keeping the world point under the given
// screen position fixed: a point under the cursor before zooming stays under
// the cursor after zooming, for any factor. The resulting zoom is clamped to
// [MinZoom, MaxZoom].
func (e *Engine) ZoomAroundPoint(screenX, screenY, factor float64) {
	// World point under the cursor using the pre-zoom state.
	worldX := (screenX - e.state.PanX) / e.state.Zoom
	worldY := (screenY - e.state.PanY) / e.state.Zoom

	newZoom := clampZoom(e.state.Zoom * factor)

	// Recompute pan so the same world point stays under the cursor.
	e.state.Zoom = newZoom
	e.state.PanX = screenX - worldX*newZoom
	e.state.PanY = screenY - worldY*newZoom
	e.notify()
}

// ZoomStep applies one fixed ±5% zoom increment through the same
// cursor-centered formula, anchored at the supplied center (typically the
// viewport's visual center rather than a cursor position).
func (e *Engine) ZoomStep(dir ZoomDirection, screenCenterX, screenCenterY float64) {
	factor := stepFactor
	if dir == ZoomOut {
		factor = 1 / stepFactor
	}
	e.ZoomAroundPoint(screenCenterX, screenCenterY, factor)
}

// Reset restores the default transform {1, 0, 0}.
func (e *Engine) Reset() {
	e.state = State{Zoom: 1}
	e.notify()
}

// WorldToScreen converts world coordinates to screen coordinates under the
// current transform.
func (e *Engine) WorldToScreen(x, y float64) (sx, sy float64) {
	return x*e.state.Zoom + e.state.PanX, y*e.state.Zoom + e.state.PanY
}

// ScreenToWorld converts screen coordinates to world coordinates under the
// current transform.
func (e *Engine) ScreenToWorld(x, y float64) (wx, wy float64) {
	return (x - e.state.PanX) / e.state.Zoom, (y - e.state.PanY) / e.state.Zoom
}

// Subscribe registers fn to be called synchronously after every mutation,
// in registration order. The returned function unsubscribes; callers own
// teardown - an abandoned subscription is never collected.
func (e *Engine) Subscribe(fn Subscriber) (unsubscribe func()) {
	sub := &subscription{id: e.nextSubID, fn: fn}
	e.nextSubID++
	e.subscribers = append(e.subscribers, sub)
	return func() {
		for i, s := range e.subscribers {
			if s.id == sub.id {
				e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
				return
			}
		}
	}
}

// notify broadcasts the current state to all subscribers, once each, in
// registration order. No coalescing: one mutation, one notification.
func (e *Engine) notify() {
	observability.Editor().OnTransform(e.state.Zoom, e.state.PanX, e.state.PanY)
	for _, s := range e.subscribers {
		s.fn(e.state)
	}
}

func clampZoom(z float64) float64 {
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}
