// Package selection tracks which node is selected and where its render
// instances appear across viewport frames.
//
// Selecting a node in one frame highlights every instance of that node: the
// frame the user clicked in holds the primary instance, every other frame a
// secondary one. The tracker re-derives its instance list from the document
// whenever the tree mutates or the canvas transform changes, so overlays
// never outlive the geometry they decorate.
package selection

import (
	"github.com/matzehuels/frameloom/pkg/errors"
	"github.com/matzehuels/frameloom/pkg/locate"
	"github.com/matzehuels/frameloom/pkg/observability"
	"github.com/matzehuels/frameloom/pkg/transform"
)

// State is the tracker's lifecycle state.
type State string

const (
	// StateIdle means nothing is selected.
	StateIdle State = "idle"
	// StateSingleFrame means the selected node renders in exactly one frame.
	StateSingleFrame State = "single_frame"
	// StateMultiFrame means the selected node renders in several frames at
	// once; one instance is primary, the rest secondary.
	StateMultiFrame State = "multi_frame"
)

// SelectedInstance is one highlighted render instance. Exactly one instance
// per selection is primary.
type SelectedInstance struct {
	locate.Instance
	Primary bool `json:"primary" bson:"primary"`
}

// Tracker owns the current selection.
//
// Like the rest of the engine it is single-threaded and event-driven; all
// methods must be called from the same goroutine that mutates the document.
type Tracker struct {
	locator *locate.Locator

	state          State
	nodeID         string
	primaryFrameID string
	instances      []SelectedInstance

	unsubscribe func()
}

// New creates an idle Tracker over the given locator.
func New(locator *locate.Locator) *Tracker {
	return &Tracker{locator: locator, state: StateIdle}
}

// AttachTransform subscribes the tracker to a transform engine so selection
// overlays are recomputed after every pan/zoom mutation. Call Close to
// release the subscription.
func (t *Tracker) AttachTransform(engine *transform.Engine) {
	if t.unsubscribe != nil {
		t.unsubscribe()
	}
	t.unsubscribe = engine.Subscribe(func(transform.State) {
		t.refresh()
	})
}

// Close releases the transform subscription, if any.
func (t *Tracker) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

// State returns the current lifecycle state.
func (t *Tracker) State() State { return t.state }

// SelectedNodeID returns the selected node id, or "" when idle.
func (t *Tracker) SelectedNodeID() string { return t.nodeID }

// PrimaryFrameID returns the frame holding the primary instance, or "" when
// idle.
func (t *Tracker) PrimaryFrameID() string { return t.primaryFrameID }

// Instances returns the highlighted instances, primary first. The slice is
// owned by the tracker; callers must not mutate it.
func (t *Tracker) Instances() []SelectedInstance { return t.instances }

// Select makes the node the current selection with the given frame as
// primary. Every call recomputes the instance set from the locator, so
// reselecting the already-selected node is idempotent and picks up any
// geometry the surface produced since the last call. A node with zero
// current instances yields an idle tracker and no error: there is nothing
// to highlight, but the request was well-formed.
//
// Returns NODE_NOT_FOUND for an unknown node and FRAME_NOT_FOUND for an
// unknown frame.
func (t *Tracker) Select(nodeID, primaryFrameID string) error {
	instances, err := t.locator.FindAllInstances(nodeID)
	if err != nil {
		return err
	}
	if primaryFrameID != "" {
		if _, err := t.locator.Locate(primaryFrameID, nodeID); err != nil {
			return err
		}
	}

	t.nodeID = nodeID
	t.primaryFrameID = primaryFrameID
	t.apply(instances)
	observability.Editor().OnSelect(nodeID, primaryFrameID, len(instances))
	return nil
}

// Deselect returns the tracker to idle. Deselecting an idle tracker is a
// no-op.
func (t *Tracker) Deselect() {
	if t.state == StateIdle {
		return
	}
	t.clear()
	observability.Editor().OnDeselect()
}

// CyclePrimary moves the primary designation to the next instance in frame
// order, wrapping around. A no-op unless in the multi-frame state.
func (t *Tracker) CyclePrimary() {
	if t.state != StateMultiFrame {
		return
	}
	instances, err := t.locator.FindAllInstances(t.nodeID)
	if err != nil || len(instances) < 2 {
		return
	}
	next := 0
	for i, inst := range instances {
		if inst.FrameID == t.primaryFrameID {
			next = (i + 1) % len(instances)
			break
		}
	}
	t.primaryFrameID = instances[next].FrameID
	t.apply(instances)
}

// OnTreeMutation re-derives the selection after a document mutation. If the
// selected node no longer exists the tracker falls back to idle; if its
// instance set changed (a frame added or removed, visibility toggled) the
// state and highlight list follow.
func (t *Tracker) OnTreeMutation() {
	t.refresh()
}

func (t *Tracker) refresh() {
	if t.state == StateIdle {
		return
	}
	instances, err := t.locator.FindAllInstances(t.nodeID)
	if err != nil {
		if errors.GetCode(err) == errors.ErrCodeNodeNotFound {
			t.clear()
			observability.Editor().OnDeselect()
			return
		}
		// Frame lookups cannot fail here; keep the last known selection.
		return
	}
	t.apply(instances)
}

// apply rebuilds the highlight list from a fresh instance set and derives
// the lifecycle state. The primary designation follows primaryFrameID; if
// that frame no longer holds an instance, the first instance in frame order
// becomes primary.
func (t *Tracker) apply(instances []locate.Instance) {
	if len(instances) == 0 {
		t.clear()
		return
	}

	primaryIdx := 0
	for i, inst := range instances {
		if inst.FrameID == t.primaryFrameID {
			primaryIdx = i
			break
		}
	}
	t.primaryFrameID = instances[primaryIdx].FrameID

	t.instances = make([]SelectedInstance, 0, len(instances))
	t.instances = append(t.instances, SelectedInstance{Instance: instances[primaryIdx], Primary: true})
	for i, inst := range instances {
		if i == primaryIdx {
			continue
		}
		t.instances = append(t.instances, SelectedInstance{Instance: inst})
	}

	if len(instances) == 1 {
		t.state = StateSingleFrame
	} else {
		t.state = StateMultiFrame
	}
}

func (t *Tracker) clear() {
	t.state = StateIdle
	t.nodeID = ""
	t.primaryFrameID = ""
	t.instances = nil
}
