// Package breakpoint defines named minimum-width thresholds and the ordered
// set that owns them.
//
// A Breakpoint selects which responsive property values apply when a design
// is resolved for a given viewport width. Breakpoints live in a Set with one
// designated primary breakpoint that acts as the global fallback source of
// truth for unset responsive values.
//
// # Ordering
//
// Resolution order is always ascending by MinWidth. The Set maintains this
// ordering internally; Ordered returns breakpoints smallest-first, which is
// the order the property resolver scans during nearest-neighbor fallback.
//
// # Invariants
//
//   - The primary breakpoint id is always present in the set.
//   - Breakpoint ids are unique and immutable; MinWidth and Label are mutable.
//   - Removing the primary breakpoint is rejected with INVALID_OPERATION.
//
// Responsive property maps may keep keys for breakpoints that were removed
// from the set. The set does not chase those references; the resolver treats
// them as unreachable and reports integrity warnings at read time.
package breakpoint

import (
	"slices"

	"github.com/matzehuels/frameloom/pkg/errors"
)

// BaseKey is the sentinel responsive-map key that applies when no breakpoint
// entry matches. It is never a valid breakpoint id.
const BaseKey = "base"

// Breakpoint is a named minimum-width threshold.
// The ID is immutable identity; MinWidth and Label may change over the
// breakpoint's lifetime.
type Breakpoint struct {
	ID       string `json:"id" bson:"id"`
	Label    string `json:"label" bson:"label"`
	MinWidth int    `json:"min_width" bson:"min_width"`
}

// Set is an ordered collection of breakpoints with one designated primary.
//
// The zero value is not usable - use NewSet to create a valid Set.
// Set is not safe for concurrent use without external synchronization.
type Set struct {
	breakpoints []*Breakpoint
	byID        map[string]*Breakpoint
	primaryID   string
}

// NewSet creates a Set from the given breakpoints with the named primary.
// Returns INVALID_INPUT for empty or duplicate ids, negative widths, or a
// breakpoint using the reserved "base" id, and INVALID_BREAKPOINT if the
// primary id is not among the breakpoints.
func NewSet(breakpoints []Breakpoint, primaryID string) (*Set, error) {
	s := &Set{byID: make(map[string]*Breakpoint, len(breakpoints))}
	for _, bp := range breakpoints {
		if err := s.add(bp); err != nil {
			return nil, err
		}
	}
	if _, ok := s.byID[primaryID]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidBreakpoint, "primary breakpoint %q is not in the set", primaryID)
	}
	s.primaryID = primaryID
	return s, nil
}

func (s *Set) add(bp Breakpoint) error {
	if bp.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "breakpoint id must not be empty")
	}
	if bp.ID == BaseKey {
		return errors.New(errors.ErrCodeInvalidInput, "breakpoint id %q is reserved", BaseKey)
	}
	if bp.MinWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "breakpoint %q: min width must be >= 0", bp.ID)
	}
	if _, exists := s.byID[bp.ID]; exists {
		return errors.New(errors.ErrCodeInvalidInput, "duplicate breakpoint id %q", bp.ID)
	}
	b := bp
	s.byID[b.ID] = &b
	s.breakpoints = append(s.breakpoints, &b)
	s.sort()
	return nil
}

// sort keeps breakpoints ascending by MinWidth. Ties break by id so that
// ordering is deterministic.
func (s *Set) sort() {
	slices.SortStableFunc(s.breakpoints, func(a, b *Breakpoint) int {
		if a.MinWidth != b.MinWidth {
			return a.MinWidth - b.MinWidth
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}

// Add inserts a new breakpoint into the set.
func (s *Set) Add(bp Breakpoint) error {
	return s.add(bp)
}

// Remove deletes the breakpoint with the given id.
// Removing the primary breakpoint is rejected with INVALID_OPERATION since
// the primary must always be present. Removing an unknown id is rejected
// with INVALID_BREAKPOINT.
//
// Responsive-map entries referencing the removed breakpoint are intentionally
// left in place; they become unreachable and show up as integrity warnings
// when resolved.
func (s *Set) Remove(id string) error {
	if _, ok := s.byID[id]; !ok {
		return errors.New(errors.ErrCodeInvalidBreakpoint, "no breakpoint with id %q", id)
	}
	if id == s.primaryID {
		return errors.New(errors.ErrCodePrimaryBreakpoint, "cannot remove the primary breakpoint %q", id)
	}
	delete(s.byID, id)
	s.breakpoints = slices.DeleteFunc(s.breakpoints, func(bp *Breakpoint) bool { return bp.ID == id })
	return nil
}

// SetPrimary designates an existing breakpoint as the primary.
func (s *Set) SetPrimary(id string) error {
	if _, ok := s.byID[id]; !ok {
		return errors.New(errors.ErrCodeInvalidBreakpoint, "no breakpoint with id %q", id)
	}
	s.primaryID = id
	return nil
}

// SetMinWidth updates a breakpoint's minimum width and re-sorts the set.
func (s *Set) SetMinWidth(id string, minWidth int) error {
	bp, ok := s.byID[id]
	if !ok {
		return errors.New(errors.ErrCodeInvalidBreakpoint, "no breakpoint with id %q", id)
	}
	if minWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "breakpoint %q: min width must be >= 0", id)
	}
	bp.MinWidth = minWidth
	s.sort()
	return nil
}

// SetLabel updates a breakpoint's display label.
func (s *Set) SetLabel(id, label string) error {
	bp, ok := s.byID[id]
	if !ok {
		return errors.New(errors.ErrCodeInvalidBreakpoint, "no breakpoint with id %q", id)
	}
	bp.Label = label
	return nil
}

// PrimaryID returns the id of the primary breakpoint.
func (s *Set) PrimaryID() string { return s.primaryID }

// Primary returns a copy of the primary breakpoint.
func (s *Set) Primary() Breakpoint { return *s.byID[s.primaryID] }

// ByID returns a copy of the breakpoint with the given id and true,
// or a zero Breakpoint and false if not found.
func (s *Set) ByID(id string) (Breakpoint, bool) {
	bp, ok := s.byID[id]
	if !ok {
		return Breakpoint{}, false
	}
	return *bp, true
}

// Contains reports whether a breakpoint with the given id is in the set.
func (s *Set) Contains(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Ordered returns copies of all breakpoints ascending by MinWidth.
func (s *Set) Ordered() []Breakpoint {
	out := make([]Breakpoint, len(s.breakpoints))
	for i, bp := range s.breakpoints {
		out[i] = *bp
	}
	return out
}

// IndexOf returns the position of the breakpoint in ascending MinWidth order,
// or -1 if the id is not in the set.
func (s *Set) IndexOf(id string) int {
	return slices.IndexFunc(s.breakpoints, func(bp *Breakpoint) bool { return bp.ID == id })
}

// Len returns the number of breakpoints in the set.
func (s *Set) Len() int { return len(s.breakpoints) }

// IDs returns all breakpoint ids ascending by MinWidth.
func (s *Set) IDs() []string {
	ids := make([]string, len(s.breakpoints))
	for i, bp := range s.breakpoints {
		ids[i] = bp.ID
	}
	return ids
}
