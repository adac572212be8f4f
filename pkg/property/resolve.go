// Package property implements responsive property resolution.
//
// A property value is either a ground value (any scalar, list, or plain
// object) or a responsive Map keyed by breakpoint id (or the sentinel
// "base"). Resolution turns a possibly-responsive value into a concrete
// value for a requested breakpoint with deterministic fallback:
//
//  1. Ground values pass through unchanged.
//  2. An exact entry for the requested breakpoint wins.
//  3. The primary breakpoint's entry acts as the global default.
//  4. Nearest smaller breakpoint: scan ascending-ordered breakpoints
//     starting immediately below the requested position, moving down.
//  5. Nearest larger breakpoint: scan upward from the requested position.
//  6. The "base" entry, if present; otherwise nil.
//
// This nearest-smaller-then-larger policy models CSS-like cascading without
// requiring every breakpoint to define every property.
//
// Resolution never fails. A missing value resolves to nil and callers apply
// their own defaulting. Responsive-map keys referencing breakpoints absent
// from the set are unreachable by the scan; they are tolerated and reported
// as integrity warnings.
package property

import (
	"fmt"
	"slices"

	"github.com/matzehuels/frameloom/pkg/breakpoint"
	"github.com/matzehuels/frameloom/pkg/observability"
)

// Map is a responsive property value: breakpoint id (or "base") to concrete
// value. Maps round-trip through JSON as ordinary nested objects.
type Map map[string]any

// Warning reports a non-fatal data-integrity anomaly found during
// resolution, such as a responsive-map key referencing a breakpoint that is
// no longer in the set.
type Warning struct {
	BreakpointID string // the dangling or unknown breakpoint id
	Detail       string
}

func (w Warning) String() string {
	return fmt.Sprintf("integrity warning [%s]: %s", w.BreakpointID, w.Detail)
}

// Resolve resolves raw for the requested breakpoint against the set.
// Integrity warnings are forwarded to the registered observability hooks.
func Resolve(raw any, requestedID string, set *breakpoint.Set) any {
	v, warnings := ResolveDetailed(raw, requestedID, set)
	for _, w := range warnings {
		observability.Resolve().OnIntegrityWarning(w.BreakpointID, w.Detail)
	}
	return v
}

// ResolveDetailed resolves raw for the requested breakpoint and returns any
// integrity warnings encountered. It never fails: absence of a value yields
// nil.
func ResolveDetailed(raw any, requestedID string, set *breakpoint.Set) (any, []Warning) {
	m, ok := asMap(raw)
	if !ok {
		return raw, nil
	}

	warnings := danglingKeys(m, set)

	if v, ok := m[requestedID]; ok {
		return v, warnings
	}
	if v, ok := m[set.PrimaryID()]; ok {
		return v, warnings
	}

	ordered := set.Ordered()
	idx := set.IndexOf(requestedID)
	if idx < 0 {
		warnings = append(warnings, Warning{
			BreakpointID: requestedID,
			Detail:       fmt.Sprintf("resolution requested for unknown breakpoint %q", requestedID),
		})
	} else {
		// Nearest smaller first: immediately below the requested position,
		// moving toward smaller widths.
		for i := idx - 1; i >= 0; i-- {
			if v, ok := m[ordered[i].ID]; ok {
				return v, warnings
			}
		}
		// Then nearest larger, moving toward larger widths.
		for i := idx + 1; i < len(ordered); i++ {
			if v, ok := m[ordered[i].ID]; ok {
				return v, warnings
			}
		}
	}

	if v, ok := m[breakpoint.BaseKey]; ok {
		return v, warnings
	}
	return nil, warnings
}

// asMap reports whether raw is a responsive map. Plain map[string]any
// objects are ground values until a document normalization pass converts
// them (see Normalize).
func asMap(raw any) (Map, bool) {
	m, ok := raw.(Map)
	return m, ok
}

// danglingKeys returns warnings for map keys that are neither "base" nor a
// breakpoint currently in the set. Keys are scanned in sorted order so the
// warning sequence is deterministic.
func danglingKeys(m Map, set *breakpoint.Set) []Warning {
	var warnings []Warning
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if k == breakpoint.BaseKey || set.Contains(k) {
			continue
		}
		warnings = append(warnings, Warning{
			BreakpointID: k,
			Detail:       fmt.Sprintf("responsive entry references removed breakpoint %q", k),
		})
	}
	return warnings
}

// IsResponsive reports whether raw is a responsive map value.
func IsResponsive(raw any) bool {
	_, ok := raw.(Map)
	return ok
}

// Normalize decides whether a decoded JSON object is a responsive map for
// the given breakpoint set and converts it if so. An object is responsive
// when at least one key is "base" or a breakpoint id present in the set;
// other objects stay ground values. Unknown extra keys ride along and
// surface as integrity warnings at resolve time.
func Normalize(raw any, set *breakpoint.Set) any {
	obj, ok := raw.(map[string]any)
	if !ok {
		return raw
	}
	for k := range obj {
		if k == breakpoint.BaseKey || set.Contains(k) {
			return Map(obj)
		}
	}
	return raw
}
