package property

import (
	"github.com/matzehuels/frameloom/pkg/breakpoint"
	"github.com/matzehuels/frameloom/pkg/component"
)

// styleProperties is the fixed classification set of recognized layout and
// visual style attribute names. Resolved values under these keys route to a
// node's style surface; everything else (event bindings, source URLs,
// arbitrary data attributes) routes to the behavioral surface.
var styleProperties = map[string]bool{
	"width": true, "height": true,
	"minWidth": true, "maxWidth": true,
	"minHeight": true, "maxHeight": true,
	"margin": true, "padding": true,
	"background": true, "backgroundColor": true, "backgroundImage": true,
	"color": true, "opacity": true,
	"fontSize": true, "fontWeight": true, "fontFamily": true,
	"fontStyle": true, "lineHeight": true, "letterSpacing": true,
	"textAlign": true, "textDecoration": true,
	"display": true, "flexDirection": true, "flexWrap": true,
	"flexGrow": true, "flexShrink": true,
	"justifyContent": true, "alignItems": true, "alignSelf": true, "gap": true,
	"border": true, "borderWidth": true, "borderColor": true,
	"borderStyle": true, "borderRadius": true,
	"boxShadow": true, "overflow": true,
	"position": true, "top": true, "left": true, "right": true, "bottom": true,
	"zIndex": true, "cursor": true,
	"objectFit": true, "aspectRatio": true,
}

// IsStyleProperty reports whether name belongs to the fixed set of
// recognized style attributes. Unrecognized names default to the behavioral
// surface.
func IsStyleProperty(name string) bool { return styleProperties[name] }

// Resolved is the outcome of resolving a node's full property bag for one
// breakpoint, split into the two consumption surfaces.
type Resolved struct {
	// Style holds layout/visual attributes, including the contents of a
	// nested "style" object.
	Style map[string]any
	// Behavior holds everything else: event bindings, source URLs, text
	// content, arbitrary attributes.
	Behavior map[string]any
}

// SplitResolved resolves every property in props for the requested
// breakpoint and routes each concrete value to the style or behavioral
// surface.
//
// A nested "style" object gets one level of recursion: each of its keys is
// resolved with the same per-key algorithm and merged into the style
// surface. Explicit top-level style attributes win over same-named keys from
// the nested object, matching the property panel's override expectations.
func SplitResolved(props *component.Props, requestedID string, set *breakpoint.Set) (Resolved, []Warning) {
	out := Resolved{
		Style:    make(map[string]any),
		Behavior: make(map[string]any),
	}
	var warnings []Warning

	for _, key := range props.Keys() {
		raw, _ := props.Get(key)
		v, w := ResolveDetailed(raw, requestedID, set)
		warnings = append(warnings, w...)
		if v == nil {
			continue
		}

		if key == "style" {
			nested, ok := v.(map[string]any)
			if !ok {
				if m, isMap := v.(Map); isMap {
					nested, ok = map[string]any(m), true
				}
			}
			if ok {
				for sk, sv := range nested {
					rv, sw := ResolveDetailed(sv, requestedID, set)
					warnings = append(warnings, sw...)
					if rv == nil {
						continue
					}
					if _, exists := out.Style[sk]; !exists {
						out.Style[sk] = rv
					}
				}
				continue
			}
		}

		if IsStyleProperty(key) {
			out.Style[key] = v
		} else {
			out.Behavior[key] = v
		}
	}

	return out, warnings
}
