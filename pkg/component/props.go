package component

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Props is an insertion-ordered mapping from property name to property value.
//
// Values are either ground values (scalars, lists, plain objects) or
// responsive maps (property.Map) resolved per breakpoint at read time.
// Props preserves insertion order across JSON round-trips, so property
// panels render keys in the order the designer created them.
//
// Setting an existing key replaces its value in place without moving it.
// Props is not safe for concurrent use.
type Props struct {
	keys   []string
	values map[string]any
}

// NewProps creates an empty ordered property bag.
func NewProps() *Props {
	return &Props{values: make(map[string]any)}
}

// Set stores a value under key. The value replaces any prior value wholesale;
// responsive maps are not deep-merged - callers replace the full map.
// New keys append to the end of the ordering.
func (p *Props) Set(key string, value any) {
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the raw (possibly responsive) value for key.
func (p *Props) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Delete removes key and reports whether it was present.
func (p *Props) Delete(key string) bool {
	if _, ok := p.values[key]; !ok {
		return false
	}
	delete(p.values, key)
	p.keys = slices.DeleteFunc(p.keys, func(k string) bool { return k == key })
	return true
}

// Keys returns the property names in insertion order.
// The returned slice is a copy and safe to modify.
func (p *Props) Keys() []string {
	return slices.Clone(p.keys)
}

// Len returns the number of properties.
func (p *Props) Len() int { return len(p.keys) }

// Clone returns a shallow copy: the ordering and top-level map are copied,
// values are shared.
func (p *Props) Clone() *Props {
	out := &Props{
		keys:   slices.Clone(p.keys),
		values: make(map[string]any, len(p.values)),
	}
	for k, v := range p.values {
		out.values[k] = v
	}
	return out
}

// MarshalJSON encodes the properties as a JSON object in insertion order.
func (p *Props) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal property %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order.
// Values decode to the default JSON shapes (map[string]any, []any, float64,
// string, bool, nil); responsive-map detection happens later when the
// document normalizes properties against its breakpoint set.
func (p *Props) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("properties must be a JSON object")
	}

	p.keys = nil
	p.values = make(map[string]any)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected property key token %v", keyTok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decode property %q: %w", key, err)
		}
		p.Set(key, normalizeNumbers(value))
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// normalizeNumbers converts json.Number values back to float64 recursively.
// UseNumber is only needed to keep decoding lossless while walking; the
// engine works with float64 like the rest of the JSON surface.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	case map[string]any:
		for k, sub := range t {
			t[k] = normalizeNumbers(sub)
		}
		return t
	case []any:
		for i, sub := range t {
			t[i] = normalizeNumbers(sub)
		}
		return t
	default:
		return v
	}
}
