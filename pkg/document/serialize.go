package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/frameloom/pkg/breakpoint"
	"github.com/matzehuels/frameloom/pkg/component"
	"github.com/matzehuels/frameloom/pkg/errors"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument converts a document to JSON bytes.
// Canvas roots serialize in insertion order; children in tree order.
func MarshalDocument(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocumentTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocumentFile writes a document to a JSON file.
// The file is created with 0644 permissions.
func WriteDocumentFile(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDocumentTo(d, f)
}

// WriteDocument writes a document as JSON to an io.Writer.
// Use MarshalDocument for in-memory serialization or WriteDocumentFile for files.
func WriteDocument(d *Document, w io.Writer) error {
	return writeDocumentTo(d, w)
}

// UnmarshalDocument decodes JSON bytes into a document.
// Responsive property maps are recognized against the decoded breakpoint set.
func UnmarshalDocument(data []byte) (*Document, error) {
	return readDocumentFrom(bytes.NewReader(data))
}

// ReadDocumentFile reads a JSON file and returns the decoded document.
// Returns validation errors for malformed documents.
func ReadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readDocumentFrom(f)
}

// ReadDocument decodes a JSON document from an io.Reader.
// Use ReadDocumentFile for files or pass bytes.NewReader for in-memory data.
func ReadDocument(r io.Reader) (*Document, error) {
	return readDocumentFrom(r)
}

// =============================================================================
// Wire Types
// =============================================================================

// DocumentJSON is the on-disk document shape.
type DocumentJSON struct {
	Version     int                     `json:"version" bson:"version"`
	Name        string                  `json:"name" bson:"name"`
	Breakpoints []breakpoint.Breakpoint `json:"breakpoints" bson:"breakpoints"`
	PrimaryID   string                  `json:"primary_breakpoint" bson:"primary_breakpoint"`
	AppTree     NodeJSON                `json:"app_tree" bson:"app_tree"`
	CanvasRoots []NodeJSON              `json:"canvas_roots" bson:"canvas_roots"`
}

// NodeJSON is the on-disk node shape. Children nest recursively.
type NodeJSON struct {
	ID           string                     `json:"id" bson:"id"`
	Kind         component.Kind             `json:"kind" bson:"kind"`
	Primitive    component.Primitive        `json:"primitive,omitempty" bson:"primitive,omitempty"`
	Component    string                     `json:"component,omitempty" bson:"component,omitempty"`
	Props        *component.Props           `json:"props,omitempty" bson:"props,omitempty"`
	VisibleFrom  string                     `json:"visible_from,omitempty" bson:"visible_from,omitempty"`
	VisibleUntil string                     `json:"visible_until,omitempty" bson:"visible_until,omitempty"`
	Placement    *component.CanvasPlacement `json:"placement,omitempty" bson:"placement,omitempty"`
	Viewport     *component.ViewportSpec    `json:"viewport,omitempty" bson:"viewport,omitempty"`
	Children     []NodeJSON                 `json:"children,omitempty" bson:"children,omitempty"`
}

// CurrentVersion is the document wire format version.
const CurrentVersion = 1

// =============================================================================
// Internal Implementation
// =============================================================================

func writeDocumentTo(d *Document, w io.Writer) error {
	out := toJSON(d)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readDocumentFrom(r io.Reader) (*Document, error) {
	var data DocumentJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromJSON(data)
}

func toJSON(d *Document) DocumentJSON {
	out := DocumentJSON{
		Version:     CurrentVersion,
		Name:        d.Name,
		Breakpoints: d.Breakpoints.Ordered(),
		PrimaryID:   d.Breakpoints.PrimaryID(),
		AppTree:     nodeToJSON(d.appTree),
	}
	for _, root := range d.canvasRoots {
		out.CanvasRoots = append(out.CanvasRoots, nodeToJSON(root))
	}
	return out
}

func nodeToJSON(n *component.Node) NodeJSON {
	out := NodeJSON{
		ID:           n.ID,
		Kind:         n.Kind,
		Primitive:    n.Primitive,
		Component:    n.Component,
		VisibleFrom:  n.VisibleFrom,
		VisibleUntil: n.VisibleUntil,
		Placement:    n.Placement,
		Viewport:     n.Viewport,
	}
	if n.Props.Len() > 0 {
		out.Props = n.Props
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, nodeToJSON(c))
	}
	return out
}

func fromJSON(data DocumentJSON) (*Document, error) {
	if data.Version > CurrentVersion {
		return nil, errors.New(errors.ErrCodeInvalidDocument,
			"unsupported document version %d", data.Version)
	}
	set, err := breakpoint.NewSet(data.Breakpoints, data.PrimaryID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid breakpoint set")
	}

	appTree, err := nodeFromJSON(data.AppTree)
	if err != nil {
		return nil, err
	}
	doc, err := New(data.Name, set, appTree)
	if err != nil {
		return nil, err
	}

	for _, rootData := range data.CanvasRoots {
		root, err := nodeFromJSON(rootData)
		if err != nil {
			return nil, err
		}
		if err := doc.AddCanvasRoot(root); err != nil {
			return nil, err
		}
	}

	doc.NormalizeProps()
	return doc, nil
}

func nodeFromJSON(data NodeJSON) (*component.Node, error) {
	if data.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "node with empty id")
	}
	var n *component.Node
	switch data.Kind {
	case component.KindPrimitive:
		n = component.NewPrimitive(data.ID, data.Primitive)
	case component.KindComposite:
		n = component.NewComposite(data.ID, data.Component)
	default:
		return nil, errors.New(errors.ErrCodeInvalidDocument,
			"node %q has unknown kind %q", data.ID, data.Kind)
	}
	if data.Props != nil {
		n.Props = data.Props
	}
	n.VisibleFrom = data.VisibleFrom
	n.VisibleUntil = data.VisibleUntil
	n.Placement = data.Placement
	n.Viewport = data.Viewport

	for _, childData := range data.Children {
		child, err := nodeFromJSON(childData)
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(child); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err,
				"node %q: invalid child %q", data.ID, childData.ID)
		}
	}
	return n, nil
}
