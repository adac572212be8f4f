package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/frameloom/pkg/component"
	"github.com/matzehuels/frameloom/pkg/property"
)

func buildRichDocument(t *testing.T) *Document {
	t.Helper()
	doc := NewDefault("rich")

	hero := component.NewPrimitive("hero", component.PrimitiveContainer)
	hero.SetProperty("flexDirection", property.Map{"mobile": "column", "desktop": "row"})
	hero.SetProperty("gap", 16.0)

	title := component.NewPrimitive("title", component.PrimitiveText)
	title.SetProperty("text", "Welcome")
	title.SetProperty("fontSize", property.Map{"base": 16.0, "desktop": 32.0})
	title.VisibleFrom = "tablet"

	cta := component.NewComposite("cta", "PrimaryButton")
	cta.SetProperty("onClick", "signup()")

	for _, pair := range []struct {
		p *component.Node
		c *component.Node
	}{
		{doc.AppTree(), hero}, {hero, title}, {hero, cta},
	} {
		if err := pair.p.AddChild(pair.c); err != nil {
			t.Fatalf("AddChild: %v", err)
		}
	}

	sticky := component.NewCanvasRoot("sticky", component.PrimitiveText, 4000, 100)
	sticky.SetProperty("text", "todo: polish hero")
	if err := doc.AddCanvasRoot(sticky); err != nil {
		t.Fatalf("AddCanvasRoot: %v", err)
	}
	return doc
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := buildRichDocument(t)

	data, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument: %v", err)
	}

	back, err := UnmarshalDocument(data)
	if err != nil {
		t.Fatalf("UnmarshalDocument: %v", err)
	}

	if back.Name != "rich" {
		t.Errorf("name = %q, want rich", back.Name)
	}
	if back.Breakpoints.PrimaryID() != "desktop" {
		t.Errorf("primary = %q, want desktop", back.Breakpoints.PrimaryID())
	}
	if len(back.FrameIDs()) != 3 {
		t.Errorf("frames = %v, want 3", back.FrameIDs())
	}

	title := back.FindNode("title")
	if title == nil {
		t.Fatal("title not found after round trip")
	}
	if title.VisibleFrom != "tablet" {
		t.Errorf("VisibleFrom = %q, want tablet", title.VisibleFrom)
	}
	if title.Parent() == nil || title.Parent().ID != "hero" {
		t.Error("parent link not restored")
	}

	// Responsive maps come back as property.Map, plain values as ground.
	fs, _ := title.Property("fontSize")
	if !property.IsResponsive(fs) {
		t.Errorf("fontSize = %T, want responsive map", fs)
	}
	if v := property.Resolve(fs, "desktop", back.Breakpoints); v != 32.0 {
		t.Errorf("resolved fontSize = %v, want 32", v)
	}
	txt, _ := title.Property("text")
	if txt != "Welcome" {
		t.Errorf("text = %v, want Welcome", txt)
	}

	cta := back.FindNode("cta")
	if cta == nil || cta.Kind != component.KindComposite || cta.Component != "PrimaryButton" {
		t.Errorf("composite not restored: %+v", cta)
	}

	sticky := back.FindNode("sticky")
	if sticky == nil || !sticky.IsCanvasRoot() || sticky.Placement.X != 4000 {
		t.Errorf("free canvas root not restored: %+v", sticky)
	}
}

func TestDocumentFileRoundTrip(t *testing.T) {
	doc := buildRichDocument(t)
	path := filepath.Join(t.TempDir(), "doc.json")

	if err := WriteDocumentFile(doc, path); err != nil {
		t.Fatalf("WriteDocumentFile: %v", err)
	}
	back, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile: %v", err)
	}
	if back.FindNode("hero") == nil {
		t.Error("hero missing after file round trip")
	}

	if _, err := ReadDocumentFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("reading a missing file should fail")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Garbage", "not json"},
		{"NoBreakpoints", `{"name":"x","breakpoints":[],"primary_breakpoint":"a","app_tree":{"id":"r","kind":"primitive","primitive":"container"}}`},
		{"BadKind", `{"name":"x","breakpoints":[{"id":"a","min_width":0}],"primary_breakpoint":"a","app_tree":{"id":"r","kind":"weird"}}`},
		{"FutureVersion", `{"version":99,"name":"x","breakpoints":[{"id":"a","min_width":0}],"primary_breakpoint":"a","app_tree":{"id":"r","kind":"primitive","primitive":"container"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalDocument([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestMarshalStableOutput(t *testing.T) {
	doc := buildRichDocument(t)

	a, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument: %v", err)
	}
	b, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument: %v", err)
	}
	if string(a) != string(b) {
		t.Error("repeated marshal not deterministic")
	}
	if !strings.Contains(string(a), `"primary_breakpoint": "desktop"`) {
		t.Errorf("output missing primary breakpoint: %s", a)
	}
}

func TestWriteDocumentFileCreates(t *testing.T) {
	doc := NewDefault("x")
	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteDocumentFile(doc, path); err != nil {
		t.Fatalf("WriteDocumentFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("wrote empty file")
	}
}
