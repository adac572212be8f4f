package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/frameloom/pkg/component"
	"github.com/matzehuels/frameloom/pkg/document"
	"github.com/matzehuels/frameloom/pkg/errors"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return map[string]Store{
		"Memory": NewMemoryStore(),
		"File":   fs,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			defer store.Close()

			if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
				t.Errorf("Get(missing) = (%v, %v), want absent", ok, err)
			}

			if err := store.Set(ctx, "draft", []byte("one")); err != nil {
				t.Fatalf("Set: %v", err)
			}
			data, ok, err := store.Get(ctx, "draft")
			if err != nil || !ok || string(data) != "one" {
				t.Errorf("Get = (%q, %v, %v), want one", data, ok, err)
			}

			// Overwrite replaces.
			if err := store.Set(ctx, "draft", []byte("two")); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			data, _, _ = store.Get(ctx, "draft")
			if string(data) != "two" {
				t.Errorf("after overwrite = %q, want two", data)
			}

			if err := store.Set(ctx, "archive", []byte("x")); err != nil {
				t.Fatalf("Set: %v", err)
			}
			names, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(names) != 2 || names[0] != "archive" || names[1] != "draft" {
				t.Errorf("List = %v, want [archive draft]", names)
			}

			if err := store.Delete(ctx, "draft"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, ok, _ := store.Get(ctx, "draft"); ok {
				t.Error("deleted snapshot still present")
			}
			if err := store.Delete(ctx, "draft"); err != nil {
				t.Errorf("deleting a missing name = %v, want nil", err)
			}
		})
	}
}

func TestFileStoreUnsafeNames(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	// Names with separators and dots must not escape the directory.
	name := "../evil/../../name.json"
	if err := fs.Set(ctx, name, []byte("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := fs.Get(ctx, name)
	if err != nil || !ok || string(data) != "x" {
		t.Errorf("Get = (%q, %v, %v)", data, ok, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1 file inside the store dir", len(entries))
	}
	if filepath.Ext(entries[0].Name()) != ".json" {
		t.Errorf("unexpected file %q", entries[0].Name())
	}
}

func TestFileStoreCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := fs.Set(ctx, "ok", []byte("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "junk"+fileExt), []byte("not json"), 0644); err != nil {
		t.Fatalf("write junk: %v", err)
	}

	names, err := fs.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "ok" {
		t.Errorf("List = %v, want [ok] with corrupt entry skipped", names)
	}
}

func TestSaveLoadDocument(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	doc := document.NewDefault("proj")
	btn := component.NewPrimitive("btn", component.PrimitiveButton)
	if err := doc.AppTree().AddChild(btn); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	if err := Save(ctx, store, "v1", doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(ctx, store, "v1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Name != "proj" || back.FindNode("btn") == nil {
		t.Errorf("loaded document incomplete: name=%q", back.Name)
	}
}

func TestSaveEmptyName(t *testing.T) {
	err := Save(context.Background(), NewMemoryStore(), "", document.NewDefault("x"))
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("Save(\"\") = %v, want INVALID_INPUT", err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(context.Background(), NewMemoryStore(), "nope")
	if errors.GetCode(err) != errors.ErrCodeSnapshotNotFound {
		t.Errorf("Load(missing) = %v, want SNAPSHOT_NOT_FOUND", err)
	}
}

func TestLoadCorruptPayload(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Set(ctx, "bad", []byte("not a document")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, err := Load(ctx, store, "bad")
	if errors.GetCode(err) != errors.ErrCodeInvalidDocument {
		t.Errorf("Load(corrupt) = %v, want INVALID_DOCUMENT", err)
	}
}
