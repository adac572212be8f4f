package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// FileStore stores snapshots as files in a directory, one file per
// snapshot. Names are hashed into filenames so arbitrary snapshot names
// stay filesystem-safe; the original name travels in the entry header.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory is created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// fileEntry wraps snapshot data with its metadata.
type fileEntry struct {
	Name    string    `json:"name"`
	SavedAt time.Time `json:"saved_at"`
	Data    []byte    `json:"data"`
}

const fileExt = ".snapshot.json"

// Get retrieves a snapshot by name.
func (s *FileStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Corrupt entry - treat as missing
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set stores a snapshot under the given name.
func (s *FileStore) Set(ctx context.Context, name string, data []byte) error {
	entry := fileEntry{Name: name, SavedAt: time.Now().UTC(), Data: data}
	out, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), out, 0644)
}

// List returns all snapshot names in lexical order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var entry fileEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		names = append(names, entry.Name)
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a snapshot. Deleting a missing name is a no-op.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(name string) string {
	hash := sha256.Sum256([]byte(name))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+fileExt)
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
