package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestSaveAndRead(t *testing.T) {
	store := newTestStore(t)

	key := NewKey(7, "design.pdf")
	n, err := store.Save(key, strings.NewReader("contents"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n != int64(len("contents")) {
		t.Errorf("Save wrote %d bytes, want %d", n, len("contents"))
	}

	path, err := store.Path(key)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "contents" {
		t.Errorf("stored %q, want %q", data, "contents")
	}
}

func TestNewKeyIsProjectScopedAndUnique(t *testing.T) {
	a := NewKey(3, "report.txt")
	b := NewKey(3, "report.txt")

	if a == b {
		t.Error("two uploads of the same filename must get distinct keys")
	}
	if !strings.HasPrefix(a, "3/") {
		t.Errorf("key %q must be namespaced by project id", a)
	}
	if filepath.Ext(a) != ".txt" {
		t.Errorf("key %q should keep the display extension", a)
	}
}

func TestTraversalKeysRejected(t *testing.T) {
	store := newTestStore(t)

	for _, key := range []string{"", "../outside", "3/../../outside", "/etc/passwd"} {
		if _, err := store.Save(key, strings.NewReader("x")); err == nil {
			t.Errorf("Save(%q) accepted a key that escapes the root", key)
		}
		if _, err := store.Path(key); err == nil {
			t.Errorf("Path(%q) resolved a key that escapes the root", key)
		}
	}
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	key := NewKey(1, "a.txt")
	if _, err := store.Save(key, strings.NewReader("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove(key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Path(key); err == nil {
		t.Error("Path should fail after Remove")
	}
}
