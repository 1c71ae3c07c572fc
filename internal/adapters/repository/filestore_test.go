package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_GetPut(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Get(ctx, "abc123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	raw := []byte(`{"name":"José Ramírez","ovr":88}`)
	if err := store.Put(ctx, "abc123", raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := store.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(raw) {
		t.Errorf("expected payload %s, got %s", raw, got)
	}

	if _, err := os.Stat(filepath.Join(dir, "player_abc123.json")); err != nil {
		t.Errorf("expected cache file on disk: %v", err)
	}
}

func TestFileStore_PutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := store.Put(ctx, "x", []byte(`{"ovr":1}`)); err != nil {
			t.Fatalf("put %d: %v", i, err)
		}
	}
	entries, err := os.ReadDir(store.dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 file, got %d", len(entries))
	}
}

func TestFileStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir(), WithFileMode(0o600))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = store.Put(ctx, "x", []byte("old"))
	_ = store.Put(ctx, "x", []byte("new"))

	got, _ := store.Get(ctx, "x")
	if string(got) != "new" {
		t.Errorf("expected last write to win, got %s", got)
	}
	info, err := os.Stat(store.Path("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestFileStore_InvalidKeys(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []string{"", "../escape", `a\b`, ".."} {
		if _, err := store.Get(ctx, id); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("get %q: expected ErrInvalidKey, got %v", id, err)
		}
		if err := store.Put(ctx, id, []byte("{}")); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("put %q: expected ErrInvalidKey, got %v", id, err)
		}
	}
}
