package snapshot

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestDirStoreRoundTrip(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}
	ctx := context.Background()

	id := NewID()
	want := []byte("RTF\x01\x00\x00")
	if err := store.Put(ctx, id, want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func TestDirStorePutOverwrites(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "a", []byte("one")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put(ctx, "a", []byte("two")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "two" {
		t.Errorf("Get() = %q, want %q", got, "two")
	}
}

func TestDirStoreGetMissing(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}

	_, err = store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDirStoreList(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}
	ctx := context.Background()

	for _, id := range []string{"charlie", "alpha", "bravo"} {
		if err := store.Put(ctx, id, []byte("x")); err != nil {
			t.Fatalf("Put(%q) error = %v", id, err)
		}
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"alpha", "bravo", "charlie"}
	if len(infos) != len(want) {
		t.Fatalf("List() returned %d snapshots, want %d", len(infos), len(want))
	}
	for i, info := range infos {
		if info.ID != want[i] {
			t.Errorf("List()[%d].ID = %q, want %q", i, info.ID, want[i])
		}
		if info.Size != 1 {
			t.Errorf("List()[%d].Size = %d, want 1", i, info.Size)
		}
	}
}

func TestDirStoreDelete(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "a", []byte("x")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want %v", err, ErrNotFound)
	}

	// Deleting again is not an error.
	if err := store.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() of missing snapshot error = %v", err)
	}
}

func TestDirStoreRejectsPathIDs(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}
	ctx := context.Background()

	tests := []string{"", "../escape", "a/b", `a\b`}
	for _, id := range tests {
		if err := store.Put(ctx, id, []byte("x")); err == nil {
			t.Errorf("Put(%q) succeeded, want error", id)
		}
		if _, err := store.Get(ctx, id); err == nil {
			t.Errorf("Get(%q) succeeded, want error", id)
		}
	}
}

func TestDirStoreCanceledContext(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Put(ctx, "a", []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("Put() error = %v, want %v", err, context.Canceled)
	}
}
