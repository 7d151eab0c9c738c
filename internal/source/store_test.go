package source

import (
	"testing"

	"github.com/boothlab/photowall/internal/media"
)

func TestStoreAddListRemove(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Load(); err != nil {
		t.Fatalf("load empty store: %v", err)
	}

	rec, err := store.Add("astronaut", "http://img/1", "http://dl/1", media.KindImage, "gala")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected a minted id")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("expected a creation timestamp")
	}
	if _, err := store.Add("pirate clip", "", "http://dl/2", media.KindVideo, "other"); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got := store.List(""); len(got) != 2 {
		t.Fatalf("expected 2 records unscoped, got %d", len(got))
	}
	gala := store.List("gala")
	if len(gala) != 1 || gala[0].ConceptName != "astronaut" {
		t.Fatalf("event scope filter broken: %+v", gala)
	}

	ok, err := store.Remove(rec.ID)
	if err != nil || !ok {
		t.Fatalf("remove: ok=%v err=%v", ok, err)
	}
	ok, err = store.Remove(rec.ID)
	if err != nil || ok {
		t.Fatalf("double remove must report false, got ok=%v err=%v", ok, err)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 record left, got %d", store.Len())
	}
}

func TestStorePersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()

	store := NewStore(dir)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	rec, err := store.Add("astronaut", "http://img/1", "", media.KindImage, "")
	if err != nil {
		t.Fatal(err)
	}

	reopened := NewStore(dir)
	if err := reopened.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := reopened.List("")
	if len(got) != 1 || got[0].ID != rec.ID || got[0].Kind != media.KindImage {
		t.Fatalf("store did not persist: %+v", got)
	}
}
