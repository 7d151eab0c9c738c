package syncer

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/boothlab/photowall/internal/media"
	"github.com/boothlab/photowall/internal/wall/physics"
)

type fakeSource struct {
	records []media.Record
	err     error
}

func (f *fakeSource) Fetch(ctx context.Context) ([]media.Record, error) {
	return f.records, f.err
}

func img(id string) media.Record {
	return media.Record{ID: id, ConceptName: "concept " + id, Kind: media.KindImage}
}

func testWorld() *physics.World {
	return physics.NewWorld(100, 50, physics.DefaultParams(), rand.New(rand.NewSource(1)))
}

func TestReconcileDiff(t *testing.T) {
	live := map[string]struct{}{"1": {}, "2": {}}
	diff := Reconcile(live, []media.Record{img("2"), img("3")})

	if len(diff.Create) != 1 || diff.Create[0].ID != "3" {
		t.Errorf("expected create [3], got %+v", diff.Create)
	}
	if len(diff.Destroy) != 1 || diff.Destroy[0] != "1" {
		t.Errorf("expected destroy [1], got %+v", diff.Destroy)
	}
}

func TestReconcileCollapsesDuplicateIDs(t *testing.T) {
	diff := Reconcile(map[string]struct{}{}, []media.Record{img("1"), img("1"), img("1")})
	if len(diff.Create) != 1 {
		t.Fatalf("duplicate ids in one fetch must create once, got %d", len(diff.Create))
	}
}

func TestReconcileEmptyToEmpty(t *testing.T) {
	diff := Reconcile(map[string]struct{}{}, nil)
	if len(diff.Create) != 0 || len(diff.Destroy) != 0 {
		t.Errorf("expected empty diff, got %+v", diff)
	}
}

func TestWallRecordsFiltering(t *testing.T) {
	records := []media.Record{
		img("1"),
		{ID: "2", Kind: media.KindVideo},
		{ID: "", Kind: media.KindImage},
		{ID: "3", Kind: media.KindImage},
	}
	got := WallRecords(records)

	ids := make([]string, 0, len(got))
	for _, rec := range got {
		ids = append(ids, rec.ID)
	}
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "1" || ids[1] != "3" {
		t.Errorf("expected image records 1 and 3, got %v", ids)
	}
}

func TestApplyAddThenRemove(t *testing.T) {
	w := testWorld()
	s := New(&fakeSource{}, time.Second, zap.NewNop().Sugar())

	created, destroyed := s.Apply(w, []media.Record{img("1")}, 12, 5)
	if created != 1 || destroyed != 0 || !w.Has("1") {
		t.Fatalf("fetch A: expected one object created, got created=%d destroyed=%d", created, destroyed)
	}

	created, destroyed = s.Apply(w, nil, 12, 5)
	if created != 0 || destroyed != 1 || w.Len() != 0 {
		t.Fatalf("fetch B: expected object destroyed, got created=%d destroyed=%d len=%d", created, destroyed, w.Len())
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	w := testWorld()
	s := New(&fakeSource{}, time.Second, zap.NewNop().Sugar())
	records := []media.Record{img("1"), img("2")}

	s.Apply(w, records, 12, 5)

	obj := w.Get("1")
	obj.Pos = physics.Vec2{X: 7, Y: 8}
	obj.Vel = physics.Vec2{X: 3, Y: -2}
	obj.Drag = physics.Held

	created, destroyed := s.Apply(w, records, 12, 5)
	if created != 0 || destroyed != 0 {
		t.Fatalf("unchanged list must be a no-op, got created=%d destroyed=%d", created, destroyed)
	}
	if obj.Pos != (physics.Vec2{X: 7, Y: 8}) || obj.Vel != (physics.Vec2{X: 3, Y: -2}) || obj.Drag != physics.Held {
		t.Error("repeated reconciliation disturbed motion state")
	}
}

func TestApplyNeverDuplicatesIDs(t *testing.T) {
	w := testWorld()
	s := New(&fakeSource{}, time.Second, zap.NewNop().Sugar())

	s.Apply(w, []media.Record{img("1"), img("1")}, 12, 5)
	s.Apply(w, []media.Record{img("1"), img("2")}, 12, 5)

	if w.Len() != 2 {
		t.Fatalf("expected two unique live objects, got %d", w.Len())
	}
}

func TestFetchFiltersAndScopes(t *testing.T) {
	src := &fakeSource{records: []media.Record{
		img("1"),
		{ID: "2", Kind: media.KindVideo},
	}}
	s := New(src, time.Second, zap.NewNop().Sugar())

	got, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("expected only the image record, got %+v", got)
	}
}

func TestFetchFailureLeavesWorldAlone(t *testing.T) {
	w := testWorld()
	boom := errors.New("source down")
	s := New(&fakeSource{err: boom}, time.Second, zap.NewNop().Sugar())

	s.Apply(w, []media.Record{img("1")}, 12, 5)

	if _, err := s.Fetch(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	// The caller only applies successful fetches; the live set is untouched.
	if !w.Has("1") || w.Len() != 1 {
		t.Errorf("live set changed after failed fetch, len=%d", w.Len())
	}
}

func TestDefaultInterval(t *testing.T) {
	s := New(&fakeSource{}, 0, zap.NewNop().Sugar())
	if s.Interval() != DefaultInterval {
		t.Errorf("expected default interval, got %s", s.Interval())
	}
}
