package syncer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/boothlab/photowall/internal/media"
	"github.com/boothlab/photowall/internal/wall/physics"
)

const DefaultInterval = 10 * time.Second

// Diff is the outcome of reconciling a fetched record list against the live
// object set.
type Diff struct {
	Create  []media.Record
	Destroy []string
}

// Reconcile computes the create/destroy sets for one fetch. Records already
// live are untouched so their motion state survives repeated syncs. Duplicate
// ids within a single fetch collapse to the first occurrence.
func Reconcile(live map[string]struct{}, records []media.Record) Diff {
	var diff Diff
	present := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, dup := present[rec.ID]; dup {
			continue
		}
		present[rec.ID] = struct{}{}
		if _, ok := live[rec.ID]; !ok {
			diff.Create = append(diff.Create, rec)
		}
	}
	for id := range live {
		if _, ok := present[id]; !ok {
			diff.Destroy = append(diff.Destroy, id)
		}
	}
	return diff
}

// WallRecords filters a fetched list down to what belongs on the wall:
// image-kind records with an id. Video records and records without an
// identifier never reach the world.
func WallRecords(records []media.Record) []media.Record {
	out := make([]media.Record, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" || rec.Kind != media.KindImage {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Syncer keeps the live object set mirroring the record source. Fetch runs
// off the simulation loop; Apply must run on it, so a step never observes a
// half-applied diff.
type Syncer struct {
	source   media.Source
	interval time.Duration
	log      *zap.SugaredLogger
}

func New(source media.Source, interval time.Duration, log *zap.SugaredLogger) *Syncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Syncer{source: source, interval: interval, log: log}
}

func (s *Syncer) Interval() time.Duration { return s.interval }

// Fetch retrieves and filters the current record list. On failure the caller
// keeps the previous object set unchanged and retries on the next tick.
func (s *Syncer) Fetch(ctx context.Context) ([]media.Record, error) {
	records, err := s.source.Fetch(ctx)
	if err != nil {
		s.log.Warnw("record fetch failed", "err", err)
		return nil, err
	}
	return WallRecords(records), nil
}

// Apply reconciles a successful fetch into the world atomically: the full
// diff or nothing. Returns created and destroyed counts.
func (s *Syncer) Apply(w *physics.World, records []media.Record, tileW, tileH float64) (int, int) {
	diff := Reconcile(w.LiveIDs(), records)
	for _, rec := range diff.Create {
		w.Add(rec, tileW, tileH)
	}
	for _, id := range diff.Destroy {
		w.Remove(id)
	}
	if len(diff.Create) > 0 || len(diff.Destroy) > 0 {
		s.log.Infow("wall reconciled",
			"created", len(diff.Create),
			"destroyed", len(diff.Destroy),
			"live", w.Len())
	}
	return len(diff.Create), len(diff.Destroy)
}
