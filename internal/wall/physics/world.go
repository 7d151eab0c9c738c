package physics

import (
	"math"
	"math/rand"

	"github.com/boothlab/photowall/internal/media"
)

type Params struct {
	Damping           float64 // velocity retained per frame, < 1
	Restitution       float64 // velocity retained after a boundary bounce
	SeparationImpulse float64 // pairwise push velocity per overlapping frame
	JitterEpsilon     float64 // below this speed on both axes an object counts as stopped
	JitterSpeed       float64 // magnitude of the injected idle velocity
	SpawnSpeed        float64 // initial random velocity magnitude for new objects
}

func DefaultParams() Params {
	return Params{
		Damping:           0.99,
		Restitution:       0.8,
		SeparationImpulse: 0.12,
		JitterEpsilon:     0.02,
		JitterSpeed:       0.25,
		SpawnSpeed:        0.5,
	}
}

// World owns every live object's position and velocity. It is not safe for
// concurrent use; the wall drives it from a single cooperative update loop.
type World struct {
	width  float64
	height float64
	params Params
	rng    *rand.Rand

	objects map[string]*Object
	order   []string // insertion/paint order, last on top
}

func NewWorld(width, height float64, params Params, rng *rand.Rand) *World {
	return &World{
		width:   width,
		height:  height,
		params:  params,
		rng:     rng,
		objects: make(map[string]*Object),
	}
}

func (w *World) Bounds() (float64, float64) { return w.width, w.height }

// Resize updates the container bounds. Objects outside the new bounds are
// pulled back in on the next step's boundary pass.
func (w *World) Resize(width, height float64) {
	w.width = width
	w.height = height
}

func (w *World) Len() int { return len(w.objects) }

func (w *World) Get(id string) *Object { return w.objects[id] }

func (w *World) Has(id string) bool {
	_, ok := w.objects[id]
	return ok
}

// LiveIDs returns the current id set, for reconciliation.
func (w *World) LiveIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(w.objects))
	for id := range w.objects {
		ids[id] = struct{}{}
	}
	return ids
}

// Objects returns live objects in paint order, bottom first.
func (w *World) Objects() []*Object {
	out := make([]*Object, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.objects[id])
	}
	return out
}

// Add creates an object for the record at a random in-bounds position with a
// small random velocity. Adding an id that is already live is a no-op and
// returns the existing object.
func (w *World) Add(rec media.Record, tileW, tileH float64) *Object {
	if obj, ok := w.objects[rec.ID]; ok {
		return obj
	}
	obj := &Object{
		ID:     rec.ID,
		W:      tileW,
		H:      tileH,
		Record: rec,
		Pos: Vec2{
			X: w.rng.Float64() * math.Max(w.width-tileW, 0),
			Y: w.rng.Float64() * math.Max(w.height-tileH, 0),
		},
		Vel: Vec2{
			X: (w.rng.Float64() - 0.5) * 2 * w.params.SpawnSpeed,
			Y: (w.rng.Float64() - 0.5) * 2 * w.params.SpawnSpeed,
		},
	}
	w.objects[rec.ID] = obj
	w.order = append(w.order, rec.ID)
	return obj
}

func (w *World) Remove(id string) bool {
	if _, ok := w.objects[id]; !ok {
		return false
	}
	delete(w.objects, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// Raise moves the object to the top of the paint order.
func (w *World) Raise(id string) {
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			w.order = append(w.order, id)
			return
		}
	}
}

// ObjectAt returns the topmost object containing the point, or nil.
func (w *World) ObjectAt(x, y float64) *Object {
	for i := len(w.order) - 1; i >= 0; i-- {
		obj := w.objects[w.order[i]]
		if obj.Contains(x, y) {
			return obj
		}
	}
	return nil
}

// Step advances every free object one frame: integrate, damp, bounce off the
// container, one pass of pairwise separation, then idle jitter. Held objects
// are driven by the input controller and skipped entirely.
func (w *World) Step() {
	free := make([]*Object, 0, len(w.order))
	for _, id := range w.order {
		obj := w.objects[id]
		if obj.Drag == Held {
			continue
		}
		free = append(free, obj)
	}

	for _, obj := range free {
		obj.Pos = obj.Pos.Add(obj.Vel)
		obj.Vel = obj.Vel.Scale(w.params.Damping)
		w.bounce(obj)
	}

	// Single pass, not iterated to convergence: tiles may still overlap for a
	// frame or two, which reads as organic motion rather than a solver.
	for i := 0; i < len(free); i++ {
		for j := i + 1; j < len(free); j++ {
			w.separate(free[i], free[j])
		}
	}

	for _, obj := range free {
		w.jitter(obj)
	}
}

func (w *World) bounce(obj *Object) {
	r := w.params.Restitution
	if obj.Pos.X < 0 {
		obj.Pos.X = 0
		obj.Vel.X = -obj.Vel.X * r
	} else if obj.Pos.X > w.width-obj.W {
		obj.Pos.X = w.width - obj.W
		obj.Vel.X = -obj.Vel.X * r
	}
	if obj.Pos.Y < 0 {
		obj.Pos.Y = 0
		obj.Vel.Y = -obj.Vel.Y * r
	} else if obj.Pos.Y > w.height-obj.H {
		obj.Pos.Y = w.height - obj.H
		obj.Vel.Y = -obj.Vel.Y * r
	}
}

func (w *World) separate(a, b *Object) {
	minDist := a.radius() + b.radius()
	d := b.Center().Sub(a.Center())
	dist := d.Len()
	if dist >= minDist || dist == 0 {
		// Coincident centers have no separation normal; skip this frame.
		return
	}
	n := d.Scale(1 / dist)
	half := (minDist - dist) / 2
	a.Pos = a.Pos.Sub(n.Scale(half))
	b.Pos = b.Pos.Add(n.Scale(half))

	imp := n.Scale(w.params.SeparationImpulse)
	a.Vel = a.Vel.Sub(imp)
	b.Vel = b.Vel.Add(imp)
}

func (w *World) jitter(obj *Object) {
	eps := w.params.JitterEpsilon
	if math.Abs(obj.Vel.X) >= eps || math.Abs(obj.Vel.Y) >= eps {
		return
	}
	js := w.params.JitterSpeed
	obj.Vel.X = (w.rng.Float64() - 0.5) * 2 * js
	obj.Vel.Y = (w.rng.Float64() - 0.5) * 2 * js
	if obj.Vel.X == 0 && obj.Vel.Y == 0 {
		obj.Vel.X = js
	}
}
