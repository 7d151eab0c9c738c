package physics

import (
	"math"

	"github.com/boothlab/photowall/internal/media"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }

type DragState int

const (
	Free DragState = iota
	Held
)

// Object is the live counterpart of one media record. Position is the
// top-left corner in viewport cells; size is fixed for the object's lifetime.
type Object struct {
	ID   string
	Pos  Vec2
	Vel  Vec2
	W, H float64
	Drag DragState

	// Display back-reference only; identity lives in ID.
	Record media.Record
}

func (o *Object) Center() Vec2 {
	return Vec2{o.Pos.X + o.W/2, o.Pos.Y + o.H/2}
}

// radius approximates the tile as a disc for pairwise separation.
func (o *Object) radius() float64 {
	return (o.W + o.H) / 4
}

// Contains reports whether the point lies inside the object's bounding box.
func (o *Object) Contains(x, y float64) bool {
	return x >= o.Pos.X && x < o.Pos.X+o.W &&
		y >= o.Pos.Y && y < o.Pos.Y+o.H
}
