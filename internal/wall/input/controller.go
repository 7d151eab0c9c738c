package input

import (
	"math"
	"time"

	"github.com/boothlab/photowall/internal/media"
	"github.com/boothlab/photowall/internal/wall/physics"
)

type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionThrow
)

type Params struct {
	ClickDistance   float64       // max pointer travel for a click
	ClickTime       time.Duration // max press duration for a click
	ThrowMultiplier float64       // scale on the last move delta
	MaxThrowSpeed   float64       // per-axis velocity clamp
}

func DefaultParams() Params {
	return Params{
		ClickDistance:   10,
		ClickTime:       300 * time.Millisecond,
		ThrowMultiplier: 1.5,
		MaxThrowSpeed:   15,
	}
}

// session is the explicit drag record for the one object currently held.
// Created on pointer-down, discarded on pointer-up.
type session struct {
	objectID  string
	start     physics.Vec2
	startTime time.Time
	pointer   physics.Vec2
	lastDelta physics.Vec2
}

// Controller turns raw pointer events into drag, throw and select actions
// against the world. At most one object is held at a time.
type Controller struct {
	params Params
	world  *physics.World
	sess   *session
}

func New(world *physics.World, params Params) *Controller {
	return &Controller{params: params, world: world}
}

// Holding returns the held object's id, if any.
func (c *Controller) Holding() (string, bool) {
	if c.sess == nil {
		return "", false
	}
	return c.sess.objectID, true
}

// PointerDown grabs the topmost object under the pointer, raising it above
// its siblings and excluding it from world integration until release.
// Returns false when the press hit empty space.
func (c *Controller) PointerDown(x, y float64, t time.Time) bool {
	obj := c.world.ObjectAt(x, y)
	if obj == nil {
		return false
	}
	c.world.Raise(obj.ID)
	obj.Drag = physics.Held
	c.sess = &session{
		objectID:  obj.ID,
		start:     physics.Vec2{X: x, Y: y},
		startTime: t,
		pointer:   physics.Vec2{X: x, Y: y},
	}
	return true
}

// PointerMove drives the held object directly: the instantaneous delta since
// the previous event is written into its position and kept as the most recent
// velocity sample. Last sample wins; there is no smoothing.
func (c *Controller) PointerMove(x, y float64, t time.Time) {
	if c.sess == nil {
		return
	}
	obj := c.world.Get(c.sess.objectID)
	if obj == nil {
		// Destroyed by the syncer mid-drag; drop the session.
		c.sess = nil
		return
	}
	p := physics.Vec2{X: x, Y: y}
	delta := p.Sub(c.sess.pointer)
	obj.Pos = obj.Pos.Add(delta)
	c.sess.pointer = p
	c.sess.lastDelta = delta
}

// PointerUp releases the held object and classifies the gesture. A short
// press that barely moved is a click and selects the record; anything else is
// a throw that hands the last move delta back to the world as velocity.
func (c *Controller) PointerUp(x, y float64, t time.Time) (Action, media.Record) {
	if c.sess == nil {
		return ActionNone, media.Record{}
	}
	sess := c.sess
	c.sess = nil

	obj := c.world.Get(sess.objectID)
	if obj == nil {
		return ActionNone, media.Record{}
	}
	obj.Drag = physics.Free

	dist := math.Hypot(x-sess.start.X, y-sess.start.Y)
	if dist < c.params.ClickDistance && t.Sub(sess.startTime) < c.params.ClickTime {
		return ActionSelect, obj.Record
	}

	obj.Vel = physics.Vec2{
		X: clamp(sess.lastDelta.X*c.params.ThrowMultiplier, c.params.MaxThrowSpeed),
		Y: clamp(sess.lastDelta.Y*c.params.ThrowMultiplier, c.params.MaxThrowSpeed),
	}
	return ActionThrow, obj.Record
}

func clamp(v, max float64) float64 {
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}
