package chartview

import (
	"math"
	"time"
)

const (
	// dragStopVelocity (px/s) ends a fling once both axes fall below it.
	dragStopVelocity = 0.01

	// velocityWindow is how far back the release velocity looks.
	velocityWindow = 100 * time.Millisecond

	maxVelocitySamples = 32
)

// Scroller decelerates a released drag. Each Step multiplies the velocity by
// the friction coefficient and integrates it over the elapsed time; the
// caller applies the returned offset through the regular drag path.
//
// Scroller is driven by the host loop and is not safe for concurrent use.
type Scroller struct {
	friction float64
	velocity Vec2
	offset   Vec2
	lastTick time.Duration
	active   bool
}

// NewScroller creates an idle scroller with the given friction, clamped to
// [0, 0.999].
func NewScroller(friction float64) *Scroller {
	return &Scroller{friction: clampFriction(friction)}
}

// Fling starts decelerating from velocity (px/s) at time now.
func (s *Scroller) Fling(velocity Vec2, now time.Duration) {
	if !finite(velocity.X) || !finite(velocity.Y) {
		return
	}
	s.velocity = velocity
	s.offset = Vec2{}
	s.lastTick = now
	s.active = true
}

// Step advances the fling to now and returns the total offset travelled
// since Fling. done is true on the tick the fling comes to rest; Step is a
// no-op returning done=false while inactive.
func (s *Scroller) Step(now time.Duration) (offset Vec2, done bool) {
	if !s.active {
		return s.offset, false
	}
	s.velocity.X *= s.friction
	s.velocity.Y *= s.friction

	dt := (now - s.lastTick).Seconds()
	if dt < 0 {
		dt = 0
	}
	s.offset.X += s.velocity.X * dt
	s.offset.Y += s.velocity.Y * dt
	s.lastTick = now

	if math.Abs(s.velocity.X) < dragStopVelocity && math.Abs(s.velocity.Y) < dragStopVelocity {
		s.Stop()
		return s.offset, true
	}
	return s.offset, false
}

// Stop zeroes the velocity immediately.
func (s *Scroller) Stop() {
	s.velocity = Vec2{}
	s.active = false
}

// Active reports whether a fling is in progress.
func (s *Scroller) Active() bool { return s.active }

// Velocity returns the current velocity in px/s.
func (s *Scroller) Velocity() Vec2 { return s.velocity }

// Friction returns the friction coefficient.
func (s *Scroller) Friction() float64 { return s.friction }

// SetFriction sets the friction coefficient, clamped to [0, 0.999].
func (s *Scroller) SetFriction(f float64) { s.friction = clampFriction(f) }

type pointerSample struct {
	t    time.Duration
	x, y float64
}

// velocityTracker estimates pointer velocity from the samples of the last
// velocityWindow. It stores at most maxVelocitySamples in a ring.
type velocityTracker struct {
	samples [maxVelocitySamples]pointerSample
	head    int
	count   int
}

func (v *velocityTracker) reset() {
	v.head = 0
	v.count = 0
}

func (v *velocityTracker) add(t time.Duration, x, y float64) {
	v.samples[v.head] = pointerSample{t: t, x: x, y: y}
	v.head = (v.head + 1) % maxVelocitySamples
	if v.count < maxVelocitySamples {
		v.count++
	}
}

// velocity returns px/s between the oldest sample inside the window and the
// newest one. Fewer than two usable samples yield zero.
func (v *velocityTracker) velocity() Vec2 {
	if v.count < 2 {
		return Vec2{}
	}
	last := v.samples[(v.head-1+maxVelocitySamples)%maxVelocitySamples]
	first := last
	for i := 2; i <= v.count; i++ {
		s := v.samples[(v.head-i+maxVelocitySamples)%maxVelocitySamples]
		if last.t-s.t > velocityWindow {
			break
		}
		first = s
	}
	dt := (last.t - first.t).Seconds()
	if dt <= 0 {
		return Vec2{}
	}
	return Vec2{X: (last.x - first.x) / dt, Y: (last.y - first.y) / dt}
}
