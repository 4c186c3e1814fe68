package chartview

import (
	"math"
	"time"
)

const (
	// spinStopVelocity (deg/s) ends a spin once the velocity falls below it.
	spinStopVelocity = 0.001

	// angleSampleWindow is how much history the release velocity uses.
	angleSampleWindow = time.Second

	// wrapThreshold is the jump between two samples treated as crossing the
	// 0/360 seam rather than real motion.
	wrapThreshold = 270.0
)

type angleSample struct {
	t     time.Duration
	angle float64
}

// Spinner decelerates a released rotation of a radial chart. Angles are
// sampled while the pointer rotates; on release Velocity derives the angular
// velocity and Start/Step decay it with friction.
type Spinner struct {
	friction float64

	samples []angleSample

	velocity float64
	lastTick time.Duration
	active   bool
}

// NewSpinner creates an idle spinner with the given friction, clamped to
// [0, 0.999].
func NewSpinner(friction float64) *Spinner {
	return &Spinner{friction: clampFriction(friction)}
}

// Sample records the pointer angle at time t and drops samples older than
// one second, always keeping the two newest.
func (s *Spinner) Sample(t time.Duration, angle float64) {
	s.samples = append(s.samples, angleSample{t: t, angle: angle})
	drop := 0
	for drop < len(s.samples)-2 && t-s.samples[drop].t > angleSampleWindow {
		drop++
	}
	if drop > 0 {
		n := copy(s.samples, s.samples[drop:])
		s.samples = s.samples[:n]
	}
}

// ResetSamples clears the sample window.
func (s *Spinner) ResetSamples() {
	s.samples = s.samples[:0]
}

// Velocity returns the angular velocity (deg/s) described by the sample
// window. Consecutive samples more than 270° apart are unwrapped by ±360°
// before the span is measured. The sign comes from comparing the newest
// sample to the nearest earlier sample with a different angle, flipped when
// the two are more than 270° apart.
func (s *Spinner) Velocity() float64 {
	n := len(s.samples)
	if n == 0 {
		return 0
	}
	first := s.samples[0]
	last := s.samples[n-1]

	before := first
	for i := n - 1; i >= 0; i-- {
		before = s.samples[i]
		if before.angle != last.angle {
			break
		}
	}

	clockwise := last.angle >= before.angle
	if math.Abs(last.angle-before.angle) > wrapThreshold {
		clockwise = !clockwise
	}

	unwrapped := first.angle
	prev := first.angle
	for _, smp := range s.samples[1:] {
		d := smp.angle - prev
		if d > wrapThreshold {
			d -= 360
		} else if d < -wrapThreshold {
			d += 360
		}
		unwrapped += d
		prev = smp.angle
	}

	dt := (last.t - first.t).Seconds()
	if dt <= 0 {
		dt = 0.1
	}
	v := math.Abs((unwrapped - first.angle) / dt)
	if !clockwise {
		v = -v
	}
	return v
}

// Start begins decelerating from velocity (deg/s) at time now. A zero
// velocity leaves the spinner idle.
func (s *Spinner) Start(velocity float64, now time.Duration) {
	if velocity == 0 || !finite(velocity) {
		s.Stop()
		return
	}
	s.velocity = velocity
	s.lastTick = now
	s.active = true
}

// Step advances the spin to now and returns the angle travelled during this
// tick. done is true on the tick the spin comes to rest.
func (s *Spinner) Step(now time.Duration) (delta float64, done bool) {
	if !s.active {
		return 0, false
	}
	s.velocity *= s.friction
	dt := (now - s.lastTick).Seconds()
	if dt < 0 {
		dt = 0
	}
	delta = s.velocity * dt
	s.lastTick = now
	if math.Abs(s.velocity) < spinStopVelocity {
		s.Stop()
		return delta, true
	}
	return delta, false
}

// Stop zeroes the angular velocity immediately.
func (s *Spinner) Stop() {
	s.velocity = 0
	s.active = false
}

// Active reports whether a spin is in progress.
func (s *Spinner) Active() bool { return s.active }

// AngularVelocity returns the current angular velocity in deg/s.
func (s *Spinner) AngularVelocity() float64 { return s.velocity }
