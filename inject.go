package chartview

import (
	"math"
	"time"
)

// Pointer ids used by injected input. Real platform ids are unlikely to
// collide with them.
const (
	injectPrimaryID   = 1 << 20
	injectSecondaryID = injectPrimaryID + 1
)

// syntheticFrame is the injected input of one frame. A frame carries one
// event, or two when both pointers of a pinch move together. Events are
// stamped with the Update time when they are consumed.
type syntheticFrame struct {
	events [2]PointerEvent
	n      int
}

func (c *Chart) injectFrame(evs ...PointerEvent) {
	var f syntheticFrame
	f.n = copy(f.events[:], evs)
	c.injectQueue = append(c.injectQueue, f)
}

// InjectPress queues a primary pointer press at the given chart pixel. The
// event is consumed on the next Update call.
func (c *Chart) InjectPress(x, y float64) {
	c.injectFrame(PointerEvent{Action: PointerDown, ID: injectPrimaryID, X: x, Y: y})
}

// InjectMove queues a primary pointer move with the pointer held down. Use
// this between InjectPress and InjectRelease to simulate a drag.
func (c *Chart) InjectMove(x, y float64) {
	c.injectFrame(PointerEvent{Action: PointerMove, ID: injectPrimaryID, X: x, Y: y})
}

// InjectRelease queues a primary pointer release at the given chart pixel.
func (c *Chart) InjectRelease(x, y float64) {
	c.injectFrame(PointerEvent{Action: PointerUp, ID: injectPrimaryID, X: x, Y: y})
}

// InjectCancel queues a gesture cancel.
func (c *Chart) InjectCancel() {
	c.injectFrame(PointerEvent{Action: PointerCancel, ID: injectPrimaryID})
}

// InjectTap is a convenience that queues a press followed by a release at
// the same pixel. Consumes two frames.
func (c *Chart) InjectTap(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDoubleTap queues two taps at the same pixel. Consumes four frames,
// which stays inside the double-tap timeout at any usual frame rate.
func (c *Chart) InjectDoubleTap(x, y float64) {
	c.InjectTap(x, y)
	c.InjectTap(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (c *Chart) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// InjectPinch queues a horizontal two-finger pinch centered on (x, y). The
// fingers start fromDist pixels apart and end toDist apart, interpolated
// over frames-4 intermediate frames. The sequence consumes `frames` frames;
// the minimum is 4 (two presses, two releases).
func (c *Chart) InjectPinch(x, y, fromDist, toDist float64, frames int) {
	if frames < 4 {
		frames = 4
	}
	fromDist, toDist = math.Abs(fromDist)/2, math.Abs(toDist)/2
	c.injectFrame(PointerEvent{Action: PointerDown, ID: injectPrimaryID, X: x - fromDist, Y: y})
	c.injectFrame(PointerEvent{Action: PointerDown, ID: injectSecondaryID, X: x + fromDist, Y: y})
	steps := frames - 4
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		d := fromDist + (toDist-fromDist)*t
		c.injectFrame(
			PointerEvent{Action: PointerMove, ID: injectPrimaryID, X: x - d, Y: y},
			PointerEvent{Action: PointerMove, ID: injectSecondaryID, X: x + d, Y: y},
		)
	}
	c.injectFrame(PointerEvent{Action: PointerUp, ID: injectSecondaryID, X: x + toDist, Y: y})
	c.injectFrame(PointerEvent{Action: PointerUp, ID: injectPrimaryID, X: x - toDist, Y: y})
}

// PendingInjected returns the number of queued injected frames.
func (c *Chart) PendingInjected() int {
	return len(c.injectQueue)
}

// processInjectedInput pops one frame from the inject queue, stamps its
// events with now and feeds them through HandlePointer. Returns true if a
// frame was consumed.
func (c *Chart) processInjectedInput(now time.Duration) bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	f := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	for i := 0; i < f.n; i++ {
		ev := f.events[i]
		ev.Time = now
		c.HandlePointer(ev)
	}
	return true
}
