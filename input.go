package chartview

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers      = 3   // pointer 0 = mouse, 1-2 = touch
	defaultWheelStep = 1.1 // zoom factor per wheel notch
)

type pointerState struct {
	down         bool
	lastX, lastY float64
}

// EbitenInput turns ebiten's polled mouse, touch and wheel state into
// PointerEvents for a Chart. The mouse is pointer 0; the first two touches
// take pointers 1 and 2. Call Poll once per frame from the game's Update,
// before Chart.Update.
type EbitenInput struct {
	// OffsetX and OffsetY are the screen position of the chart's top-left
	// corner.
	OffsetX, OffsetY float64

	// WheelZoom zooms about the cursor with the mouse wheel.
	WheelZoom bool
	// WheelStep is the zoom factor of one wheel notch. Values <= 1 use 1.1.
	WheelStep float64

	pointers     [maxPointers]pointerState
	touchUsed    [maxPointers]bool
	touchMap     [maxPointers]ebiten.TouchID
	prevTouchIDs []ebiten.TouchID
	focused      bool
}

// NewEbitenInput creates an input adapter with wheel zoom enabled.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{WheelZoom: true, WheelStep: defaultWheelStep, focused: true}
}

// Poll reads the current input state and feeds the changes to c. now is
// the frame's monotonic timestamp. Real input is skipped while injected
// input is pending. It reports whether the chart needs a redraw.
func (in *EbitenInput) Poll(c *Chart, now time.Duration) bool {
	if c.PendingInjected() > 0 {
		return false
	}
	if !ebiten.IsFocused() {
		if in.focused {
			in.focused = false
			return in.cancel(c, now)
		}
		return false
	}
	in.focused = true

	redraw := in.pollMouse(c, now)
	if in.pollTouches(c, now) {
		redraw = true
	}
	if in.pollWheel(c) {
		redraw = true
	}
	return redraw
}

// pollMouse handles the left mouse button (pointer 0).
func (in *EbitenInput) pollMouse(c *Chart, now time.Duration) bool {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return in.pointer(c, 0, float64(mx)-in.OffsetX, float64(my)-in.OffsetY, pressed, now)
}

// pollTouches handles touch input (pointers 1-2).
func (in *EbitenInput) pollTouches(c *Chart, now time.Duration) bool {
	touchIDs := ebiten.AppendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs

	redraw := false
	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		if in.pointer(c, slot, float64(tx)-in.OffsetX, float64(ty)-in.OffsetY, true, now) {
			redraw = true
		}
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !active[i] {
			ps := &in.pointers[i]
			if in.pointer(c, i, ps.lastX, ps.lastY, false, now) {
				redraw = true
			}
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
	return redraw
}

func (in *EbitenInput) pollWheel(c *Chart) bool {
	if !in.WheelZoom {
		return false
	}
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return false
	}
	mx, my := ebiten.CursorPosition()
	return in.wheel(c, float64(mx)-in.OffsetX, float64(my)-in.OffsetY, wy)
}

// wheel zooms by WheelStep per notch about the chart pixel (x, y).
func (in *EbitenInput) wheel(c *Chart, x, y, notches float64) bool {
	step := in.WheelStep
	if !(step > 1) {
		step = defaultWheelStep
	}
	f := math.Pow(step, notches)
	before := c.vp.Matrix()
	c.ZoomAt(f, f, x, y)
	return c.vp.Matrix() != before
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-2).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *EbitenInput) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// pointer diffs one pointer's polled state against the previous frame and
// sends the resulting down, move or up event to c.
func (in *EbitenInput) pointer(c *Chart, slot int, x, y float64, pressed bool, now time.Duration) bool {
	ps := &in.pointers[slot]
	ev := PointerEvent{ID: slot, X: x, Y: y, Time: now}
	switch {
	case pressed && !ps.down:
		ps.down = true
		ev.Action = PointerDown
	case !pressed && ps.down:
		ps.down = false
		ev.Action = PointerUp
	case pressed && (x != ps.lastX || y != ps.lastY):
		ev.Action = PointerMove
	default:
		ps.lastX, ps.lastY = x, y
		return false
	}
	ps.lastX, ps.lastY = x, y
	return c.HandlePointer(ev)
}

// cancel aborts the gesture when the window loses focus.
func (in *EbitenInput) cancel(c *Chart, now time.Duration) bool {
	wasDown := false
	for i := range in.pointers {
		if in.pointers[i].down {
			in.pointers[i].down = false
			wasDown = true
		}
	}
	for i := 1; i < maxPointers; i++ {
		in.touchUsed[i] = false
		in.touchMap[i] = 0
	}
	if !wasDown {
		return false
	}
	return c.HandlePointer(PointerEvent{Action: PointerCancel, Time: now})
}
