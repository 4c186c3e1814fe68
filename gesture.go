package chartview

import (
	"math"
	"time"
)

// doubleTapSlop (dp) is how far apart the two taps of a double tap may be.
const doubleTapSlop = 100.0

// PointerAction is the kind of a PointerEvent.
type PointerAction uint8

const (
	PointerDown   PointerAction = iota // a pointer touched down
	PointerMove                        // a pressed pointer moved
	PointerUp                          // a pointer lifted
	PointerCancel                      // the platform aborted the gesture
)

// String returns the action name.
func (a PointerAction) String() string {
	switch a {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is one raw pointer sample in chart pixels. Time is a
// monotonic timestamp; only differences between events matter.
type PointerEvent struct {
	Action PointerAction
	ID     int
	X, Y   float64
	Time   time.Duration
}

// GestureHost receives the side effects of a Gesture.
type GestureHost interface {
	// TouchHighlight highlights the entry under the pixel (x, y). A tap
	// (drag false) on the entry already highlighted clears it; a drag only
	// ever moves the highlight.
	TouchHighlight(x, y float64, drag bool)
	// InvertedAt reports whether the value axis of the data set nearest the
	// pixel is inverted.
	InvertedAt(x, y float64) bool
	// RecalculateOffsets recomputes insets and the content rect after the
	// visible range changed.
	RecalculateOffsets()
	// Emit publishes a gesture event.
	Emit(ev Event)
}

type pointerSlot struct {
	id   int
	x, y float64
}

// Gesture is the touch state machine of a chart. It consumes PointerEvents,
// pans and zooms the Viewport of Cartesian charts, rotates the RadialLayout
// of radial charts, and hands taps to the host for highlighting. At most two
// pointers are tracked; further pointers are ignored.
//
// Gesture is not safe for concurrent use; feed events and ticks from one
// goroutine.
type Gesture struct {
	vp     *Viewport
	radial *RadialLayout
	host   GestureHost
	kind   ChartKind
	cfg    Config
	th     thresholds

	state    GestureState
	pointers [2]pointerSlot
	count    int

	saved      Matrix
	start      Vec2
	mid        Vec2
	savedXDist float64
	savedYDist float64
	savedDist  float64
	inverted   bool
	moved      bool

	startAngle float64

	tracker    velocityTracker
	scroller   *Scroller
	spinner    *Spinner
	flingStart Vec2

	lastTap     Vec2
	lastTapTime time.Duration
	hasTap      bool
}

// NewGesture creates an idle gesture controller for a chart of the given
// kind. radial may be nil for Cartesian kinds. The dp thresholds of cfg are
// resolved to pixels here, once.
func NewGesture(kind ChartKind, vp *Viewport, radial *RadialLayout, cfg Config, host GestureHost) *Gesture {
	th := cfg.resolve()
	return &Gesture{
		vp:       vp,
		radial:   radial,
		host:     host,
		kind:     kind,
		cfg:      cfg,
		th:       th,
		saved:    Identity,
		scroller: NewScroller(th.friction),
		spinner:  NewSpinner(th.friction),
	}
}

// State returns the current state.
func (g *Gesture) State() GestureState { return g.state }

// PointerCount returns the number of pointers currently down.
func (g *Gesture) PointerCount() int { return g.count }

// Decelerating reports whether a fling or spin is in progress.
func (g *Gesture) Decelerating() bool {
	return g.scroller.Active() || g.spinner.Active()
}

// Scroller returns the drag decelerator.
func (g *Gesture) Scroller() *Scroller { return g.scroller }

// Spinner returns the rotation decelerator.
func (g *Gesture) Spinner() *Spinner { return g.spinner }

// StopDeceleration zeroes any residual fling or spin velocity.
func (g *Gesture) StopDeceleration() {
	g.scroller.Stop()
	g.spinner.Stop()
}

// Handle feeds one pointer event through the state machine. It returns
// whether the viewport or rotation changed.
func (g *Gesture) Handle(ev PointerEvent) bool {
	if !finite(ev.X) || !finite(ev.Y) {
		return false
	}
	switch ev.Action {
	case PointerDown:
		return g.down(ev)
	case PointerMove:
		return g.move(ev)
	case PointerUp:
		return g.up(ev)
	case PointerCancel:
		g.cancel()
		return false
	default:
		return false
	}
}

func (g *Gesture) setState(s GestureState) {
	if g.state == s {
		return
	}
	if g.cfg.Debug {
		debugf("gesture %s -> %s", g.state, s)
	}
	g.state = s
}

func (g *Gesture) slot(id int) int {
	for i := 0; i < g.count; i++ {
		if g.pointers[i].id == id {
			return i
		}
	}
	return -1
}

// --- Pointer down ---

func (g *Gesture) down(ev PointerEvent) bool {
	if g.slot(ev.ID) >= 0 || g.count == len(g.pointers) {
		return false
	}
	g.pointers[g.count] = pointerSlot{id: ev.ID, x: ev.X, y: ev.Y}
	g.count++

	if g.count == 1 {
		g.StopDeceleration()
		g.tracker.reset()
		g.tracker.add(ev.Time, ev.X, ev.Y)
		g.saveTouchStart(ev.X, ev.Y)
		g.inverted = g.host != nil && g.host.InvertedAt(ev.X, ev.Y)
		g.moved = false
		g.setState(GestureIdle)

		if g.kind.Radial() && g.radial != nil {
			g.spinner.ResetSamples()
			angle := g.radial.AngleForPoint(ev.X, ev.Y)
			g.startAngle = angle - g.radial.RawRotation()
			if g.cfg.DragDecelerationEnabled {
				g.spinner.Sample(ev.Time, angle)
			}
		}
		return false
	}

	// Second pointer: radial charts do not zoom.
	g.moved = true
	if g.kind.Radial() {
		return false
	}
	p0, p1 := g.pointers[0], g.pointers[1]
	g.saveTouchStart(p0.x, p0.y)
	g.savedXDist = math.Abs(p0.x - p1.x)
	g.savedYDist = math.Abs(p0.y - p1.y)
	g.savedDist = math.Hypot(p0.x-p1.x, p0.y-p1.y)

	if g.savedDist <= g.th.minPointerDist {
		return false
	}
	switch {
	case g.cfg.PinchZoomEnabled:
		g.setState(GesturePinchZoom)
	case g.cfg.ScaleXEnabled != g.cfg.ScaleYEnabled:
		if g.cfg.ScaleXEnabled {
			g.setState(GestureXZoom)
		} else {
			g.setState(GestureYZoom)
		}
	case g.savedXDist > g.savedYDist:
		g.setState(GestureXZoom)
	default:
		g.setState(GestureYZoom)
	}
	mx, my := (p0.x+p1.x)/2, (p0.y+p1.y)/2
	g.mid.X, g.mid.Y = g.vp.toContent(mx, my, g.inverted, g.kind.Horizontal())
	return false
}

func (g *Gesture) saveTouchStart(x, y float64) {
	g.saved = g.vp.Matrix()
	g.start = Vec2{X: x, Y: y}
}

// --- Pointer move ---

func (g *Gesture) move(ev PointerEvent) bool {
	i := g.slot(ev.ID)
	if i < 0 {
		return false
	}
	g.pointers[i].x, g.pointers[i].y = ev.X, ev.Y
	if i == 0 {
		g.tracker.add(ev.Time, ev.X, ev.Y)
	}

	if g.kind.Radial() {
		return g.moveRadial(ev, i)
	}

	switch {
	case g.state == GestureDrag:
		if i != 0 {
			return false
		}
		return g.applyDrag(ev.X, ev.Y)

	case g.state.zooming():
		if g.count == 2 {
			return g.applyZoom()
		}
		return false

	case g.state == GestureIdle && g.count == 1:
		dx := math.Abs(ev.X - g.start.X)
		dy := math.Abs(ev.Y - g.start.Y)
		if math.Hypot(dx, dy) <= g.th.dragTrigger {
			return false
		}
		g.moved = true
		shouldPan := !g.vp.IsFullyZoomedOut() || !g.vp.HasNoDragOffset()
		if !shouldPan {
			if g.cfg.HighlightPerDragEnabled && g.host != nil {
				g.host.TouchHighlight(ev.X, ev.Y, true)
			}
			return false
		}
		if (g.cfg.DragXEnabled || dy >= dx) && (g.cfg.DragYEnabled || dy <= dx) {
			g.setState(GestureDrag)
			g.emit(Event{Type: EventDragStart, X: ev.X, Y: ev.Y, State: g.state})
			return g.applyDrag(ev.X, ev.Y)
		}
	}
	return false
}

func (g *Gesture) moveRadial(ev PointerEvent, i int) bool {
	if i != 0 || g.radial == nil || !g.cfg.RotationEnabled {
		return false
	}
	angle := g.radial.AngleForPoint(ev.X, ev.Y)
	if g.cfg.DragDecelerationEnabled {
		g.spinner.Sample(ev.Time, angle)
	}
	if g.state == GestureIdle {
		if math.Hypot(ev.X-g.start.X, ev.Y-g.start.Y) <= g.th.dragTrigger {
			return false
		}
		g.moved = true
		g.setState(GestureRotate)
	}
	if g.state != GestureRotate {
		return false
	}
	return g.setRotation(angle - g.startAngle)
}

// applyDrag translates the saved matrix by the pointer's displacement from
// the touch start. A disabled axis contributes nothing; an inverted value
// axis moves the other way.
func (g *Gesture) applyDrag(x, y float64) bool {
	dx := x - g.start.X
	dy := y - g.start.Y
	if g.inverted {
		if g.kind.Horizontal() {
			dx = -dx
		} else {
			dy = -dy
		}
	}
	if !g.cfg.DragXEnabled {
		dx = 0
	}
	if !g.cfg.DragYEnabled {
		dy = 0
	}
	_, changed := g.vp.Refresh(g.saved.PostTranslate(dx, dy))
	g.emit(Event{Type: EventDrag, X: x, Y: y, DeltaX: dx, DeltaY: dy, State: g.state})
	return changed
}

// applyZoom rescales the saved matrix about the pinch midpoint. Each axis
// only scales when its zoom is enabled and its bound allows more zoom in
// the requested direction.
func (g *Gesture) applyZoom() bool {
	p0, p1 := g.pointers[0], g.pointers[1]
	dist := math.Hypot(p0.x-p1.x, p0.y-p1.y)
	if dist <= g.th.minPointerDist {
		return false
	}

	var sx, sy float64 = 1, 1
	var canX, canY bool
	switch g.state {
	case GesturePinchZoom:
		scale := dist / g.savedDist
		canX = g.cfg.ScaleXEnabled && g.canZoom(AxisX, scale)
		canY = g.cfg.ScaleYEnabled && g.canZoom(AxisY, scale)
		if canX {
			sx = scale
		}
		if canY {
			sy = scale
		}
	case GestureXZoom:
		if !g.cfg.ScaleXEnabled || g.savedXDist == 0 {
			return false
		}
		sx = math.Abs(p0.x-p1.x) / g.savedXDist
		canX = g.canZoom(AxisX, sx)
	case GestureYZoom:
		if !g.cfg.ScaleYEnabled || g.savedYDist == 0 {
			return false
		}
		sy = math.Abs(p0.y-p1.y) / g.savedYDist
		canY = g.canZoom(AxisY, sy)
	}
	if !canX && !canY {
		return false
	}
	if !finite(sx) || !finite(sy) || sx <= 0 || sy <= 0 {
		return false
	}

	_, changed := g.vp.Refresh(g.saved.PostScale(sx, sy, g.mid.X, g.mid.Y))
	g.emit(Event{
		Type: EventZoom, X: (p0.x + p1.x) / 2, Y: (p0.y + p1.y) / 2,
		ScaleX: g.vp.ScaleX(), ScaleY: g.vp.ScaleY(), State: g.state,
	})
	return changed
}

func (g *Gesture) canZoom(axis Axis, scale float64) bool {
	if scale < 1 {
		return g.vp.CanZoomOutMore(axis)
	}
	return g.vp.CanZoomInMore(axis)
}

func (g *Gesture) setRotation(deg float64) bool {
	before := g.radial.Rotation()
	g.radial.SetRotation(deg)
	g.emit(Event{Type: EventRotate, Rotation: g.radial.Rotation(), State: g.state})
	return g.radial.Rotation() != before
}

// --- Pointer up and cancel ---

func (g *Gesture) up(ev PointerEvent) bool {
	i := g.slot(ev.ID)
	if i < 0 {
		return false
	}
	g.pointers[i].x, g.pointers[i].y = ev.X, ev.Y

	if g.count == 2 {
		// One pointer remains; the gesture continues without panning.
		if i == 0 {
			g.pointers[0] = g.pointers[1]
		}
		g.count = 1
		g.tracker.reset()
		if g.kind.Radial() {
			return false
		}
		if g.state.zooming() {
			g.emit(Event{Type: EventZoomEnd, X: ev.X, Y: ev.Y, ScaleX: g.vp.ScaleX(), ScaleY: g.vp.ScaleY(), State: g.state})
		}
		g.setState(GesturePostZoom)
		return false
	}

	g.tracker.add(ev.Time, ev.X, ev.Y)
	g.count = 0
	prev := g.state

	if g.kind.Radial() {
		// Only a release that rotated carries angle samples to spin from.
		if prev == GestureRotate && g.cfg.DragDecelerationEnabled && g.radial != nil {
			g.spinner.Sample(ev.Time, g.radial.AngleForPoint(ev.X, ev.Y))
			g.spinner.Start(g.spinner.Velocity(), ev.Time)
			if g.spinner.Active() {
				g.emit(Event{Type: EventFlingStart, X: ev.X, Y: ev.Y, Rotation: g.radial.Rotation(), State: prev})
			}
		}
	} else if prev == GestureDrag && g.cfg.DragDecelerationEnabled {
		v := g.tracker.velocity()
		if math.Abs(v.X) > g.th.minFling || math.Abs(v.Y) > g.th.minFling {
			g.flingStart = Vec2{X: ev.X, Y: ev.Y}
			g.scroller.Fling(v, ev.Time)
			g.emit(Event{Type: EventFlingStart, X: ev.X, Y: ev.Y, DeltaX: v.X, DeltaY: v.Y, State: prev})
		}
	}

	switch {
	case prev == GestureDrag:
		g.emit(Event{Type: EventDragEnd, X: ev.X, Y: ev.Y, DeltaX: ev.X - g.start.X, DeltaY: ev.Y - g.start.Y, State: prev})
	case prev.zooming() || prev == GesturePostZoom:
		if prev.zooming() {
			g.emit(Event{Type: EventZoomEnd, X: ev.X, Y: ev.Y, ScaleX: g.vp.ScaleX(), ScaleY: g.vp.ScaleY(), State: prev})
		}
		g.setState(GesturePostZoom)
		if g.host != nil {
			g.host.RecalculateOffsets()
		}
	}

	changed := false
	if prev == GestureIdle && !g.moved {
		changed = g.tap(ev)
	}
	g.setState(GestureIdle)
	return changed
}

// tap handles a release that never moved past the drag trigger.
func (g *Gesture) tap(ev PointerEvent) bool {
	p := Vec2{X: ev.X, Y: ev.Y}
	slop := doubleTapSlop * g.th.density
	double := g.hasTap && ev.Time-g.lastTapTime <= g.cfg.DoubleTapTimeout &&
		math.Hypot(p.X-g.lastTap.X, p.Y-g.lastTap.Y) <= slop

	if double {
		g.hasTap = false
		g.emit(Event{Type: EventDoubleTap, X: ev.X, Y: ev.Y, State: g.state})
		if !g.cfg.DoubleTapToZoomEnabled || g.kind.Radial() {
			return false
		}
		sx, sy := 1.0, 1.0
		if g.cfg.ScaleXEnabled {
			sx = zoomInFactor
		}
		if g.cfg.ScaleYEnabled {
			sy = zoomInFactor
		}
		cx, cy := g.vp.toContent(ev.X, ev.Y, g.inverted, g.kind.Horizontal())
		_, changed := g.vp.Refresh(g.vp.Zoom(sx, sy, cx, cy))
		if g.host != nil {
			g.host.RecalculateOffsets()
		}
		return changed
	}

	g.hasTap = true
	g.lastTap = p
	g.lastTapTime = ev.Time
	g.emit(Event{Type: EventTap, X: ev.X, Y: ev.Y, State: g.state})
	if g.cfg.HighlightPerTapEnabled && g.host != nil {
		g.host.TouchHighlight(ev.X, ev.Y, false)
	}
	return false
}

func (g *Gesture) cancel() {
	g.StopDeceleration()
	g.count = 0
	g.tracker.reset()
	g.setState(GestureIdle)
}

// --- Deceleration ---

// ComputeScroll advances any fling or spin to now. It returns true while
// deceleration continues, so the host should request another frame.
func (g *Gesture) ComputeScroll(now time.Duration) bool {
	switch {
	case g.scroller.Active():
		off, done := g.scroller.Step(now)
		g.applyDrag(g.flingStart.X+off.X, g.flingStart.Y+off.Y)
		if done {
			if g.host != nil {
				g.host.RecalculateOffsets()
			}
			g.emit(Event{Type: EventFlingEnd, State: g.state})
			return false
		}
		return true

	case g.spinner.Active() && g.radial != nil:
		delta, done := g.spinner.Step(now)
		g.setRotation(g.radial.RawRotation() + delta)
		if done {
			g.emit(Event{Type: EventFlingEnd, Rotation: g.radial.Rotation(), State: g.state})
			return false
		}
		return true
	}
	return false
}

func (g *Gesture) emit(ev Event) {
	if g.host != nil {
		g.host.Emit(ev)
	}
}
