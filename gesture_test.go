package chartview

import (
	"math"
	"testing"
	"time"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func press(c *Chart, id int, x, y float64, t time.Duration) {
	c.HandlePointer(PointerEvent{Action: PointerDown, ID: id, X: x, Y: y, Time: t})
}

func drag(c *Chart, id int, x, y float64, t time.Duration) {
	c.HandlePointer(PointerEvent{Action: PointerMove, ID: id, X: x, Y: y, Time: t})
}

func release(c *Chart, id int, x, y float64, t time.Duration) {
	c.HandlePointer(PointerEvent{Action: PointerUp, ID: id, X: x, Y: y, Time: t})
}

// recordEvents subscribes to every event type and returns the log.
func recordEvents(c *Chart) *[]Event {
	var log []Event
	for et := EventType(0); et < eventTypeCount; et++ {
		c.On(et, func(ev Event) { log = append(log, ev) })
	}
	return &log
}

func eventTypes(evs []Event) []EventType {
	out := make([]EventType, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}

func countEvents(evs []Event, et EventType) int {
	n := 0
	for _, ev := range evs {
		if ev.Type == et {
			n++
		}
	}
	return n
}

// zoomedChart is a line chart zoomed 2x so panning is possible in both
// directions: transX in [-100, 0] and transY in [0, 100].
func zoomedChart(cfg Config, transX, transY float64) *Chart {
	c := lineChart(cfg, rampSet())
	c.Viewport().Refresh(scaleTranslate(2, 2, transX, transY))
	return c
}

// --- Drag ---

func TestDragPansViewport(t *testing.T) {
	c := zoomedChart(DefaultConfig(), -50, 50)
	log := recordEvents(c)

	press(c, 0, 50, 50, 0)
	drag(c, 0, 40, 60, ms(500))
	if c.Gesture().State() != GestureDrag {
		t.Fatalf("state = %s, want drag", c.Gesture().State())
	}
	drag(c, 0, 30, 70, ms(1000))
	assertNear(t, "transX", c.Viewport().TransX(), -70)
	assertNear(t, "transY", c.Viewport().TransY(), 70)
	release(c, 0, 30, 70, ms(1500))

	if c.Gesture().State() != GestureIdle {
		t.Errorf("state after release = %s, want idle", c.Gesture().State())
	}
	types := eventTypes(*log)
	if len(types) < 3 || types[0] != EventDragStart || types[len(types)-1] != EventDragEnd {
		t.Errorf("events = %v, want drag-start ... drag-end", types)
	}
	if countEvents(*log, EventFlingStart) != 0 {
		t.Error("slow drag started a fling")
	}
}

func TestDragBelowTriggerIsIgnored(t *testing.T) {
	c := zoomedChart(DefaultConfig(), -50, 50)
	press(c, 0, 50, 50, 0)
	drag(c, 0, 52, 51, ms(10))
	if c.Gesture().State() != GestureIdle {
		t.Errorf("state = %s, want idle below the drag trigger", c.Gesture().State())
	}
	assertNear(t, "transX", c.Viewport().TransX(), -50)
}

// A pan with horizontal dragging disabled: the move must be vertical enough
// to start the drag, after which horizontal motion is dropped.
func TestDragAxisGated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DragXEnabled = false
	c := zoomedChart(cfg, 0, 0)
	log := recordEvents(c)

	press(c, 0, 50, 50, 0)
	drag(c, 0, 50, 60, ms(10))
	if c.Gesture().State() != GestureDrag {
		t.Fatalf("state = %s, want drag", c.Gesture().State())
	}
	drag(c, 0, 100, 60, ms(20)) // raw delta (50, 10)

	last := (*log)[len(*log)-1]
	if last.Type != EventDrag || last.DeltaX != 0 || last.DeltaY != 10 {
		t.Errorf("last event = %s (%v, %v), want drag (0, 10)", last.Type, last.DeltaX, last.DeltaY)
	}
	assertNear(t, "transX", c.Viewport().TransX(), 0)
	assertNear(t, "transY", c.Viewport().TransY(), 10)
}

func TestDragAxisGatedHorizontalMoveDoesNotStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DragXEnabled = false
	c := zoomedChart(cfg, 0, 0)
	press(c, 0, 50, 50, 0)
	drag(c, 0, 100, 60, ms(10))
	if c.Gesture().State() != GestureIdle {
		t.Errorf("state = %s, want idle for an x-dominant move", c.Gesture().State())
	}
}

func TestDragInvertedAxis(t *testing.T) {
	for _, inverted := range []bool{false, true} {
		cfg := DefaultConfig()
		cfg.InvertLeftAxis = inverted
		c := zoomedChart(cfg, -50, 50)
		press(c, 0, 50, 50, 0)
		drag(c, 0, 50, 60, ms(500))
		want := 60.0
		if inverted {
			want = 40
		}
		assertNear(t, "transY", c.Viewport().TransY(), want)
	}
}

func TestDragNotPossibleWhenFullyZoomedOut(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	press(c, 0, 30, 40, 0)
	drag(c, 0, 52, 40, ms(10))
	if c.Gesture().State() != GestureIdle {
		t.Errorf("state = %s, want idle", c.Gesture().State())
	}
	// Highlight per drag follows the pointer instead.
	h, ok := c.Highlighted()
	if !ok || h.EntryIndex != 5 {
		t.Fatalf("highlight = %d %v, want entry 5", h.EntryIndex, ok)
	}
	drag(c, 0, 51, 40, ms(20))
	if _, ok := c.Highlighted(); !ok {
		t.Error("dragging over the highlighted entry cleared it")
	}
}

// --- Fling ---

func TestFlingContinuesAfterRelease(t *testing.T) {
	c := zoomedChart(DefaultConfig(), -20, 50)
	log := recordEvents(c)

	press(c, 0, 50, 50, 0)
	drag(c, 0, 45, 50, ms(10))
	drag(c, 0, 40, 50, ms(20))
	release(c, 0, 35, 50, ms(30))

	if !c.Gesture().Decelerating() {
		t.Fatal("no fling after a fast release")
	}
	afterDrag := c.Viewport().TransX()
	assertNear(t, "transX after drag", afterDrag, -30)

	now := ms(30)
	for i := 0; i < 1000 && c.Update(now); i++ {
		now += frame
	}
	if c.Gesture().Decelerating() {
		t.Fatal("fling never stopped")
	}
	if c.Viewport().TransX() >= afterDrag {
		t.Errorf("transX = %v, want beyond %v", c.Viewport().TransX(), afterDrag)
	}
	if c.Viewport().TransX() < -100 {
		t.Errorf("fling escaped the pan limit: %v", c.Viewport().TransX())
	}
	if countEvents(*log, EventFlingStart) != 1 || countEvents(*log, EventFlingEnd) != 1 {
		t.Errorf("events = %v, want one fling-start and one fling-end", eventTypes(*log))
	}
}

func TestFlingDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DragDecelerationEnabled = false
	c := zoomedChart(cfg, -20, 50)
	press(c, 0, 50, 50, 0)
	drag(c, 0, 40, 50, ms(10))
	release(c, 0, 30, 50, ms(20))
	if c.Gesture().Decelerating() {
		t.Error("fling started with deceleration disabled")
	}
}

func TestPointerDownStopsFling(t *testing.T) {
	c := zoomedChart(DefaultConfig(), -20, 50)
	press(c, 0, 50, 50, 0)
	drag(c, 0, 40, 50, ms(10))
	release(c, 0, 30, 50, ms(20))
	if !c.Gesture().Decelerating() {
		t.Fatal("no fling")
	}
	press(c, 0, 60, 60, ms(30))
	if c.Gesture().Decelerating() {
		t.Error("pointer down did not stop the fling")
	}
	c.StopDeceleration()
}

// --- Zoom ---

// Pinch spacing grows from 100px to 150px while the x-axis is at its
// maximum scale: only y zooms.
func TestPinchZoomIndependentAxes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PinchZoomEnabled = true
	c := lineChart(cfg, rampSet())
	c.Viewport().SetMinMaxScale(AxisX, 1, 1)
	if c.Viewport().CanZoomInMore(AxisX) || !c.Viewport().CanZoomInMore(AxisY) {
		t.Fatal("unexpected zoom bounds")
	}

	press(c, 0, 0, 50, 0)
	press(c, 1, 100, 50, ms(5))
	if c.Gesture().State() != GesturePinchZoom {
		t.Fatalf("state = %s, want pinch-zoom", c.Gesture().State())
	}
	drag(c, 0, -25, 50, ms(10))
	drag(c, 1, 125, 50, ms(10))

	assertNear(t, "scaleX", c.Viewport().ScaleX(), 1)
	assertNear(t, "scaleY", c.Viewport().ScaleY(), 1.5)
}

func TestPinchZoomAboutMidpoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PinchZoomEnabled = true
	c := lineChart(cfg, rampSet())
	before := c.ValuesByTouchPoint(50, 50, AxisLeft)

	press(c, 0, 30, 50, 0)
	press(c, 1, 70, 50, ms(5))
	drag(c, 1, 90, 50, ms(10))
	drag(c, 0, 10, 50, ms(10))

	assertNear(t, "scaleX", c.Viewport().ScaleX(), 2)
	assertNear(t, "scaleY", c.Viewport().ScaleY(), 2)
	after := c.ValuesByTouchPoint(50, 50, AxisLeft)
	if !approxEqual(after.X, before.X, 1e-6) || !approxEqual(after.Y, before.Y, 1e-6) {
		t.Errorf("midpoint moved: %+v -> %+v", before, after)
	}
}

func TestAxisZoomPicksDominantAxis(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	press(c, 0, 20, 50, 0)
	press(c, 1, 80, 52, ms(5))
	if c.Gesture().State() != GestureXZoom {
		t.Fatalf("state = %s, want x-zoom", c.Gesture().State())
	}
	drag(c, 1, 110, 52, ms(10))
	assertNear(t, "scaleX", c.Viewport().ScaleX(), 1.5)
	assertNear(t, "scaleY", c.Viewport().ScaleY(), 1)

	c2 := lineChart(DefaultConfig(), rampSet())
	press(c2, 0, 50, 20, 0)
	press(c2, 1, 52, 80, ms(5))
	if c2.Gesture().State() != GestureYZoom {
		t.Errorf("state = %s, want y-zoom", c2.Gesture().State())
	}
}

func TestZoomIgnoresCloseFingers(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	press(c, 0, 50, 50, 0)
	press(c, 1, 52, 50, ms(5))
	if c.Gesture().State().zooming() {
		t.Errorf("state = %s for fingers 2px apart", c.Gesture().State())
	}
}

func TestPostZoomUntilLastPointerLifts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PinchZoomEnabled = true
	c := lineChart(cfg, rampSet())
	log := recordEvents(c)

	press(c, 0, 30, 50, 0)
	press(c, 1, 70, 50, ms(5))
	drag(c, 1, 90, 50, ms(10))
	release(c, 1, 90, 50, ms(20))

	if c.Gesture().State() != GesturePostZoom {
		t.Fatalf("state = %s, want post-zoom", c.Gesture().State())
	}
	if countEvents(*log, EventZoomEnd) != 1 {
		t.Errorf("events = %v, want one zoom-end", eventTypes(*log))
	}
	tx := c.Viewport().TransX()
	drag(c, 0, 10, 30, ms(30))
	assertNear(t, "transX while post-zoom", c.Viewport().TransX(), tx)

	release(c, 0, 10, 30, ms(40))
	if c.Gesture().State() != GestureIdle {
		t.Errorf("state = %s, want idle", c.Gesture().State())
	}
	if c.Gesture().PointerCount() != 0 {
		t.Errorf("pointer count = %d, want 0", c.Gesture().PointerCount())
	}
}

func TestThirdPointerIgnored(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	press(c, 0, 20, 50, 0)
	press(c, 1, 80, 50, 0)
	press(c, 2, 50, 20, 0)
	if c.Gesture().PointerCount() != 2 {
		t.Errorf("pointer count = %d, want 2", c.Gesture().PointerCount())
	}
	release(c, 2, 50, 20, ms(5))
	if c.Gesture().PointerCount() != 2 {
		t.Errorf("unknown pointer release changed the count to %d", c.Gesture().PointerCount())
	}
}

// --- Taps ---

func TestTapTogglesHighlight(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	log := recordEvents(c)

	press(c, 0, 52, 40, 0)
	release(c, 0, 52, 40, ms(50))
	h, ok := c.Highlighted()
	if !ok || h.EntryIndex != 5 {
		t.Fatalf("highlight = %d %v, want entry 5", h.EntryIndex, ok)
	}

	press(c, 0, 52, 40, ms(1000))
	release(c, 0, 52, 40, ms(1050))
	if _, ok := c.Highlighted(); ok {
		t.Error("second tap on the same entry kept the highlight")
	}
	if countEvents(*log, EventTap) != 2 || countEvents(*log, EventHighlight) != 1 || countEvents(*log, EventHighlightClear) != 1 {
		t.Errorf("events = %v", eventTypes(*log))
	}
}

func TestTapMovesHighlight(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	press(c, 0, 52, 40, 0)
	release(c, 0, 52, 40, ms(50))
	press(c, 0, 21, 40, ms(1000))
	release(c, 0, 21, 40, ms(1050))
	h, ok := c.Highlighted()
	if !ok || h.EntryIndex != 2 {
		t.Errorf("highlight = %d %v, want entry 2", h.EntryIndex, ok)
	}
}

func TestTapHighlightDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HighlightPerTapEnabled = false
	c := lineChart(cfg, rampSet())
	press(c, 0, 52, 40, 0)
	release(c, 0, 52, 40, ms(50))
	if _, ok := c.Highlighted(); ok {
		t.Error("tap highlighted with tap highlighting disabled")
	}
}

func TestDoubleTapZooms(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	log := recordEvents(c)
	press(c, 0, 50, 50, 0)
	release(c, 0, 50, 50, ms(40))
	press(c, 0, 52, 50, ms(120))
	release(c, 0, 52, 50, ms(160))

	if countEvents(*log, EventDoubleTap) != 1 {
		t.Fatalf("events = %v, want a double-tap", eventTypes(*log))
	}
	assertNear(t, "scaleX", c.Viewport().ScaleX(), zoomInFactor)
	assertNear(t, "scaleY", c.Viewport().ScaleY(), zoomInFactor)
}

func TestSlowTapsAreNotDoubleTap(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	press(c, 0, 50, 50, 0)
	release(c, 0, 50, 50, ms(40))
	press(c, 0, 50, 50, ms(800))
	release(c, 0, 50, 50, ms(840))
	assertNear(t, "scaleX", c.Viewport().ScaleX(), 1)
}

// --- Radial ---

func TestRotateRadialChart(t *testing.T) {
	c := pieChart()
	log := recordEvents(c)
	center := c.Radial().Center

	press(c, 0, center.X, center.Y-30, 0)
	drag(c, 0, center.X+30, center.Y, ms(50))
	if c.Gesture().State() != GestureRotate {
		t.Fatalf("state = %s, want rotate", c.Gesture().State())
	}
	assertNear(t, "rotation", c.Rotation(), 90)

	release(c, 0, center.X+30, center.Y, ms(60))
	if !c.Gesture().Decelerating() {
		t.Fatal("release did not start a spin")
	}
	now := ms(60)
	for i := 0; i < 10000 && c.Update(now); i++ {
		now += frame
	}
	if c.Gesture().Decelerating() {
		t.Fatal("spin never stopped")
	}
	if r := c.Rotation(); r <= 90 {
		t.Errorf("rotation = %v, want past 90 after a clockwise spin", r)
	}
	if countEvents(*log, EventRotate) == 0 || countEvents(*log, EventFlingEnd) != 1 {
		t.Errorf("events = %v", eventTypes(*log))
	}
}

func TestRotationDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RotationEnabled = false
	entries := []Entry{{X: 0, Y: 1}, {X: 1, Y: 1}}
	c := newTestChart(ChartPie, cfg, NewDataSet("pie", entries))
	press(c, 0, 50, 20, 0)
	drag(c, 0, 80, 50, ms(50))
	if c.Rotation() != 0 {
		t.Errorf("rotation = %v, want 0", c.Rotation())
	}
}

func TestRadialIgnoresSecondPointer(t *testing.T) {
	c := pieChart()
	press(c, 0, 50, 20, 0)
	press(c, 1, 50, 80, ms(5))
	if c.Gesture().State().zooming() {
		t.Errorf("state = %s, radial charts do not zoom", c.Gesture().State())
	}
}

// --- Cancel and robustness ---

func TestCancelResets(t *testing.T) {
	c := zoomedChart(DefaultConfig(), -50, 50)
	press(c, 0, 50, 50, 0)
	drag(c, 0, 30, 50, ms(10))
	c.HandlePointer(PointerEvent{Action: PointerCancel, Time: ms(20)})
	if c.Gesture().State() != GestureIdle || c.Gesture().PointerCount() != 0 {
		t.Errorf("state = %s count %d after cancel", c.Gesture().State(), c.Gesture().PointerCount())
	}
	if c.Gesture().Decelerating() {
		t.Error("cancel left a fling running")
	}
}

func TestCancelStopsFling(t *testing.T) {
	c := zoomedChart(DefaultConfig(), -20, 50)
	press(c, 0, 50, 50, 0)
	drag(c, 0, 45, 50, ms(10))
	drag(c, 0, 40, 50, ms(20))
	release(c, 0, 35, 50, ms(30))
	if !c.Gesture().Decelerating() {
		t.Fatal("no fling after a fast release")
	}

	c.HandlePointer(PointerEvent{Action: PointerCancel, Time: ms(40)})
	if c.Gesture().Decelerating() {
		t.Error("cancel left the fling running")
	}
	if v := c.Gesture().Scroller().Velocity(); v != (Vec2{}) {
		t.Errorf("velocity = %+v after cancel, want zero", v)
	}
	before := c.Viewport().TransX()
	c.Update(ms(56))
	if c.Viewport().TransX() != before {
		t.Errorf("transX moved from %v to %v after cancel", before, c.Viewport().TransX())
	}
}

func TestCancelStopsSpin(t *testing.T) {
	c := pieChart()
	center := c.Radial().Center
	press(c, 0, center.X, center.Y-30, 0)
	drag(c, 0, center.X+30, center.Y, ms(50))
	release(c, 0, center.X+30, center.Y, ms(60))
	if !c.Gesture().Decelerating() {
		t.Fatal("release did not start a spin")
	}

	c.HandlePointer(PointerEvent{Action: PointerCancel, Time: ms(70)})
	if c.Gesture().Decelerating() {
		t.Error("cancel left the spin running")
	}
	if v := c.Gesture().Spinner().AngularVelocity(); v != 0 {
		t.Errorf("angular velocity = %v after cancel, want zero", v)
	}
	before := c.Rotation()
	c.Update(ms(86))
	if c.Rotation() != before {
		t.Errorf("rotation moved from %v to %v after cancel", before, c.Rotation())
	}
}

func TestNonFiniteEventsIgnored(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	press(c, 0, 50, 50, 0)
	if c.Gesture().Handle(PointerEvent{Action: PointerMove, ID: 0, X: math.NaN(), Y: 50}) {
		t.Error("NaN move changed the viewport")
	}
}

func TestEventsBeforeLayoutDropped(t *testing.T) {
	c := NewChart(ChartLine, DefaultConfig())
	press(c, 0, 10, 10, 0)
	if c.Gesture().PointerCount() != 0 {
		t.Error("pointer accepted before the chart had a size")
	}
}

func TestGestureWithoutHost(t *testing.T) {
	vp := newTestViewport()
	vp.Refresh(scaleTranslate(2, 2, -50, 40))
	g := NewGesture(ChartLine, vp, nil, DefaultConfig(), nil)
	g.Handle(PointerEvent{Action: PointerDown, X: 100, Y: 50})
	g.Handle(PointerEvent{Action: PointerMove, X: 90, Y: 50, Time: ms(500)})
	g.Handle(PointerEvent{Action: PointerUp, X: 90, Y: 50, Time: ms(600)})
	assertNear(t, "transX", vp.TransX(), -60)
}
