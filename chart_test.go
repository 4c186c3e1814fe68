package chartview

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

type recordingSink struct {
	events []Event
}

func (s *recordingSink) EmitEvent(ev Event) { s.events = append(s.events, ev) }

// --- Layout and ranges ---

func TestNewChartDefaults(t *testing.T) {
	c := NewChart(ChartLine, DefaultConfig())
	if c.Viewport().HasChartDimens() {
		t.Error("new chart has dimensions")
	}
	if c.Kind() != ChartLine || c.Gesture().State() != GestureIdle {
		t.Errorf("kind %s state %s", c.Kind(), c.Gesture().State())
	}
	px, py := c.Phase()
	if px != 1 || py != 1 {
		t.Errorf("phase = %v, %v, want 1, 1", px, py)
	}
	if _, ok := c.Highlighted(); ok {
		t.Error("new chart has a highlight")
	}
}

func TestMinOffsetInsets(t *testing.T) {
	c := NewChart(ChartLine, DefaultConfig())
	c.SetSize(200, 100)
	want := Rect{Left: 15, Top: 15, Right: 185, Bottom: 85}
	if got := c.Viewport().Content(); got != want {
		t.Errorf("content = %+v, want %+v", got, want)
	}
}

func TestLayoutAndExtraOffsets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinOffset = 0
	c := NewChart(ChartLine, cfg)
	c.SetSize(200, 100)
	c.SetLayout(func(*Chart) Insets { return Insets{Left: 30, Bottom: 20} })
	c.SetExtraOffsets(Insets{Left: 5, Top: 4})
	want := Rect{Left: 35, Top: 4, Right: 200, Bottom: 80}
	if got := c.Viewport().Content(); got != want {
		t.Errorf("content = %+v, want %+v", got, want)
	}
}

func TestAutoRanges(t *testing.T) {
	tests := []struct {
		name       string
		kind       ChartKind
		set        *DataSet
		xMin, xMax float64
		yMin, yMax float64
	}{
		{"line", ChartLine, rampSet(), 0, 10, -10, 110},
		{"flat line", ChartLine, constSet("c", 3, 5), 0, 2, 3.8, 6.2},
		{"bar keeps zero", ChartBar, constSet("c", 3, 5), -0.425, 2.425, 0, 6.2},
		{"negative bar keeps zero", ChartBar, constSet("c", 3, -5), -0.425, 2.425, -6.2, 0},
		{"candle pads x", ChartCandle, rampSet(), -0.5, 10.5, -10, 110},
		{"radar starts at zero", ChartRadar, constSet("c", 3, 5), 0, 2, 0, 6},
	}
	for _, tt := range tests {
		c := newTestChart(tt.kind, DefaultConfig(), tt.set)
		xMin, xMax := c.XRange()
		yMin, yMax := c.YRange(AxisLeft)
		if !approxEqual(xMin, tt.xMin, 1e-9) || !approxEqual(xMax, tt.xMax, 1e-9) {
			t.Errorf("%s: x range = [%v, %v], want [%v, %v]", tt.name, xMin, xMax, tt.xMin, tt.xMax)
		}
		if !approxEqual(yMin, tt.yMin, 1e-9) || !approxEqual(yMax, tt.yMax, 1e-9) {
			t.Errorf("%s: y range = [%v, %v], want [%v, %v]", tt.name, yMin, yMax, tt.yMin, tt.yMax)
		}
	}
}

func TestRightAxisFallsBackToLeftData(t *testing.T) {
	c := newTestChart(ChartLine, DefaultConfig(), rampSet())
	lMin, lMax := c.YRange(AxisLeft)
	rMin, rMax := c.YRange(AxisRight)
	if lMin != rMin || lMax != rMax {
		t.Errorf("right range [%v, %v], left [%v, %v]", rMin, rMax, lMin, lMax)
	}

	right := constSet("right", 3, 50)
	right.Axis = AxisRight
	c = newTestChart(ChartLine, DefaultConfig(), rampSet(), right)
	rMin, rMax = c.YRange(AxisRight)
	assertNear(t, "right min", rMin, 48.8)
	assertNear(t, "right max", rMax, 51.2)
}

func TestCustomYAxisRange(t *testing.T) {
	c := newTestChart(ChartLine, DefaultConfig(), rampSet())
	c.SetYAxisRange(AxisLeft, 200, -50)
	lo, hi := c.YRange(AxisLeft)
	if lo != -50 || hi != 200 {
		t.Errorf("range = [%v, %v], want [-50, 200]", lo, hi)
	}
	c.SetData(NewChartData(constSet("c", 2, 1000)))
	if lo, hi = c.YRange(AxisLeft); lo != -50 || hi != 200 {
		t.Errorf("custom range replaced by data: [%v, %v]", lo, hi)
	}
	c.SetYAxisRange(AxisLeft, math.NaN(), 0)
	lo, hi = c.YRange(AxisLeft)
	assertNear(t, "auto min", lo, 998.8)
	assertNear(t, "auto max", hi, 1001.2)
}

func TestChartWithoutData(t *testing.T) {
	c := newTestChart(ChartLine, DefaultConfig())
	lo, hi := c.XRange()
	if lo != 0 || hi != 0 {
		t.Errorf("x range = [%v, %v], want zeros", lo, hi)
	}
	if c.HighlightX(1, 0) {
		t.Error("HighlightX succeeded without data")
	}
}

func TestChartWithNilDataSet(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet(), nil)
	lo, hi := c.XRange()
	if lo != 0 || hi != 10 {
		t.Errorf("x range = [%v, %v], want [0, 10]", lo, hi)
	}
	h, ok := c.HighlightAt(50, 50)
	if !ok || h.DataSetIndex != 0 || h.EntryIndex != 5 {
		t.Errorf("highlight = set %d entry %d %v, want set 0 entry 5", h.DataSetIndex, h.EntryIndex, ok)
	}
	if c.HighlightX(3, 1) {
		t.Error("HighlightX succeeded on a nil set")
	}

	pie := newTestChart(ChartPie, DefaultConfig(), nil)
	if _, ok := pie.HighlightAt(50, 30); ok {
		t.Error("pie with a nil set resolved a slice")
	}
	radar := newTestChart(ChartRadar, DefaultConfig(), nil, constSet("outer", 4, 100))
	if _, ok := radar.HighlightAt(50, 30); !ok {
		t.Error("radar with a leading nil set resolved nothing")
	}
}

func TestValuesAndPixelsRoundTrip(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	p := c.PixelForValues(4, 30, AxisLeft)
	assertNear(t, "px", p.X, 40)
	assertNear(t, "py", p.Y, 70)
	v := c.ValuesByTouchPoint(p.X, p.Y, AxisLeft)
	assertNear(t, "x", v.X, 4)
	assertNear(t, "y", v.Y, 30)
}

func TestVisibleXRange(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	assertNear(t, "lowest", c.LowestVisibleX(), 0)
	assertNear(t, "highest", c.HighestVisibleX(), 10)

	c.Viewport().Refresh(scaleTranslate(2, 2, -50, 0))
	assertNear(t, "lowest zoomed", c.LowestVisibleX(), 2.5)
	assertNear(t, "highest zoomed", c.HighestVisibleX(), 7.5)
}

func TestMaxVisibleRangeLimitsZoomOut(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxVisibleRangeX = 5
	c := lineChart(cfg, rampSet())
	assertNear(t, "min scale x", c.Viewport().MinScale(AxisX), 2)
	assertNear(t, "scale x", c.Viewport().ScaleX(), 2)
}

// --- Zoom ---

func TestZoomInOut(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	c.ZoomIn()
	assertNear(t, "scale after zoom in", c.Viewport().ScaleX(), zoomInFactor)
	c.ZoomOut()
	// 1.4 * 0.7 is below the minimum scale.
	assertNear(t, "scale after zoom out", c.Viewport().ScaleX(), 1)

	c.ZoomAt(4, 1, 50, 50)
	if c.Viewport().ScaleY() != c.Viewport().ScaleX()/4 {
		t.Errorf("scale = %v x %v", c.Viewport().ScaleX(), c.Viewport().ScaleY())
	}
	c.ZoomAt(math.NaN(), 2, 50, 50)
	c.ZoomAt(0, 2, 50, 50)

	c.FitScreen()
	assertNear(t, "scale x after fit", c.Viewport().ScaleX(), 1)
	assertNear(t, "trans x after fit", c.Viewport().TransX(), 0)
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	before := c.ValuesByTouchPoint(30, 60, AxisLeft)
	c.ZoomAt(2, 2, 30, 60)
	after := c.ValuesByTouchPoint(30, 60, AxisLeft)
	assertNear(t, "x", after.X, before.X)
	assertNear(t, "y", after.Y, before.Y)
}

func TestResetZoom(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	c.ZoomAt(3, 3, 20, 20)
	c.ResetZoom()
	if c.Viewport().Matrix() != Identity {
		t.Errorf("matrix = %+v, want identity", c.Viewport().Matrix())
	}
}

func TestRadialChartsDoNotZoom(t *testing.T) {
	c := pieChart()
	c.ZoomIn()
	c.FitScreen()
	if c.Viewport().ScaleX() != 1 {
		t.Errorf("pie zoomed to %v", c.Viewport().ScaleX())
	}
	c.SetRotation(45)
	assertNear(t, "rotation", c.Rotation(), 45)
}

// --- Moving the view ---

func TestCenterViewTo(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	c.Viewport().Refresh(scaleTranslate(2, 2, 0, 0))
	c.CenterViewTo(5, 50, AxisLeft)
	v := c.ValuesByTouchPoint(50, 50, AxisLeft)
	assertNear(t, "center x", v.X, 5)
	assertNear(t, "center y", v.Y, 50)
}

func TestMoveViewTo(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	c.Viewport().Refresh(scaleTranslate(2, 2, 0, 0))
	c.MoveViewTo(2, 50, AxisLeft)
	assertNear(t, "lowest x", c.LowestVisibleX(), 2)
	v := c.ValuesByTouchPoint(0, 50, AxisLeft)
	assertNear(t, "center y", v.Y, 50)
}

func TestMoveViewToAnimated(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	c.Viewport().Refresh(scaleTranslate(2, 2, 0, 0))
	j := c.MoveViewToAnimated(4, 50, AxisLeft, 0.1, ease.Linear)

	c.Update(0)
	c.Update(ms(50))
	if !approxEqual(j.Phase(), 0.5, 1e-6) {
		t.Errorf("phase = %v, want 0.5", j.Phase())
	}
	if got := c.LowestVisibleX(); got <= 0 || got >= 4 {
		t.Errorf("halfway lowest x = %v", got)
	}
	c.Update(ms(150))
	if !j.Done() {
		t.Fatal("job still running")
	}
	assertNear(t, "lowest x", c.LowestVisibleX(), 4)
	if c.Update(ms(200)) {
		t.Error("idle chart still wants frames")
	}
}

func TestPointerDownCancelsMoveJob(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	c.Viewport().Refresh(scaleTranslate(2, 2, 0, 0))
	j := c.CenterViewToAnimated(8, 50, AxisLeft, 1, nil)
	c.Update(0)
	press(c, 0, 50, 50, 0)
	if !j.Done() {
		t.Error("pointer down did not cancel the job")
	}
	c.Update(ms(16))
	if len(c.jobs) != 0 {
		t.Errorf("%d jobs left after cancel", len(c.jobs))
	}
}

// --- Frame loop ---

func TestUpdateReportsRedraw(t *testing.T) {
	c := zoomedChart(DefaultConfig(), -50, 50)
	c.Update(0)
	if c.Update(ms(16)) {
		t.Fatal("idle chart wants a redraw")
	}
	press(c, 0, 50, 50, ms(20))
	drag(c, 0, 40, 50, ms(1000))
	if !c.Update(ms(1016)) {
		t.Error("pan did not request a redraw")
	}
	if c.Update(ms(1032)) {
		t.Error("redraw requested twice for one pan")
	}
}

func TestAnimatorDrivesRedraw(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	c.Update(0)
	c.Animator().AnimateXY(0.1, 0.2, ease.Linear, nil)
	px, py := c.Phase()
	if px != 0 || py != 0 {
		t.Fatalf("phase = %v, %v, want 0, 0", px, py)
	}
	if !c.Update(ms(100)) {
		t.Fatal("running animation did not request a redraw")
	}
	px, py = c.Phase()
	assertNear(t, "phase x", px, 1)
	assertNear(t, "phase y", py, 0.5)
	if !c.Update(ms(200)) {
		t.Error("final animation frame not drawn")
	}
	if c.Update(ms(300)) {
		t.Error("finished animation still wants frames")
	}
}

// --- Highlighting ---

func TestHighlightX(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	if !c.HighlightX(6.7, 0) {
		t.Fatal("HighlightX failed")
	}
	h, ok := c.Highlighted()
	if !ok || h.EntryIndex != 7 || h.Y != 70 {
		t.Fatalf("highlight = %+v %v", h, ok)
	}
	assertNear(t, "xPx", h.XPx, 70)
	assertNear(t, "yPx", h.YPx, 30)

	if c.HighlightX(1, 3) {
		t.Error("HighlightX on a missing set succeeded")
	}
	if _, ok := c.Highlighted(); ok {
		t.Error("failed HighlightX kept the old highlight")
	}
}

func TestHighlightValueValidation(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	c.HighlightValue(Highlight{DataSetIndex: 0, EntryIndex: 3, StackIndex: -1})
	if _, ok := c.Highlighted(); !ok {
		t.Fatal("valid highlight rejected")
	}
	c.HighlightValue(Highlight{DataSetIndex: 0, EntryIndex: 99})
	if _, ok := c.Highlighted(); ok {
		t.Error("out of range highlight kept")
	}
}

func TestHighlightEventsDeduplicated(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	log := recordEvents(c)
	h := Highlight{DataSetIndex: 0, EntryIndex: 3, StackIndex: -1}
	c.HighlightValue(h)
	c.HighlightValue(h)
	c.ClearHighlight()
	c.ClearHighlight()
	if got := eventTypes(*log); len(got) != 2 || got[0] != EventHighlight || got[1] != EventHighlightClear {
		t.Errorf("events = %v", got)
	}
}

func TestSetDataClearsHighlight(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	c.HighlightX(3, 0)
	c.SetData(NewChartData(rampSet()))
	if _, ok := c.Highlighted(); ok {
		t.Error("SetData kept the highlight")
	}
}

// --- Events ---

func TestOnAndRemove(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	var taps, highlights int
	h := c.On(EventTap, func(Event) { taps++ })
	c.On(EventHighlight, func(Event) { highlights++ })

	press(c, 0, 50, 50, 0)
	release(c, 0, 50, 50, ms(10))
	h.Remove()
	h.Remove()
	press(c, 0, 20, 50, ms(1000))
	release(c, 0, 20, 50, ms(1010))

	if taps != 1 {
		t.Errorf("taps = %d, want 1", taps)
	}
	if highlights != 2 {
		t.Errorf("highlights = %d, want 2", highlights)
	}
	if got := c.On(eventTypeCount, func(Event) {}); got.reg != nil {
		t.Error("On accepted an unknown event type")
	}
	CallbackHandle{}.Remove()
}

func TestEventSinkAfterCallbacks(t *testing.T) {
	c := lineChart(DefaultConfig(), rampSet())
	sink := &recordingSink{}
	var order []string
	c.On(EventTap, func(Event) { order = append(order, "callback") })
	c.SetEventSink(EventSinkFunc(func(ev Event) {
		sink.EmitEvent(ev)
		if ev.Type == EventTap {
			order = append(order, "sink")
		}
	}))
	press(c, 0, 50, 50, 0)
	release(c, 0, 50, 50, ms(10))
	if len(order) != 2 || order[0] != "callback" || order[1] != "sink" {
		t.Errorf("order = %v", order)
	}
	if countEvents(sink.events, EventTap) != 1 || countEvents(sink.events, EventHighlight) != 1 {
		t.Errorf("sink events = %v", eventTypes(sink.events))
	}
}

func TestEventTypeString(t *testing.T) {
	if EventDoubleTap.String() != "double-tap" || eventTypeCount.String() != "unknown" {
		t.Errorf("names: %s %s", EventDoubleTap, eventTypeCount)
	}
}
