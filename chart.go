package chartview

import (
	"log"
	"math"
	"time"
)

const (
	// axisSpace is the share of the value range added above and below the
	// data on auto-ranged value axes.
	axisSpace = 0.1

	// candlePad is the x padding, in x units, around candle and bubble data.
	candlePad = 0.5
)

// LayoutFunc returns the insets a chart needs around its content rect for
// axes, labels and legend. Each side is raised to at least the configured
// minimum offset.
type LayoutFunc func(c *Chart) Insets

type axisRange struct {
	min, max float64
	custom   bool
}

func (r axisRange) delta() float64 { return r.max - r.min }

// Chart ties a viewport, its coordinate mappers, the gesture controller and
// the highlighter of one chart together. Drive it from the host loop: feed
// pointer events to HandlePointer and call Update once per frame.
//
// Chart is not safe for concurrent use.
type Chart struct {
	kind ChartKind
	cfg  Config
	th   thresholds

	vp           *Viewport
	transformers [2]*Transformer
	mappers      [2]CoordinateMapper
	radial       *RadialLayout
	gesture      *Gesture
	highlighter  *Highlighter
	animator     *Animator
	jobs         []*MoveJob

	data   *ChartData
	xRange axisRange
	yRange [2]axisRange

	layout   LayoutFunc
	extra    Insets
	inverted [2]bool

	highlighted  Highlight
	hasHighlight bool

	handlers handlerRegistry
	sink     EventSink

	injectQueue []syntheticFrame
	runner      *ScriptRunner

	lastTick time.Duration
	hasTick  bool
	dirty    bool
	stats    debugStats
}

// NewChart creates an empty chart of the given kind. The dp thresholds of
// cfg are resolved to pixels once, here. An invalid cfg is logged and its
// unusable values replaced by defaults.
func NewChart(kind ChartKind, cfg Config) *Chart {
	if err := cfg.Validate(); err != nil {
		log.Printf("chartview: NewChart: %v; using defaults where needed", err)
	}
	c := &Chart{
		kind:     kind,
		cfg:      cfg,
		th:       cfg.resolve(),
		vp:       NewViewport(),
		radial:   NewRadialLayout(),
		animator: NewAnimator(),
		inverted: [2]bool{cfg.InvertLeftAxis, cfg.InvertRightAxis},
	}
	for i := range c.transformers {
		if kind.Horizontal() {
			s := NewSwappedTransformer(c.vp)
			c.transformers[i] = s.Base
			c.mappers[i] = s
		} else {
			t := NewTransformer(c.vp)
			c.transformers[i] = t
			c.mappers[i] = t
		}
	}
	c.vp.SetDragOffset(AxisX, c.th.dragOffsetX)
	c.vp.SetDragOffset(AxisY, c.th.dragOffsetY)

	c.gesture = NewGesture(kind, c.vp, c.radial, cfg, c)
	c.highlighter = NewHighlighter(HighlighterKindFor(kind), kind.Horizontal(), c)
	c.highlighter.FullBar = cfg.HighlightFullBar
	c.highlighter.MaxDistance = c.th.maxHighlight
	return c
}

// Kind returns the chart kind.
func (c *Chart) Kind() ChartKind { return c.kind }

// Config returns the configuration the chart was created with.
func (c *Chart) Config() Config { return c.cfg }

// Viewport returns the chart's viewport.
func (c *Chart) Viewport() *Viewport { return c.vp }

// Mapper returns the coordinate mapper of a value axis.
func (c *Chart) Mapper(axis AxisDependency) CoordinateMapper {
	if axis > AxisRight {
		axis = AxisLeft
	}
	return c.mappers[axis]
}

// Transformer returns the unswapped transformer behind the mapper of a
// value axis. Renderers use its matrices directly.
func (c *Chart) Transformer(axis AxisDependency) *Transformer {
	if axis > AxisRight {
		axis = AxisLeft
	}
	return c.transformers[axis]
}

// Radial returns the radial layout of pie and radar charts.
func (c *Chart) Radial() *RadialLayout { return c.radial }

// Gesture returns the gesture controller.
func (c *Chart) Gesture() *Gesture { return c.gesture }

// Highlighter returns the hit tester.
func (c *Chart) Highlighter() *Highlighter { return c.highlighter }

// Animator returns the entrance animator.
func (c *Chart) Animator() *Animator { return c.animator }

// Phase returns the animator's x and y phases.
func (c *Chart) Phase() (x, y float64) {
	return c.animator.PhaseX(), c.animator.PhaseY()
}

// Data returns the chart data, or nil.
func (c *Chart) Data() *ChartData { return c.data }

// SetData replaces the chart data, clears the highlight and recomputes the
// layout.
func (c *Chart) SetData(data *ChartData) {
	c.data = data
	c.ClearHighlight()
	c.CalculateOffsets()
}

// NotifyDataChanged recomputes data bounds and the layout after the data
// sets were mutated in place.
func (c *Chart) NotifyDataChanged() {
	if c.data != nil {
		for _, s := range c.data.DataSets {
			if s != nil {
				s.Recalculate()
			}
		}
	}
	c.CalculateOffsets()
}

// SetSize sets the chart's pixel size and recomputes the layout.
func (c *Chart) SetSize(width, height float64) {
	c.vp.SetChartDimens(width, height)
	c.CalculateOffsets()
}

// SetLayout sets the function that reports the insets axes and labels need.
func (c *Chart) SetLayout(fn LayoutFunc) {
	c.layout = fn
	c.CalculateOffsets()
}

// SetExtraOffsets adds fixed pixel insets on top of the layout's.
func (c *Chart) SetExtraOffsets(in Insets) {
	c.extra = in
	c.CalculateOffsets()
}

// SetInverted sets whether a value axis grows downward (leftward for
// horizontal charts).
func (c *Chart) SetInverted(axis AxisDependency, inverted bool) {
	if axis > AxisRight {
		return
	}
	c.inverted[axis] = inverted
	c.CalculateOffsets()
}

// IsInverted reports whether a value axis is inverted.
func (c *Chart) IsInverted(axis AxisDependency) bool {
	return axis <= AxisRight && c.inverted[axis]
}

// SetYAxisRange fixes the range of a value axis instead of deriving it from
// the data. A NaN bound restores automatic ranging for that axis.
func (c *Chart) SetYAxisRange(axis AxisDependency, min, max float64) {
	if axis > AxisRight {
		return
	}
	if math.IsNaN(min) || math.IsNaN(max) {
		c.yRange[axis] = axisRange{}
	} else {
		c.yRange[axis] = axisRange{min: math.Min(min, max), max: math.Max(min, max), custom: true}
	}
	c.CalculateOffsets()
}

// XRange returns the x-axis range used for mapping.
func (c *Chart) XRange() (min, max float64) { return c.xRange.min, c.xRange.max }

// YRange returns the range of a value axis used for mapping.
func (c *Chart) YRange(axis AxisDependency) (min, max float64) {
	if axis > AxisRight {
		axis = AxisLeft
	}
	return c.yRange[axis].min, c.yRange[axis].max
}

// CalculateOffsets recomputes the axis ranges, the insets and content rect,
// and the transformer matrices (or radial geometry). It is a no-op until the
// chart has a size.
func (c *Chart) CalculateOffsets() {
	c.computeAxisRanges()
	if !c.vp.HasChartDimens() {
		return
	}

	var in Insets
	if c.layout != nil {
		in = c.layout(c)
	}
	m := c.th.minOffset
	in.Left = math.Max(m, in.Left+c.extra.Left)
	in.Top = math.Max(m, in.Top+c.extra.Top)
	in.Right = math.Max(m, in.Right+c.extra.Right)
	in.Bottom = math.Max(m, in.Bottom+c.extra.Bottom)
	c.vp.RestrainViewport(in)

	if c.kind.Radial() {
		c.radial.Fit(c.vp.Content())
		r := c.yRange[AxisLeft]
		c.radial.ValueMin = r.min
		c.radial.ValueFactor = axisScale(c.radial.Radius, r.delta())
	} else {
		c.prepareMatrices()
		c.applyVisibleRanges()
	}
	c.dirty = true
	if c.cfg.Debug {
		content := c.vp.Content()
		debugf("offsets: content %.1f,%.1f %.1fx%.1f", content.Left, content.Top, content.Width(), content.Height())
	}
}

func (c *Chart) prepareMatrices() {
	for i := range c.mappers {
		r := c.yRange[i]
		switch m := c.mappers[i].(type) {
		case *SwappedTransformer:
			m.PrepareValuePx(c.xRange.min, c.xRange.delta(), r.delta(), r.min)
			m.PrepareOffset(c.inverted[i])
		case *Transformer:
			m.PrepareValuePx(c.xRange.min, c.xRange.delta(), r.delta(), r.min)
			m.PrepareOffset(c.inverted[i])
		}
	}
}

// applyVisibleRanges turns the configured visible-range limits into scale
// bounds. Horizontal charts draw the x-axis vertically.
func (c *Chart) applyVisibleRanges() {
	xAxis, yAxis := AxisX, AxisY
	if c.kind.Horizontal() {
		xAxis, yAxis = AxisY, AxisX
	}
	if c.cfg.MinVisibleRangeX > 0 || c.cfg.MaxVisibleRangeX > 0 {
		c.vp.SetVisibleRange(xAxis, c.xRange.delta(), c.cfg.MinVisibleRangeX, c.cfg.MaxVisibleRangeX)
	}
	if c.cfg.MinVisibleRangeY > 0 || c.cfg.MaxVisibleRangeY > 0 {
		c.vp.SetVisibleRange(yAxis, c.yRange[AxisLeft].delta(), c.cfg.MinVisibleRangeY, c.cfg.MaxVisibleRangeY)
	}
}

func (c *Chart) computeAxisRanges() {
	xMin, xMax, ok := c.data.XRange()
	if !ok {
		xMin, xMax = 0, 0
	}
	switch c.kind {
	case ChartBar, ChartHorizontalBar:
		if ok && c.data.BarWidth > 0 {
			xMin -= c.data.BarWidth / 2
			xMax += c.data.BarWidth / 2
		}
	case ChartCandle, ChartBubble:
		if ok {
			xMin -= candlePad
			xMax += candlePad
		}
	}
	c.xRange = axisRange{min: xMin, max: xMax}

	for i := range c.yRange {
		if c.yRange[i].custom {
			continue
		}
		dep := AxisDependency(i)
		lo, hi, ok := c.data.YRange(dep)
		if !ok {
			lo, hi, ok = c.data.YRange(1 - dep)
		}
		c.yRange[i] = c.autoRange(lo, hi, ok)
	}
}

// autoRange pads the data range of a value axis. Bars keep zero on the
// axis; an empty range widens by one unit each way.
func (c *Chart) autoRange(lo, hi float64, ok bool) axisRange {
	if !ok {
		return axisRange{}
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	span := (hi - lo) * axisSpace
	r := axisRange{min: lo - span, max: hi + span}
	switch c.kind {
	case ChartBar, ChartHorizontalBar:
		if lo >= 0 {
			r.min = 0
		}
		if hi <= 0 {
			r.max = 0
		}
	case ChartRadar:
		r.min = math.Min(0, lo)
		r.max = hi
	}
	return r
}

// visibleXRange is the x span currently visible.
func (c *Chart) visibleXRange() float64 {
	s := c.vp.ScaleX()
	if c.kind.Horizontal() {
		s = c.vp.ScaleY()
	}
	return c.xRange.delta() / s
}

// visibleYRange is the value span of axis currently visible.
func (c *Chart) visibleYRange(axis AxisDependency) float64 {
	s := c.vp.ScaleY()
	if c.kind.Horizontal() {
		s = c.vp.ScaleX()
	}
	if axis > AxisRight {
		axis = AxisLeft
	}
	return c.yRange[axis].delta() / s
}

// LowestVisibleX returns the smallest x value inside the content rect.
func (c *Chart) LowestVisibleX() float64 {
	content := c.vp.Content()
	return math.Max(c.xRange.min, c.mappers[AxisLeft].ToData(Vec2{X: content.Left, Y: content.Bottom}).X)
}

// HighestVisibleX returns the largest x value inside the content rect.
func (c *Chart) HighestVisibleX() float64 {
	content := c.vp.Content()
	if c.kind.Horizontal() {
		return math.Min(c.xRange.max, c.mappers[AxisLeft].ToData(Vec2{X: content.Left, Y: content.Top}).X)
	}
	return math.Min(c.xRange.max, c.mappers[AxisLeft].ToData(Vec2{X: content.Right, Y: content.Bottom}).X)
}

// ValuesByTouchPoint maps a pixel to data values of a value axis.
func (c *Chart) ValuesByTouchPoint(x, y float64, axis AxisDependency) Vec2 {
	return c.Mapper(axis).ToData(Vec2{X: x, Y: y})
}

// PixelForValues maps data values of a value axis to a pixel.
func (c *Chart) PixelForValues(x, y float64, axis AxisDependency) Vec2 {
	return c.Mapper(axis).PixelFor(x, y)
}

// --- Input and frames ---

// HandlePointer feeds one pointer event to the gesture controller. Events
// before the chart has a size are dropped. It reports whether the chart
// needs a redraw.
func (c *Chart) HandlePointer(ev PointerEvent) bool {
	if !c.debugCheckLayout("pointer event") {
		return false
	}
	c.stats.pointerEvents++
	if ev.Action == PointerDown {
		for _, j := range c.jobs {
			j.Cancel()
		}
	}
	if c.gesture.Handle(ev) {
		c.afterViewportChange()
	}
	return c.dirty
}

// Update advances scripted input, animations, move jobs and deceleration to
// now. It reports whether the chart needs a redraw; while it keeps
// returning true the host should keep calling it every frame.
func (c *Chart) Update(now time.Duration) bool {
	var start time.Time
	if c.cfg.Debug {
		start = time.Now()
	}
	if c.runner != nil {
		c.runner.step(c)
	}
	c.processInjectedInput(now)

	var dt float32
	if c.hasTick && now > c.lastTick {
		dt = float32((now - c.lastTick).Seconds())
	}
	c.lastTick = now
	c.hasTick = true

	// The frame a tween finishes on still needs drawing.
	animating := c.animator.Running()
	c.animator.Update(dt)
	moving := c.runJobs(dt)
	scrolling := c.ComputeScroll(now)

	redraw := c.dirty || animating || moving || scrolling
	c.dirty = false

	if c.cfg.Debug {
		c.stats.updateTime = time.Since(start)
		c.debugLog(c.stats)
	}
	c.stats = debugStats{}
	return redraw
}

// ComputeScroll runs one deceleration tick. It reports whether deceleration
// continues.
func (c *Chart) ComputeScroll(now time.Duration) bool {
	if !c.gesture.Decelerating() {
		return false
	}
	c.stats.ticks++
	running := c.gesture.ComputeScroll(now)
	c.dirty = true
	return running
}

// StopDeceleration zeroes any fling or spin velocity.
func (c *Chart) StopDeceleration() {
	c.gesture.StopDeceleration()
}

func (c *Chart) afterViewportChange() {
	c.dirty = true
}

// --- Zoom and rotation ---

// ZoomIn zooms in by 1.4 about the content center.
func (c *Chart) ZoomIn() {
	p := c.vp.Content().Center()
	c.zoomAbout(zoomInFactor, zoomInFactor, p.X, p.Y)
}

// ZoomOut zooms out by 0.7 about the content center.
func (c *Chart) ZoomOut() {
	p := c.vp.Content().Center()
	c.zoomAbout(zoomOutFactor, zoomOutFactor, p.X, p.Y)
}

// ZoomAt scales the viewport by (sx, sy) about the pixel (x, y).
func (c *Chart) ZoomAt(sx, sy, x, y float64) {
	c.zoomAbout(sx, sy, x, y)
}

// ResetZoom removes all zoom and pan.
func (c *Chart) ResetZoom() {
	if !c.debugCheckLayout("reset zoom") || c.kind.Radial() {
		return
	}
	if _, changed := c.vp.Refresh(Identity); changed {
		c.afterViewportChange()
	}
	c.CalculateOffsets()
}

// FitScreen resets the minimum scales to 1 and removes all zoom and pan.
func (c *Chart) FitScreen() {
	if !c.debugCheckLayout("fit screen") || c.kind.Radial() {
		return
	}
	if _, changed := c.vp.Refresh(c.vp.FitScreen()); changed {
		c.afterViewportChange()
	}
	c.CalculateOffsets()
}

func (c *Chart) zoomAbout(sx, sy, x, y float64) {
	if !c.debugCheckLayout("zoom") || c.kind.Radial() {
		return
	}
	if !finite(sx) || !finite(sy) || sx <= 0 || sy <= 0 {
		return
	}
	cx, cy := c.vp.toContent(x, y, c.inverted[AxisLeft], c.kind.Horizontal())
	if _, changed := c.vp.Refresh(c.vp.Zoom(sx, sy, cx, cy)); changed {
		c.afterViewportChange()
	}
	c.CalculateOffsets()
}

// Rotation returns the rotation of a radial chart in degrees, [0, 360).
func (c *Chart) Rotation() float64 { return c.radial.Rotation() }

// SetRotation sets the rotation of a radial chart in degrees.
func (c *Chart) SetRotation(deg float64) {
	before := c.radial.Rotation()
	c.radial.SetRotation(deg)
	if c.radial.Rotation() != before {
		c.afterViewportChange()
	}
}

// --- Highlighting ---

// HighlightAt returns the highlight under the pixel (x, y) without changing
// the current selection.
func (c *Chart) HighlightAt(x, y float64) (Highlight, bool) {
	c.stats.highlights++
	if !c.debugCheckLayout("hit test") || !c.debugCheckData("hit test") {
		return Highlight{}, false
	}
	h, ok := c.highlighter.Resolve(x, y)
	if c.cfg.Debug {
		debugf("hit test %.1f,%.1f -> ok=%v set=%d entry=%d stack=%d", x, y, ok, h.DataSetIndex, h.EntryIndex, h.StackIndex)
	}
	return h, ok
}

// Highlighted returns the current selection.
func (c *Chart) Highlighted() (Highlight, bool) {
	return c.highlighted, c.hasHighlight
}

// HighlightValue selects h. A highlight that does not address an existing
// entry clears the selection instead.
func (c *Chart) HighlightValue(h Highlight) {
	if !c.validHighlight(h) {
		c.ClearHighlight()
		return
	}
	if c.hasHighlight && sameEntry(c.highlighted, h) && c.highlighted == h {
		return
	}
	c.highlighted = h
	c.hasHighlight = true
	c.dirty = true
	c.Emit(Event{Type: EventHighlight, X: h.XPx, Y: h.YPx, Highlight: h})
}

// HighlightX selects the entry of data set dataSetIndex nearest data x.
// It reports whether an entry was found.
func (c *Chart) HighlightX(x float64, dataSetIndex int) bool {
	if c.data == nil || dataSetIndex < 0 || dataSetIndex >= len(c.data.DataSets) {
		c.ClearHighlight()
		return false
	}
	set := c.data.DataSets[dataSetIndex]
	if set == nil {
		c.ClearHighlight()
		return false
	}
	idx := set.EntryIndex(x, RoundClosest)
	if idx < 0 {
		c.ClearHighlight()
		return false
	}
	e := &set.Entries[idx]
	h := Highlight{
		X: e.X, Y: e.Y,
		DataSetIndex: dataSetIndex,
		EntryIndex:   idx,
		StackIndex:   -1,
		Axis:         set.Axis,
	}
	if c.kind.Radial() {
		h.X = float64(idx)
	} else {
		px := c.Mapper(set.Axis).PixelFor(e.X, e.Y)
		h.XPx, h.YPx = px.X, px.Y
	}
	c.HighlightValue(h)
	return true
}

// ClearHighlight removes the selection.
func (c *Chart) ClearHighlight() {
	if !c.hasHighlight {
		return
	}
	c.highlighted = Highlight{}
	c.hasHighlight = false
	c.dirty = true
	c.Emit(Event{Type: EventHighlightClear})
}

func (c *Chart) validHighlight(h Highlight) bool {
	if c.data == nil || h.DataSetIndex < 0 || h.DataSetIndex >= len(c.data.DataSets) {
		return false
	}
	set := c.data.DataSets[h.DataSetIndex]
	return set != nil && h.EntryIndex >= 0 && h.EntryIndex < set.EntryCount()
}

func sameEntry(a, b Highlight) bool {
	return a.DataSetIndex == b.DataSetIndex && a.EntryIndex == b.EntryIndex && a.StackIndex == b.StackIndex
}

// --- GestureHost ---

// TouchHighlight implements GestureHost.
func (c *Chart) TouchHighlight(x, y float64, drag bool) {
	h, ok := c.HighlightAt(x, y)
	switch {
	case !ok:
		if !drag {
			c.ClearHighlight()
		}
	case c.hasHighlight && sameEntry(c.highlighted, h):
		if !drag {
			c.ClearHighlight()
		}
	default:
		c.HighlightValue(h)
	}
}

// InvertedAt implements GestureHost.
func (c *Chart) InvertedAt(x, y float64) bool {
	if !c.inverted[AxisLeft] && !c.inverted[AxisRight] {
		return false
	}
	h, ok := c.highlighter.Resolve(x, y)
	if !ok {
		return false
	}
	return c.IsInverted(h.Axis)
}

// RecalculateOffsets implements GestureHost.
func (c *Chart) RecalculateOffsets() {
	c.CalculateOffsets()
}

// Emit implements GestureHost. Registered callbacks run first, then the
// event sink.
func (c *Chart) Emit(ev Event) {
	c.handlers.dispatch(ev)
	if c.sink != nil {
		c.sink.EmitEvent(ev)
	}
}

// On registers a callback for one event type.
func (c *Chart) On(t EventType, fn func(Event)) CallbackHandle {
	return c.handlers.add(t, fn)
}

// SetEventSink sets the optional event bridge.
func (c *Chart) SetEventSink(sink EventSink) {
	c.sink = sink
}
