package chartview

import (
	"cmp"
	"math"
	"slices"
)

// Highlight is the resolved result of a hit test: one entry of one data set
// plus where it is drawn. It is a plain value and never changes after it is
// returned.
type Highlight struct {
	// X and Y are the data values of the entry. For pie and radar charts X is
	// the entry index. For stacked bars Y is the stack total.
	X, Y float64

	// XPx and YPx are the pixel position the highlight marker points at.
	XPx, YPx float64

	// TouchX and TouchY are the touch pixel that produced the highlight.
	TouchX, TouchY float64

	DataSetIndex int
	EntryIndex   int

	// StackIndex is the highlighted segment of a stacked bar, or -1.
	StackIndex int

	Axis AxisDependency

	// Span is the vertical extent of the highlighted stack segment, or the
	// whole bar in full-bar mode. It is zero for unstacked entries.
	Span Range
}

// Stacked reports whether the highlight addresses one stack segment.
func (h Highlight) Stacked() bool { return h.StackIndex >= 0 }

// HighlighterKind selects the hit-testing strategy.
type HighlighterKind uint8

const (
	HighlightCartesian HighlighterKind = iota // line, scatter, candle, bubble
	HighlightStacked                          // bar charts, stacked or not
	HighlightPie                              // pie slices by angle
	HighlightRadar                            // radar spokes by angle and radius
)

// String returns the strategy name.
func (k HighlighterKind) String() string {
	switch k {
	case HighlightCartesian:
		return "cartesian"
	case HighlightStacked:
		return "stacked"
	case HighlightPie:
		return "pie"
	case HighlightRadar:
		return "radar"
	default:
		return "unknown"
	}
}

// HighlighterKindFor returns the strategy used for a chart kind.
func HighlighterKindFor(kind ChartKind) HighlighterKind {
	switch kind {
	case ChartBar, ChartHorizontalBar:
		return HighlightStacked
	case ChartPie:
		return HighlightPie
	case ChartRadar:
		return HighlightRadar
	default:
		return HighlightCartesian
	}
}

// HighlightSource is what a Highlighter reads from its chart.
type HighlightSource interface {
	// Data returns the chart data, or nil before any is set.
	Data() *ChartData
	// Mapper returns the coordinate mapper of the given value axis.
	Mapper(axis AxisDependency) CoordinateMapper
	// Viewport returns the chart's viewport.
	Viewport() *Viewport
	// Radial returns the radial layout; only pie and radar charts use it.
	Radial() *RadialLayout
	// Phase returns the current animation phases in [0, 1].
	Phase() (x, y float64)
}

// Highlighter resolves a touch pixel into a Highlight. The strategy is fixed
// at construction. A Highlighter reuses internal buffers and must not be
// shared between goroutines.
type Highlighter struct {
	kind       HighlighterKind
	horizontal bool
	src        HighlightSource

	// FullBar reports whole stacked bars instead of single segments.
	FullBar bool

	// MaxDistance drops Cartesian candidates whose pixel distance along the
	// category axis exceeds it. Zero or negative disables the filter.
	MaxDistance float64

	// FilterByAxis keeps only candidates of the value axis whose nearest
	// entry is closest to the touch, when both axes have candidates.
	FilterByAxis bool

	ranges     arena[Range]
	candidates []candidate
}

type candidate struct {
	h                  Highlight
	primary, secondary float64
}

// NewHighlighter creates a highlighter of the given kind reading from src.
// horizontal swaps the distance metric for charts whose category axis is
// vertical.
func NewHighlighter(kind HighlighterKind, horizontal bool, src HighlightSource) *Highlighter {
	return &Highlighter{kind: kind, horizontal: horizontal, src: src, FilterByAxis: true}
}

// Kind returns the strategy.
func (h *Highlighter) Kind() HighlighterKind { return h.kind }

// Resolve returns the highlight for the touch pixel (x, y). ok is false when
// the touch is outside the plot area or the radius, the chart has no
// highlightable data, or no candidate passes the distance filter.
func (h *Highlighter) Resolve(x, y float64) (Highlight, bool) {
	if h.src == nil || !finite(x) || !finite(y) {
		return Highlight{}, false
	}
	switch h.kind {
	case HighlightCartesian, HighlightStacked:
		h.collect(x, y)
		if len(h.candidates) == 0 {
			return Highlight{}, false
		}
		return h.candidates[0].h, true
	case HighlightPie:
		return h.resolvePie(x, y)
	case HighlightRadar:
		return h.resolveRadar(x, y)
	default:
		return Highlight{}, false
	}
}

// AppendAll appends every Cartesian candidate for the touch to dst, closest
// first, and returns the extended slice. Radial strategies append at most
// the single Resolve result.
func (h *Highlighter) AppendAll(dst []Highlight, x, y float64) []Highlight {
	if h.src == nil || !finite(x) || !finite(y) {
		return dst
	}
	switch h.kind {
	case HighlightCartesian, HighlightStacked:
		h.collect(x, y)
		for _, c := range h.candidates {
			dst = append(dst, c.h)
		}
		return dst
	default:
		if hl, ok := h.Resolve(x, y); ok {
			dst = append(dst, hl)
		}
		return dst
	}
}

// --- Cartesian and stacked ---

// collect fills h.candidates with the entries nearest the touch, one group
// per highlightable data set, sorted by distance.
func (h *Highlighter) collect(x, y float64) {
	h.candidates = h.candidates[:0]
	h.ranges.reset()

	data := h.src.Data()
	vp := h.src.Viewport()
	if data.DataSetCount() == 0 || vp == nil || !vp.IsInBounds(x, y) {
		return
	}
	touch := Vec2{X: x, Y: y}

	// The category value is the same for both value axes.
	xVal := h.src.Mapper(AxisLeft).ToData(touch).X
	if !finite(xVal) {
		return
	}

	for i, set := range data.DataSets {
		if set == nil || !set.Visible || !set.HighlightEnabled || set.EntryCount() == 0 {
			continue
		}
		mapper := h.src.Mapper(set.Axis)
		idx := set.EntryIndex(xVal, RoundClosest)
		if idx < 0 {
			continue
		}
		from, to := set.EntriesForX(set.Entries[idx].X)
		for j := from; j < to; j++ {
			hl, ok := h.entryHighlight(set, i, j, mapper, touch)
			if !ok {
				continue
			}
			primary, secondary := h.distance(touch, hl)
			if h.MaxDistance > 0 && primary > h.MaxDistance {
				continue
			}
			h.candidates = append(h.candidates, candidate{h: hl, primary: primary, secondary: secondary})
		}
	}

	if h.FilterByAxis {
		h.filterByAxis()
	}
	slices.SortStableFunc(h.candidates, func(a, b candidate) int {
		if c := cmp.Compare(a.primary, b.primary); c != 0 {
			return c
		}
		return cmp.Compare(a.secondary, b.secondary)
	})
}

// entryHighlight builds the highlight of entry j of set, resolving the stack
// segment for stacked bars.
func (h *Highlighter) entryHighlight(set *DataSet, setIndex, j int, mapper CoordinateMapper, touch Vec2) (Highlight, bool) {
	e := &set.Entries[j]
	if math.IsNaN(e.Y) {
		return Highlight{}, false
	}
	hl := Highlight{
		X:            e.X,
		Y:            e.Y,
		TouchX:       touch.X,
		TouchY:       touch.Y,
		DataSetIndex: setIndex,
		EntryIndex:   j,
		StackIndex:   -1,
		Axis:         set.Axis,
	}

	if h.kind != HighlightStacked || !e.Stacked() {
		px := mapper.PixelFor(e.X, e.Y)
		hl.XPx, hl.YPx = px.X, px.Y
		return hl, true
	}

	if h.FullBar {
		hl.Span = Range{From: -e.NegativeSum, To: e.PositiveSum}
		px := mapper.PixelFor(e.X, e.Y)
		hl.XPx, hl.YPx = px.X, px.Y
		return hl, true
	}

	yVal := mapper.ToData(touch).Y
	ranges := stackRanges(e.YVals, e.NegativeSum, h.ranges.alloc(len(e.YVals)))
	k := closestStackIndex(ranges, yVal)
	hl.StackIndex = k
	hl.Span = ranges[k]
	px := mapper.PixelFor(e.X, ranges[k].To)
	hl.XPx, hl.YPx = px.X, px.Y
	return hl, true
}

// distance returns the distance along the category axis and, as a
// tie-break, along the value axis. Horizontal charts swap the two.
func (h *Highlighter) distance(touch Vec2, hl Highlight) (primary, secondary float64) {
	dx := math.Abs(touch.X - hl.XPx)
	dy := math.Abs(touch.Y - hl.YPx)
	if h.horizontal {
		return dy, dx
	}
	return dx, dy
}

// filterByAxis drops the candidates of the value axis whose nearest entry
// is farther from the touch along the value axis.
func (h *Highlighter) filterByAxis() {
	left, right := math.Inf(1), math.Inf(1)
	for _, c := range h.candidates {
		d := c.secondary
		if c.h.Axis == AxisLeft {
			left = math.Min(left, d)
		} else {
			right = math.Min(right, d)
		}
	}
	if math.IsInf(left, 1) || math.IsInf(right, 1) {
		return
	}
	keep := AxisLeft
	if right < left {
		keep = AxisRight
	}
	n := 0
	for _, c := range h.candidates {
		if c.h.Axis == keep {
			h.candidates[n] = c
			n++
		}
	}
	h.candidates = h.candidates[:n]
}

// --- Radial ---

// radialTouch returns the corrected touch angle and the distance to center,
// or ok=false when the touch lies outside the radius.
func (h *Highlighter) radialTouch(x, y float64) (angle, dist float64, ok bool) {
	layout := h.src.Radial()
	if layout == nil || !(layout.Radius > 0) {
		return 0, 0, false
	}
	dist = layout.DistanceToCenter(x, y)
	if dist > layout.Radius {
		return 0, 0, false
	}
	angle = NormalizeAngle(layout.AngleForPoint(x, y) - layout.Rotation())
	return angle, dist, true
}

func (h *Highlighter) resolvePie(x, y float64) (Highlight, bool) {
	data := h.src.Data()
	if data.DataSetCount() == 0 {
		return Highlight{}, false
	}
	set := data.DataSets[0]
	if set == nil || !set.Visible || !set.HighlightEnabled || set.EntryCount() == 0 {
		return Highlight{}, false
	}
	angle, _, ok := h.radialTouch(x, y)
	if !ok {
		return Highlight{}, false
	}
	_, phaseY := h.src.Phase()
	if !(phaseY > 0) {
		return Highlight{}, false
	}
	angle /= phaseY

	layout := h.src.Radial()
	values := layout.values(set)
	idx := PieIndexForAngle(layout.PieBoundaries(values), angle)
	if idx < 0 || idx >= set.EntryCount() {
		return Highlight{}, false
	}
	e := &set.Entries[idx]
	return Highlight{
		X:            float64(idx),
		Y:            e.Y,
		XPx:          x,
		YPx:          y,
		TouchX:       x,
		TouchY:       y,
		DataSetIndex: 0,
		EntryIndex:   idx,
		StackIndex:   -1,
		Axis:         set.Axis,
	}, true
}

func (h *Highlighter) resolveRadar(x, y float64) (Highlight, bool) {
	data := h.src.Data()
	set := data.MaxEntryCountSet()
	if set == nil || set.EntryCount() == 0 {
		return Highlight{}, false
	}
	angle, dist, ok := h.radialTouch(x, y)
	if !ok {
		return Highlight{}, false
	}
	count := set.EntryCount()
	idx := RadarIndexForAngle(angle, count)
	if idx < 0 || idx >= count {
		return Highlight{}, false
	}

	layout := h.src.Radial()
	phaseX, phaseY := h.src.Phase()
	slice := SliceAngle(count)

	var best Highlight
	found := false
	bestDist := math.Inf(1)
	for i, s := range data.DataSets {
		if s == nil || !s.Visible || !s.HighlightEnabled || idx >= s.EntryCount() {
			continue
		}
		e := &s.Entries[idx]
		if math.IsNaN(e.Y) {
			continue
		}
		r := (e.Y - layout.ValueMin) * layout.ValueFactor * phaseY
		pos := layout.Position(r, slice*float64(idx)*phaseX+layout.Rotation())
		if d := math.Abs(r - dist); d < bestDist {
			bestDist = d
			found = true
			best = Highlight{
				X:            float64(idx),
				Y:            e.Y,
				XPx:          pos.X,
				YPx:          pos.Y,
				TouchX:       x,
				TouchY:       y,
				DataSetIndex: i,
				EntryIndex:   idx,
				StackIndex:   -1,
				Axis:         s.Axis,
			}
		}
	}
	return best, found
}
