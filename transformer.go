package chartview

// CoordinateMapper converts between data values and chart pixels.
// *Transformer maps x to the horizontal axis; *SwappedTransformer maps x to
// the vertical axis (horizontal bar charts). Both are interchangeable
// wherever a mapper is expected.
type CoordinateMapper interface {
	// ToPixel transforms data points to pixels in place.
	ToPixel(pts []Vec2)
	// ToData transforms a pixel into data values.
	ToData(px Vec2) Vec2
	// PixelFor returns the pixel of the data point (x, y).
	PixelFor(x, y float64) Vec2
	// RectToPixel transforms a data rectangle into a sorted pixel rectangle.
	RectToPixel(r Rect) Rect
	// RectToPixelPhased scales the value extent of r by phase (∈ [0, 1])
	// toward its base before transforming, for growing bars and areas.
	RectToPixelPhased(r Rect, phase float64) Rect
}

// Transformer holds the value→pixel and offset matrices of one axis pair and
// composes them with the viewport's touch matrix:
//
//	pixel = offset * touch * valueToPx * value
type Transformer struct {
	vp *Viewport

	valueToPx Matrix
	offset    Matrix

	points arena[float64]
}

// NewTransformer creates a transformer bound to vp with identity matrices.
func NewTransformer(vp *Viewport) *Transformer {
	return &Transformer{vp: vp, valueToPx: Identity, offset: Identity}
}

// axisScale returns extent/delta, or 1 when the ratio is not a usable scale
// (zero-width range, empty content, NaN or Inf).
func axisScale(extent, delta float64) float64 {
	s := extent / delta
	if !finite(s) || s == 0 {
		return 1
	}
	return s
}

// PrepareValuePx builds the matrix mapping values into content space:
// translate by (-xMin, -yMin), then scale to the content size with Y flipped
// upward. A degenerate range maps with unit scale instead of dividing by
// zero.
func (t *Transformer) PrepareValuePx(xMin, deltaX, deltaY, yMin float64) {
	content := t.vp.Content()
	sx := axisScale(content.Width(), deltaX)
	sy := axisScale(content.Height(), deltaY)
	if !finite(xMin) {
		xMin = 0
	}
	if !finite(yMin) {
		yMin = 0
	}
	t.valueToPx = scaleTranslate(sx, -sy, -xMin*sx, yMin*sy)
}

// PrepareOffset builds the matrix that moves content space onto the chart.
// When inverted is true the value axis grows downward from the content top.
func (t *Transformer) PrepareOffset(inverted bool) {
	in := t.vp.Insets()
	if !inverted {
		t.offset = scaleTranslate(1, 1, in.Left, t.vp.ChartHeight()-in.Bottom)
		return
	}
	t.offset = scaleTranslate(1, -1, in.Left, in.Top)
}

// prepareOffsetMirrored is the horizontal-layout counterpart of
// PrepareOffset: inversion mirrors the horizontal (value) axis instead.
func (t *Transformer) prepareOffsetMirrored(inverted bool) {
	in := t.vp.Insets()
	if !inverted {
		t.offset = scaleTranslate(1, 1, in.Left, t.vp.ChartHeight()-in.Bottom)
		return
	}
	t.offset = scaleTranslate(-1, 1, t.vp.ChartWidth()-in.Right, t.vp.ChartHeight()-in.Bottom)
}

// ValueMatrix returns the value→content matrix.
func (t *Transformer) ValueMatrix() Matrix { return t.valueToPx }

// OffsetMatrix returns the content→chart offset matrix.
func (t *Transformer) OffsetMatrix() Matrix { return t.offset }

// ValueToPixelMatrix returns the composed value→pixel matrix, in the order
// value, touch, offset.
func (t *Transformer) ValueToPixelMatrix() Matrix {
	return t.valueToPx.Concat(t.vp.Matrix()).Concat(t.offset)
}

// PixelToValueMatrix returns the inverse of ValueToPixelMatrix.
func (t *Transformer) PixelToValueMatrix() Matrix {
	return t.ValueToPixelMatrix().Invert()
}

// ToPixel transforms data points to pixels in place.
func (t *Transformer) ToPixel(pts []Vec2) {
	m := t.ValueToPixelMatrix()
	for i := range pts {
		pts[i].X, pts[i].Y = m.Apply(pts[i].X, pts[i].Y)
	}
}

// ToData transforms a pixel into data values.
func (t *Transformer) ToData(px Vec2) Vec2 {
	x, y := t.PixelToValueMatrix().Apply(px.X, px.Y)
	return Vec2{X: x, Y: y}
}

// PixelFor returns the pixel of the data point (x, y).
func (t *Transformer) PixelFor(x, y float64) Vec2 {
	px, py := t.ValueToPixelMatrix().Apply(x, y)
	return Vec2{X: px, Y: py}
}

// RectToPixel transforms a data rectangle into a sorted pixel rectangle.
func (t *Transformer) RectToPixel(r Rect) Rect {
	return t.ValueToPixelMatrix().ApplyRect(r)
}

// RectToPixelPhased multiplies the height of r by phase, keeping the edge
// nearest the zero line fixed, then transforms it.
func (t *Transformer) RectToPixelPhased(r Rect, phase float64) Rect {
	phase = clamp01(phase)
	if r.Top > 0 {
		r.Top = r.Bottom + phase*(r.Top-r.Bottom)
	} else {
		r.Bottom = r.Top + phase*(r.Bottom-r.Top)
	}
	return t.RectToPixel(r)
}

// GenerateTransformedValues returns the pixel positions of entries
// [from, to] of set as a flat [x0, y0, x1, y1, ...] slice. Only the first
// phaseX share of the span is generated and y values are multiplied by
// phaseY. The slice is backed by the transformer's arena and is valid until
// the next call.
func (t *Transformer) GenerateTransformedValues(set *DataSet, phaseX, phaseY float64, from, to int) []float64 {
	t.points.reset()
	if set == nil || from < 0 || to < from || from >= set.EntryCount() {
		return nil
	}
	if to >= set.EntryCount() {
		to = set.EntryCount() - 1
	}
	// A partial phase truncates: the last point appears only once the
	// phase reaches it.
	count := int(float64(to-from)*clamp01(phaseX)) + 1
	out := t.points.alloc(count * 2)
	m := t.ValueToPixelMatrix()
	for j := 0; j < count; j++ {
		e := &set.Entries[from+j]
		out[2*j], out[2*j+1] = m.Apply(e.X, e.Y*phaseY)
	}
	return out
}

// SwappedTransformer adapts a Transformer for layouts where the data x-axis
// is drawn vertically: x and y operands are exchanged before delegating, so
// the base transformer's horizontal axis carries data y values.
type SwappedTransformer struct {
	Base *Transformer
}

// NewSwappedTransformer creates a swapped mapper around a fresh transformer
// bound to vp.
func NewSwappedTransformer(vp *Viewport) *SwappedTransformer {
	return &SwappedTransformer{Base: NewTransformer(vp)}
}

// PrepareValuePx builds the value matrix for data x in [xMin, xMin+deltaX]
// drawn vertically and data y in [yMin, yMin+deltaY] drawn horizontally.
func (s *SwappedTransformer) PrepareValuePx(xMin, deltaX, deltaY, yMin float64) {
	s.Base.PrepareValuePx(yMin, deltaY, deltaX, xMin)
}

// PrepareOffset builds the offset matrix; inversion mirrors the horizontal
// value axis.
func (s *SwappedTransformer) PrepareOffset(inverted bool) {
	s.Base.prepareOffsetMirrored(inverted)
}

// ToPixel transforms data points to pixels in place.
func (s *SwappedTransformer) ToPixel(pts []Vec2) {
	for i := range pts {
		pts[i].X, pts[i].Y = pts[i].Y, pts[i].X
	}
	s.Base.ToPixel(pts)
}

// ToData transforms a pixel into data values.
func (s *SwappedTransformer) ToData(px Vec2) Vec2 {
	v := s.Base.ToData(px)
	return Vec2{X: v.Y, Y: v.X}
}

// PixelFor returns the pixel of the data point (x, y).
func (s *SwappedTransformer) PixelFor(x, y float64) Vec2 {
	return s.Base.PixelFor(y, x)
}

// RectToPixel transforms a data rectangle (Left/Right on the data x-axis,
// Top/Bottom on the value axis) into a sorted pixel rectangle.
func (s *SwappedTransformer) RectToPixel(r Rect) Rect {
	return s.Base.RectToPixel(swapRect(r))
}

// RectToPixelPhased scales the value extent of r by phase, then transforms.
func (s *SwappedTransformer) RectToPixelPhased(r Rect, phase float64) Rect {
	phase = clamp01(phase)
	if r.Top > 0 {
		r.Top = r.Bottom + phase*(r.Top-r.Bottom)
	} else {
		r.Bottom = r.Top + phase*(r.Bottom-r.Top)
	}
	return s.RectToPixel(r)
}

// swapRect exchanges the horizontal and vertical edges of a data rectangle.
func swapRect(r Rect) Rect {
	return Rect{Left: r.Bottom, Top: r.Left, Right: r.Top, Bottom: r.Right}
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
