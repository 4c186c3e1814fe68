package chartview

import "math"

const (
	boundsEpsilon = 1e-4 // slack for IsInBounds checks
	zoomInFactor  = 1.4  // ZoomIn and double-tap factor
	zoomOutFactor = 0.7  // ZoomOut factor
)

// Viewport owns the chart's content rectangle and the touch matrix that
// carries the current pan and zoom. Scale is always kept within the
// configured [min, max] bounds and translation within the data extent plus
// the configured drag offsets.
//
// The touch matrix lives in "content space": the origin is the bottom-left
// corner of the content rectangle and Y grows upward (negative pixels), which
// is the space the value matrix of a Transformer maps into.
type Viewport struct {
	content     Rect
	chartWidth  float64
	chartHeight float64

	touch Matrix

	minScaleX, maxScaleX float64
	minScaleY, maxScaleY float64

	scaleX, scaleY float64
	transX, transY float64

	dragOffsetX, dragOffsetY float64
}

// NewViewport creates a viewport with no size, unit scale, and scale bounds
// [1, +Inf) on both axes.
func NewViewport() *Viewport {
	return &Viewport{
		touch:     Identity,
		minScaleX: 1,
		maxScaleX: math.Inf(1),
		minScaleY: 1,
		maxScaleY: math.Inf(1),
		scaleX:    1,
		scaleY:    1,
	}
}

// SetChartDimens sets the chart pixel size and re-applies the current insets.
func (v *Viewport) SetChartDimens(width, height float64) {
	insets := v.Insets()
	v.chartWidth = math.Max(0, math.Round(width))
	v.chartHeight = math.Max(0, math.Round(height))
	v.RestrainViewport(insets)
}

// HasChartDimens reports whether the chart has a non-empty size.
func (v *Viewport) HasChartDimens() bool {
	return v.chartWidth > 0 && v.chartHeight > 0
}

// RestrainViewport recomputes the content rectangle from the chart size
// minus the four insets. Negative insets are treated as zero and the
// resulting rectangle never has a negative width or height.
func (v *Viewport) RestrainViewport(in Insets) {
	left := math.Max(0, in.Left)
	top := math.Max(0, in.Top)
	right := math.Max(left, v.chartWidth-math.Max(0, in.Right))
	bottom := math.Max(top, v.chartHeight-math.Max(0, in.Bottom))
	v.content = Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Insets returns the distances from each chart edge to the content rect.
func (v *Viewport) Insets() Insets {
	return Insets{
		Left:   v.content.Left,
		Top:    v.content.Top,
		Right:  v.chartWidth - v.content.Right,
		Bottom: v.chartHeight - v.content.Bottom,
	}
}

// Content returns the content rectangle in chart pixels.
func (v *Viewport) Content() Rect { return v.content }

// ChartWidth returns the chart width in pixels.
func (v *Viewport) ChartWidth() float64 { return v.chartWidth }

// ChartHeight returns the chart height in pixels.
func (v *Viewport) ChartHeight() float64 { return v.chartHeight }

// SmallestContentExtension returns min(content width, content height).
func (v *Viewport) SmallestContentExtension() float64 {
	return math.Min(v.content.Width(), v.content.Height())
}

// Matrix returns the current touch matrix.
func (v *Viewport) Matrix() Matrix { return v.touch }

// ScaleX returns the current horizontal scale factor.
func (v *Viewport) ScaleX() float64 { return v.scaleX }

// ScaleY returns the current vertical scale factor.
func (v *Viewport) ScaleY() float64 { return v.scaleY }

// TransX returns the current horizontal translation in pixels.
func (v *Viewport) TransX() float64 { return v.transX }

// TransY returns the current vertical translation in pixels.
func (v *Viewport) TransY() float64 { return v.transY }

// MinScale returns the configured minimum scale for axis.
func (v *Viewport) MinScale(axis Axis) float64 {
	if axis == AxisX {
		return v.minScaleX
	}
	return v.minScaleY
}

// MaxScale returns the configured maximum scale for axis.
func (v *Viewport) MaxScale(axis Axis) float64 {
	if axis == AxisX {
		return v.maxScaleX
	}
	return v.maxScaleY
}

// SetMinMaxScale sets the scale bounds for axis and re-clamps the current
// matrix. A minimum below 1 is raised to 1; a maximum of 0 (or below) means
// unbounded; a maximum below the minimum is raised to the minimum.
func (v *Viewport) SetMinMaxScale(axis Axis, minScale, maxScale float64) {
	if !(minScale >= 1) {
		minScale = 1
	}
	if !(maxScale > 0) {
		maxScale = math.Inf(1)
	}
	if maxScale < minScale {
		maxScale = minScale
	}
	if axis == AxisX {
		v.minScaleX, v.maxScaleX = minScale, maxScale
	} else {
		v.minScaleY, v.maxScaleY = minScale, maxScale
	}
	v.touch = v.limit(v.touch)
}

// SetVisibleRange converts visible-range limits on axis into scale bounds.
// axisRange is the full data range of the axis. minRange is the smallest
// visible window (limits zooming in); maxRange is the largest visible window
// (limits zooming out). A non-positive limit leaves that bound unconstrained.
func (v *Viewport) SetVisibleRange(axis Axis, axisRange, minRange, maxRange float64) {
	if !(axisRange > 0) || !finite(axisRange) {
		return
	}
	minScale := 1.0
	if maxRange > 0 {
		minScale = axisRange / maxRange
	}
	maxScale := 0.0
	if minRange > 0 {
		maxScale = axisRange / minRange
	}
	v.SetMinMaxScale(axis, minScale, maxScale)
}

// CanZoomInMore reports whether axis is below its maximum scale.
func (v *Viewport) CanZoomInMore(axis Axis) bool {
	if axis == AxisX {
		return v.scaleX < v.maxScaleX
	}
	return v.scaleY < v.maxScaleY
}

// CanZoomOutMore reports whether axis is above its minimum scale.
func (v *Viewport) CanZoomOutMore(axis Axis) bool {
	if axis == AxisX {
		return v.scaleX > v.minScaleX
	}
	return v.scaleY > v.minScaleY
}

// IsFullyZoomedOutX reports whether the x-axis shows the full data range.
func (v *Viewport) IsFullyZoomedOutX() bool {
	return !(v.scaleX > v.minScaleX || v.minScaleX > 1)
}

// IsFullyZoomedOutY reports whether the y-axis shows the full data range.
func (v *Viewport) IsFullyZoomedOutY() bool {
	return !(v.scaleY > v.minScaleY || v.minScaleY > 1)
}

// IsFullyZoomedOut reports whether both axes are fully zoomed out.
func (v *Viewport) IsFullyZoomedOut() bool {
	return v.IsFullyZoomedOutX() && v.IsFullyZoomedOutY()
}

// SetDragOffset sets how many pixels the content may be dragged past its
// data extent on axis. Negative values are treated as zero.
func (v *Viewport) SetDragOffset(axis Axis, px float64) {
	px = math.Max(0, px)
	if axis == AxisX {
		v.dragOffsetX = px
	} else {
		v.dragOffsetY = px
	}
}

// HasNoDragOffset reports whether both drag offsets are zero.
func (v *Viewport) HasNoDragOffset() bool {
	return v.dragOffsetX == 0 && v.dragOffsetY == 0
}

// Refresh clamps the candidate matrix into the configured bounds, stores it
// as the touch matrix and returns it together with whether the stored matrix
// changed (i.e. a redraw is needed). Refreshing an already valid matrix is a
// no-op.
func (v *Viewport) Refresh(candidate Matrix) (Matrix, bool) {
	next := v.limit(candidate)
	changed := next != v.touch
	v.touch = next
	return next, changed
}

// limit decomposes m into scale and translation per axis, clamps both and
// rebuilds the matrix. It also records the clamped components.
func (v *Viewport) limit(m Matrix) Matrix {
	curScaleX := m.ScaleX()
	curScaleY := m.ScaleY()
	curTransX := m.TransX()
	curTransY := m.TransY()

	if !finite(curScaleX) || curScaleX <= 0 {
		curScaleX = v.scaleX
	}
	if !finite(curScaleY) || curScaleY <= 0 {
		curScaleY = v.scaleY
	}
	if !finite(curTransX) {
		curTransX = v.transX
	}
	if !finite(curTransY) {
		curTransY = v.transY
	}

	v.scaleX = math.Min(math.Max(v.minScaleX, curScaleX), v.maxScaleX)
	v.scaleY = math.Min(math.Max(v.minScaleY, curScaleY), v.maxScaleY)

	width := v.content.Width()
	height := v.content.Height()

	// Content space has Y pointing up, so zooming pushes content toward
	// negative X (right edge leaves) and positive Y (top edge leaves).
	maxTransX := -width * (v.scaleX - 1)
	v.transX = math.Min(math.Max(curTransX, maxTransX-v.dragOffsetX), v.dragOffsetX)

	maxTransY := height * (v.scaleY - 1)
	v.transY = math.Max(math.Min(curTransY, maxTransY+v.dragOffsetY), -v.dragOffsetY)

	return scaleTranslate(v.scaleX, v.scaleY, v.transX, v.transY)
}

// --- Programmatic zoom and pan ---

// ZoomIn returns the touch matrix post-scaled by 1.4 about the content-space
// point (x, y). The viewport is not modified; pass the result to Refresh.
func (v *Viewport) ZoomIn(x, y float64) Matrix {
	return v.touch.PostScale(zoomInFactor, zoomInFactor, x, y)
}

// ZoomOut returns the touch matrix post-scaled by 0.7 about (x, y).
func (v *Viewport) ZoomOut(x, y float64) Matrix {
	return v.touch.PostScale(zoomOutFactor, zoomOutFactor, x, y)
}

// Zoom returns the touch matrix post-scaled by (sx, sy) about (x, y).
func (v *Viewport) Zoom(sx, sy, x, y float64) Matrix {
	return v.touch.PostScale(sx, sy, x, y)
}

// SetZoom returns a matrix with the absolute scale (sx, sy) about (x, y),
// keeping no previous scale.
func (v *Viewport) SetZoom(sx, sy, x, y float64) Matrix {
	return scaleTranslate(sx, sy, x-sx*x, y-sy*y)
}

// FitScreen resets the minimum scales to 1 and returns a matrix without any
// scale or translation.
func (v *Viewport) FitScreen() Matrix {
	v.minScaleX = 1
	v.minScaleY = 1
	return Identity
}

// Translate returns the touch matrix translated so that the chart pixel
// (px, py) moves to the content origin.
func (v *Viewport) Translate(px, py float64) Matrix {
	x := px - v.content.Left
	y := py - v.content.Top
	return v.touch.PostTranslate(-x, -y)
}

// CenterViewport pans so that the chart pixel (px, py) lands at the
// top-left of the content rect, applies it through Refresh, and reports
// whether the matrix changed. Callers pass the pixel of the value they want
// centered minus half the visible extent.
func (v *Viewport) CenterViewport(px, py float64) bool {
	_, changed := v.Refresh(v.Translate(px, py))
	return changed
}

// --- Bounds checks ---

// IsInBoundsLeft reports whether pixel x is not left of the content rect.
func (v *Viewport) IsInBoundsLeft(x float64) bool {
	return v.content.Left-(x+1) <= boundsEpsilon
}

// IsInBoundsRight reports whether pixel x is not right of the content rect.
func (v *Viewport) IsInBoundsRight(x float64) bool {
	return v.content.Right-(x-1) >= -boundsEpsilon
}

// IsInBoundsTop reports whether pixel y is not above the content rect.
func (v *Viewport) IsInBoundsTop(y float64) bool {
	return v.content.Top-y <= boundsEpsilon
}

// IsInBoundsBottom reports whether pixel y is not below the content rect.
func (v *Viewport) IsInBoundsBottom(y float64) bool {
	return v.content.Bottom-y >= -boundsEpsilon
}

// IsInBoundsX reports whether pixel x is horizontally within the content rect.
func (v *Viewport) IsInBoundsX(x float64) bool {
	return v.IsInBoundsLeft(x) && v.IsInBoundsRight(x)
}

// IsInBoundsY reports whether pixel y is vertically within the content rect.
func (v *Viewport) IsInBoundsY(y float64) bool {
	return v.IsInBoundsTop(y) && v.IsInBoundsBottom(y)
}

// IsInBounds reports whether the pixel (x, y) is within the content rect.
func (v *Viewport) IsInBounds(x, y float64) bool {
	return v.IsInBoundsX(x) && v.IsInBoundsY(y)
}

// toContent converts a chart pixel into the touch matrix's content space.
// inverted flips the value axis: the y-axis, or the x-axis when horizontal.
func (v *Viewport) toContent(x, y float64, inverted, horizontal bool) (float64, float64) {
	cx := x - v.content.Left
	cy := y - v.content.Bottom
	switch {
	case !inverted:
		return cx, cy
	case horizontal:
		return v.content.Width() - cx, cy
	default:
		return cx, -(y - v.content.Top)
	}
}
