package chartview

// Vec2 is a 2D vector used for data points, pixel positions and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle stored as edges. In pixel space the
// origin is at the top-left with Y increasing downward, so Top <= Bottom.
// In data space a bar is described with Top as its value and Bottom as its
// base, so Top may be greater than Bottom.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right &&
		y >= r.Top && y <= r.Bottom
}

// sorted returns r with Left <= Right and Top <= Bottom.
func (r Rect) sorted() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Insets are the distances from each chart edge to the content rectangle,
// typically reserved for axis labels and legends.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// Axis selects the horizontal or vertical axis of the viewport.
type Axis uint8

const (
	AxisX Axis = iota // horizontal
	AxisY             // vertical
)

// AxisDependency is the vertical axis a data set is scaled against.
type AxisDependency uint8

const (
	AxisLeft  AxisDependency = iota // scaled against the left y-axis
	AxisRight                       // scaled against the right y-axis
)

// ChartKind identifies the concrete chart type. It decides the hit-testing
// strategy, whether pan/zoom or rotation gestures apply, and whether the
// coordinate mapping is axis-swapped.
type ChartKind uint8

const (
	ChartLine          ChartKind = iota // line chart
	ChartBar                            // vertical bar chart (stacked when entries carry YVals)
	ChartHorizontalBar                  // bar chart with the value axis horizontal
	ChartScatter                        // scatter chart
	ChartCandle                         // candlestick chart
	ChartBubble                         // bubble chart
	ChartPie                            // pie chart
	ChartRadar                          // radar (spider) chart
)

// Radial reports whether the kind is laid out around a center point.
func (k ChartKind) Radial() bool {
	return k == ChartPie || k == ChartRadar
}

// Horizontal reports whether the kind swaps the x and y axes.
func (k ChartKind) Horizontal() bool {
	return k == ChartHorizontalBar
}

// String returns a lowercase name for the kind.
func (k ChartKind) String() string {
	switch k {
	case ChartLine:
		return "line"
	case ChartBar:
		return "bar"
	case ChartHorizontalBar:
		return "horizontal-bar"
	case ChartScatter:
		return "scatter"
	case ChartCandle:
		return "candle"
	case ChartBubble:
		return "bubble"
	case ChartPie:
		return "pie"
	case ChartRadar:
		return "radar"
	default:
		return "unknown"
	}
}

// GestureState is the current mode of the gesture state machine.
type GestureState uint8

const (
	GestureIdle      GestureState = iota // no gesture in progress
	GestureDrag                          // one pointer panning the viewport
	GestureXZoom                         // two pointers scaling the x-axis only
	GestureYZoom                         // two pointers scaling the y-axis only
	GesturePinchZoom                     // two pointers scaling both axes uniformly
	GesturePostZoom                      // zoom released, offsets being recalculated
	GestureRotate                        // one pointer rotating a radial chart
)

// String returns the state name.
func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureDrag:
		return "drag"
	case GestureXZoom:
		return "x-zoom"
	case GestureYZoom:
		return "y-zoom"
	case GesturePinchZoom:
		return "pinch-zoom"
	case GesturePostZoom:
		return "post-zoom"
	case GestureRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// zooming reports whether s is one of the two-pointer zoom states.
func (s GestureState) zooming() bool {
	return s == GestureXZoom || s == GestureYZoom || s == GesturePinchZoom
}
