package chartview

import "math"

const (
	rad2deg = 180 / math.Pi
	deg2rad = math.Pi / 180
)

// RadialLayout describes the geometry of a pie or radar chart. Angles are in
// degrees, 0° points north (up) and angles grow clockwise on screen.
type RadialLayout struct {
	// Center is the chart center in pixels.
	Center Vec2
	// Radius is the outer radius in pixels; touches beyond it hit nothing.
	Radius float64
	// MaxAngle is the total sweep of a pie (360 for a full circle).
	MaxAngle float64

	// ValueMin and ValueFactor map radar values to radii:
	// radius = (value - ValueMin) * ValueFactor.
	ValueMin    float64
	ValueFactor float64

	rawRotation float64
	rotation    float64

	boundaries arena[float64]
	scratch    arena[float64]
}

// NewRadialLayout creates a full-circle layout with no rotation.
func NewRadialLayout() *RadialLayout {
	return &RadialLayout{MaxAngle: 360}
}

// Fit centers the layout in content and sets the radius to half its
// smallest extension.
func (r *RadialLayout) Fit(content Rect) {
	r.Center = content.Center()
	r.Radius = math.Max(0, math.Min(content.Width(), content.Height())/2)
}

// SetRotation sets the rotation angle. The raw value is kept for gesture
// continuity; Rotation returns it normalized into [0, 360).
func (r *RadialLayout) SetRotation(deg float64) {
	if !finite(deg) {
		return
	}
	r.rawRotation = deg
	r.rotation = NormalizeAngle(deg)
}

// Rotation returns the rotation angle normalized into [0, 360).
func (r *RadialLayout) Rotation() float64 { return r.rotation }

// RawRotation returns the rotation angle as last set, not normalized.
func (r *RadialLayout) RawRotation() float64 { return r.rawRotation }

// AngleForPoint returns the angle of the pixel (x, y) around the center,
// 0° north, clockwise, in [0, 360). The center itself maps to 0.
func (r *RadialLayout) AngleForPoint(x, y float64) float64 {
	dx := x - r.Center.X
	dy := y - r.Center.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	// Screen Y points down, so north is -dy.
	return NormalizeAngle(math.Atan2(dx, -dy) * rad2deg)
}

// DistanceToCenter returns the pixel distance from (x, y) to the center.
func (r *RadialLayout) DistanceToCenter(x, y float64) float64 {
	return math.Hypot(x-r.Center.X, y-r.Center.Y)
}

// Position returns the pixel at dist from the center along angle.
func (r *RadialLayout) Position(dist, angle float64) Vec2 {
	sin, cos := math.Sincos(angle * deg2rad)
	return Vec2{X: r.Center.X + dist*sin, Y: r.Center.Y - dist*cos}
}

// PieBoundaries returns the cumulative end angle of each slice for the
// given values, each slice proportional to |value| over MaxAngle. The slice
// is backed by the layout's arena and valid until the next call.
func (r *RadialLayout) PieBoundaries(values []float64) []float64 {
	r.boundaries.reset()
	out := r.boundaries.alloc(len(values))
	var sum float64
	for _, v := range values {
		sum += math.Abs(v)
	}
	maxAngle := r.MaxAngle
	if !(maxAngle > 0) || maxAngle > 360 {
		maxAngle = 360
	}
	var acc float64
	for i, v := range values {
		if sum > 0 {
			acc += math.Abs(v) / sum * maxAngle
		}
		out[i] = acc
	}
	return out
}

// values copies the y values of set into the scratch arena.
func (r *RadialLayout) values(set *DataSet) []float64 {
	r.scratch.reset()
	out := r.scratch.alloc(set.EntryCount())
	for i := range set.Entries {
		if v := set.Entries[i].Y; finite(v) {
			out[i] = v
		}
	}
	return out
}

// PieIndexForAngle returns the first slice whose boundary exceeds angle, or
// -1 when angle lies beyond the last boundary.
func PieIndexForAngle(boundaries []float64, angle float64) int {
	for i, b := range boundaries {
		if b > angle {
			return i
		}
	}
	return -1
}

// SliceAngle returns the angular width of one radar spoke for count spokes.
func SliceAngle(count int) float64 {
	if count <= 0 {
		return 0
	}
	return 360 / float64(count)
}

// RadarIndexForAngle returns the spoke nearest angle. Each spoke owns the
// sector centered on it; the sector straddling north wraps to spoke 0.
func RadarIndexForAngle(angle float64, count int) int {
	slice := SliceAngle(count)
	for i := 0; i < count; i++ {
		if slice*float64(i+1)-slice/2 > angle {
			return i
		}
	}
	return 0
}

// NormalizeAngle maps deg into [0, 360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}
