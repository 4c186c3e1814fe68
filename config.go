package chartview

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// DefaultFriction is the drag and spin deceleration coefficient applied
	// once per tick.
	DefaultFriction = 0.9

	maxFriction = 0.999
)

// Config holds the interaction settings of a chart. Lengths marked dp are
// density-independent and converted to pixels once, by NewChart, using
// Density. Start from DefaultConfig and override fields as needed.
type Config struct {
	// DragXEnabled and DragYEnabled allow panning along each axis.
	DragXEnabled bool `json:"dragXEnabled"`
	DragYEnabled bool `json:"dragYEnabled"`

	// ScaleXEnabled and ScaleYEnabled allow zooming along each axis.
	ScaleXEnabled bool `json:"scaleXEnabled"`
	ScaleYEnabled bool `json:"scaleYEnabled"`

	// PinchZoomEnabled zooms both axes uniformly with two pointers instead of
	// picking the dominant axis.
	PinchZoomEnabled bool `json:"pinchZoomEnabled"`

	// DoubleTapToZoomEnabled zooms in by 1.4 around a double tap.
	DoubleTapToZoomEnabled bool `json:"doubleTapToZoomEnabled"`

	// HighlightPerTapEnabled highlights the entry under a single tap.
	HighlightPerTapEnabled bool `json:"highlightPerTapEnabled"`

	// HighlightPerDragEnabled highlights under the pointer while it moves over
	// a chart that cannot be panned.
	HighlightPerDragEnabled bool `json:"highlightPerDragEnabled"`

	// HighlightFullBar reports the whole stacked bar instead of one segment.
	HighlightFullBar bool `json:"highlightFullBar"`

	// DragDecelerationEnabled keeps panning (or spinning) after a fling.
	DragDecelerationEnabled bool `json:"dragDecelerationEnabled"`

	// DragDecelerationFriction is multiplied into the velocity every tick.
	// Values are clamped to [0, 0.999].
	DragDecelerationFriction float64 `json:"dragDecelerationFriction"`

	// RotationEnabled lets one pointer rotate pie and radar charts.
	RotationEnabled bool `json:"rotationEnabled"`

	// InvertLeftAxis and InvertRightAxis draw the corresponding value axis
	// growing downward (leftward for horizontal bars).
	InvertLeftAxis  bool `json:"invertLeftAxis"`
	InvertRightAxis bool `json:"invertRightAxis"`

	// Visible range limits in data units; zero means unlimited.
	MinVisibleRangeX float64 `json:"minVisibleRangeX"`
	MaxVisibleRangeX float64 `json:"maxVisibleRangeX"`
	MinVisibleRangeY float64 `json:"minVisibleRangeY"`
	MaxVisibleRangeY float64 `json:"maxVisibleRangeY"`

	// DragOffsetX and DragOffsetY (dp) allow panning past the data extent.
	DragOffsetX float64 `json:"dragOffsetX"`
	DragOffsetY float64 `json:"dragOffsetY"`

	// DragTriggerDistance (dp) is how far a pointer must travel before a drag
	// or rotation starts.
	DragTriggerDistance float64 `json:"dragTriggerDistance"`

	// MinPointerDistance (dp) is the smallest two-pointer spacing that starts
	// a zoom.
	MinPointerDistance float64 `json:"minPointerDistance"`

	// MaxHighlightDistance (dp) drops candidates farther than this from the
	// touch.
	MaxHighlightDistance float64 `json:"maxHighlightDistance"`

	// MinFlingVelocity (dp per second) is the release speed needed to start
	// deceleration.
	MinFlingVelocity float64 `json:"minFlingVelocity"`

	// MinOffset (dp) is the smallest inset kept around the content rect.
	MinOffset float64 `json:"minOffset"`

	// DoubleTapTimeout is the longest gap between two taps of a double tap.
	DoubleTapTimeout time.Duration `json:"-"`

	// Density is the number of pixels per dp.
	Density float64 `json:"density"`

	// Debug enables stderr tracing of gestures and hit tests.
	Debug bool `json:"debug"`
}

// DefaultConfig returns a Config with everything enabled and the stock
// thresholds.
func DefaultConfig() Config {
	return Config{
		DragXEnabled:             true,
		DragYEnabled:             true,
		ScaleXEnabled:            true,
		ScaleYEnabled:            true,
		DoubleTapToZoomEnabled:   true,
		HighlightPerTapEnabled:   true,
		HighlightPerDragEnabled:  true,
		DragDecelerationEnabled:  true,
		DragDecelerationFriction: DefaultFriction,
		RotationEnabled:          true,
		DragTriggerDistance:      3,
		MinPointerDistance:       3.5,
		MaxHighlightDistance:     500,
		MinFlingVelocity:         50,
		MinOffset:                15,
		DoubleTapTimeout:         300 * time.Millisecond,
		Density:                  1,
	}
}

// ParseConfig overlays a JSON document onto DefaultConfig. Durations are
// written as Go duration strings, e.g. "doubleTapTimeout": "250ms".
func ParseConfig(data []byte) (Config, error) {
	doc := struct {
		Config
		DoubleTapTimeout string `json:"doubleTapTimeout"`
	}{Config: DefaultConfig()}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("chartview: parse config: %w", err)
	}
	cfg := doc.Config
	if doc.DoubleTapTimeout != "" {
		d, err := time.ParseDuration(doc.DoubleTapTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("chartview: parse config: doubleTapTimeout: %w", err)
		}
		cfg.DoubleTapTimeout = d
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("chartview: parse config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used as given.
func (c Config) Validate() error {
	switch {
	case !(c.Density > 0) || math.IsInf(c.Density, 0):
		return fmt.Errorf("density %v must be positive", c.Density)
	case math.IsNaN(c.DragDecelerationFriction):
		return errors.New("dragDecelerationFriction is NaN")
	case c.MinVisibleRangeX < 0 || c.MaxVisibleRangeX < 0 ||
		c.MinVisibleRangeY < 0 || c.MaxVisibleRangeY < 0:
		return errors.New("visible ranges must not be negative")
	case c.DoubleTapTimeout < 0:
		return fmt.Errorf("doubleTapTimeout %v must not be negative", c.DoubleTapTimeout)
	}
	return nil
}

// thresholds are the pixel values of the dp settings of a Config, resolved
// once when a chart is created.
type thresholds struct {
	dragTrigger    float64
	minPointerDist float64
	maxHighlight   float64
	minFling       float64
	minOffset      float64
	dragOffsetX    float64
	dragOffsetY    float64
	friction       float64
	density        float64
}

// resolve converts the dp settings to pixels. An unusable density falls back
// to 1.
func (c Config) resolve() thresholds {
	d := c.Density
	if !(d > 0) || math.IsInf(d, 0) {
		d = 1
	}
	return thresholds{
		dragTrigger:    math.Max(0, c.DragTriggerDistance*d),
		minPointerDist: math.Max(0, c.MinPointerDistance*d),
		maxHighlight:   math.Max(0, c.MaxHighlightDistance*d),
		minFling:       math.Max(0, c.MinFlingVelocity*d),
		minOffset:      math.Max(0, c.MinOffset*d),
		dragOffsetX:    math.Max(0, c.DragOffsetX*d),
		dragOffsetY:    math.Max(0, c.DragOffsetY*d),
		friction:       clampFriction(c.DragDecelerationFriction),
		density:        d,
	}
}

func clampFriction(f float64) float64 {
	if !(f > 0) {
		return 0
	}
	return math.Min(f, maxFriction)
}
