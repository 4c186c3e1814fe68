package chartview

// EventType identifies a kind of chart event.
type EventType uint8

const (
	EventTap            EventType = iota // fires on a release that never moved past the drag trigger
	EventDoubleTap                       // fires on the second of two quick taps
	EventDragStart                       // fires when movement exceeds the drag trigger and panning starts
	EventDrag                            // fires each time the pan translation is applied
	EventDragEnd                         // fires when the panning pointer lifts
	EventZoom                            // fires each time a two-pointer zoom is applied
	EventZoomEnd                         // fires when a zoom gesture ends
	EventRotate                          // fires each time a radial chart's rotation changes by gesture
	EventFlingStart                      // fires when a release starts deceleration
	EventFlingEnd                        // fires when deceleration comes to rest
	EventHighlight                       // fires when the highlighted entry changes
	EventHighlightClear                  // fires when the highlight is removed
	eventTypeCount
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventTap:
		return "tap"
	case EventDoubleTap:
		return "double-tap"
	case EventDragStart:
		return "drag-start"
	case EventDrag:
		return "drag"
	case EventDragEnd:
		return "drag-end"
	case EventZoom:
		return "zoom"
	case EventZoomEnd:
		return "zoom-end"
	case EventRotate:
		return "rotate"
	case EventFlingStart:
		return "fling-start"
	case EventFlingEnd:
		return "fling-end"
	case EventHighlight:
		return "highlight"
	case EventHighlightClear:
		return "highlight-clear"
	default:
		return "unknown"
	}
}

// Event carries the data of one chart event. Fields not relevant to Type
// are zero.
type Event struct {
	Type EventType
	// X and Y are the pointer pixel (the pinch midpoint for zoom events).
	X, Y float64
	// DeltaX and DeltaY are the applied pan for drag events, the total
	// displacement for EventDragEnd and the release velocity (px/s) for
	// EventFlingStart.
	DeltaX, DeltaY float64
	// ScaleX and ScaleY are the viewport scales after a zoom.
	ScaleX, ScaleY float64
	// Rotation is the radial rotation in degrees after a rotate or spin.
	Rotation float64
	// State is the gesture state the event was produced in.
	State GestureState
	// Highlight is valid for EventHighlight.
	Highlight Highlight
}

// EventSink receives every chart event, after the registered callbacks.
// It is the hook for ECS bridges such as the ecs sub-package.
type EventSink interface {
	EmitEvent(ev Event)
}

// EventSinkFunc adapts a function to an EventSink.
type EventSinkFunc func(ev Event)

// EmitEvent calls f(ev).
func (f EventSinkFunc) EmitEvent(ev Event) { f(ev) }

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	handlers [eventTypeCount][]eventHandler
	nextID   uint32
}

func (r *handlerRegistry) add(t EventType, fn func(Event)) CallbackHandle {
	if t >= eventTypeCount || fn == nil {
		return CallbackHandle{}
	}
	r.nextID++
	id := r.nextID
	r.handlers[t] = append(r.handlers[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: t}
}

func (r *handlerRegistry) dispatch(ev Event) {
	if ev.Type >= eventTypeCount {
		return
	}
	for _, h := range r.handlers[ev.Type] {
		h.fn(ev)
	}
}

// CallbackHandle allows removing a registered chart callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.handlers[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.handlers[h.event] = s[:len(s)-1]
			return
		}
	}
}
