// Package ecs provides ECS adapters for chartview.
package ecs

import (
	"github.com/phanxgames/chartview"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ChartEventType is the Donburi event type for chart events.
// Subscribe to this in your ECS systems to receive gesture and highlight events.
var ChartEventType = events.NewEventType[chartview.Event]()

// Selection mirrors a chart's highlighted entry on an entity.
type Selection struct {
	Highlight chartview.Highlight
	Active    bool
}

// SelectionComponent is the component type of Selection.
var SelectionComponent = donburi.NewComponentType[Selection]()

type donburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Chart events are published to ChartEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) chartview.EventSink {
	return &donburiSink{world: world, entity: donburi.Null}
}

// NewDonburiSinkFor is NewDonburiSink that also writes highlight changes to
// the Selection component of entity as they happen. Entities without the
// component are left alone.
func NewDonburiSinkFor(world donburi.World, entity donburi.Entity) chartview.EventSink {
	return &donburiSink{world: world, entity: entity}
}

func (s *donburiSink) EmitEvent(ev chartview.Event) {
	ChartEventType.Publish(s.world, ev)
	if ev.Type != chartview.EventHighlight && ev.Type != chartview.EventHighlightClear {
		return
	}
	if s.entity == donburi.Null || !s.world.Valid(s.entity) {
		return
	}
	entry := s.world.Entry(s.entity)
	if !entry.HasComponent(SelectionComponent) {
		return
	}
	if ev.Type == chartview.EventHighlight {
		SelectionComponent.SetValue(entry, Selection{Highlight: ev.Highlight, Active: true})
	} else {
		SelectionComponent.SetValue(entry, Selection{})
	}
}
