// Package ecs provides ECS adapters for chartview's event system.
//
// The primary adapter is [NewDonburiSink], which bridges chart events (tap,
// drag, zoom, fling, highlight) into a [Donburi] world as typed events.
// Subscribe to [ChartEventType] in your ECS systems to receive them.
// [NewDonburiSinkFor] additionally mirrors the chart's highlight into the
// [Selection] component of one entity.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	chart.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
