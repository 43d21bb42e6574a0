// Package ecs provides ECS adapters for canopy's panel event system.
//
// The primary adapter is [NewDonburiSink], which bridges panel open/close
// transitions into a [Donburi] world as typed events. Subscribe to
// [PanelEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	tree.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
