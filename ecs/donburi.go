package ecs

import (
	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PanelEventType is the Donburi event type for canopy panel transitions.
// Subscribe to this in your ECS systems to react to panels opening and
// closing (including cascade closes, which carry ReasonAncestorClose).
var PanelEventType = events.NewEventType[canopy.PanelEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Panel
// events are published to PanelEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) canopy.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitPanelEvent(event canopy.PanelEvent) {
	PanelEventType.Publish(s.world, event)
}
