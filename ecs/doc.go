// Package ecs provides ECS adapters for arbor's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges arbor hover and
// click callbacks into a [Donburi] world as typed events. Subscribe to
// [InteractionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(donburi.NewWorld())
//	world := arbor.NewWorld(arbor.WithEntityStore(store))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
