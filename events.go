package broadphase

import (
	"unsafe"

	"github.com/akmonengine/broadphase/actor"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

type pairKey struct {
	colliderA *actor.Collider
	colliderB *actor.Collider
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(colliderA, colliderB *actor.Collider) pairKey {
	ptrA := uintptr(unsafe.Pointer(colliderA))
	ptrB := uintptr(unsafe.Pointer(colliderB))

	if ptrB < ptrA {
		colliderA, colliderB = colliderB, colliderA
	}

	return pairKey{colliderA: colliderA, colliderB: colliderB}
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

type CollisionEnterEvent struct {
	ColliderA *actor.Collider
	ColliderB *actor.Collider
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	ColliderA *actor.Collider
	ColliderB *actor.Collider
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	ColliderA *actor.Collider
	ColliderB *actor.Collider
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Collision tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		*e = NewEvents()
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollisions marks the pairs active during the current tick
func (e *Events) recordCollisions(collisions []Collision) {
	if e.currentActivePairs == nil {
		*e = NewEvents()
	}

	for _, c := range collisions {
		e.currentActivePairs[makePairKey(c.ColliderA, c.ColliderB)] = true
	}
}

// forget drops every pair involving collider, without emitting an exit event
func (e *Events) forget(collider *actor.Collider) {
	for pair := range e.previousActivePairs {
		if pair.colliderA == collider || pair.colliderB == collider {
			delete(e.previousActivePairs, pair)
		}
	}
	for pair := range e.currentActivePairs {
		if pair.colliderA == collider || pair.colliderB == collider {
			delete(e.currentActivePairs, pair)
		}
	}
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	for pair := range e.currentActivePairs {
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionStayEvent{
				ColliderA: pair.colliderA,
				ColliderB: pair.colliderB,
			})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{
				ColliderA: pair.colliderA,
				ColliderB: pair.colliderB,
			})
		}
	}

	for pair := range e.previousActivePairs {
		if !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionExitEvent{
				ColliderA: pair.colliderA,
				ColliderB: pair.colliderB,
			})
		}
	}

	// Swap for next frame and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	if e.listeners == nil {
		*e = NewEvents()
	}
	e.processCollisionEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
