package polysat

import (
	"unsafe"

	"github.com/akmonengine/polysat/actor"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

type pairKey struct {
	bodyA *actor.Body
	bodyB *actor.Body
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB *actor.Body) pairKey {
	ptrA := uintptr(unsafe.Pointer(bodyA))
	ptrB := uintptr(unsafe.Pointer(bodyB))

	if ptrB < ptrA {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// CollisionEnterEvent is emitted on the first detection pass where a pair collides
type CollisionEnterEvent struct {
	BodyA     *actor.Body
	BodyB     *actor.Body
	Collision Collision
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

// CollisionStayEvent is emitted while a pair keeps colliding
type CollisionStayEvent struct {
	BodyA     *actor.Body
	BodyB     *actor.Body
	Collision Collision
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

// CollisionExitEvent is emitted on the first pass where a colliding pair is separated again
type CollisionExitEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events tracks colliding pairs between detection passes and dispatches Enter/Stay/Exit
type Events struct {
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]Contact
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]Contact),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		*e = NewEvents()
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContacts marks the pairs colliding during the current pass
func (e *Events) recordContacts(contacts []Contact) {
	if e.currentActivePairs == nil {
		*e = NewEvents()
	}
	for _, c := range contacts {
		e.currentActivePairs[makePairKey(c.BodyA, c.BodyB)] = c
	}
}

// forget drops every tracked pair involving body, without emitting Exit
func (e *Events) forget(body *actor.Body) {
	for pair := range e.previousActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousActivePairs, pair)
		}
	}
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	for pair, contact := range e.currentActivePairs {
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionStayEvent{
				BodyA:     contact.BodyA,
				BodyB:     contact.BodyB,
				Collision: contact.Collision,
			})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{
				BodyA:     contact.BodyA,
				BodyB:     contact.BodyB,
				Collision: contact.Collision,
			})
		}
	}

	for pair := range e.previousActivePairs {
		if _, ok := e.currentActivePairs[pair]; !ok {
			e.buffer = append(e.buffer, CollisionExitEvent{
				BodyA: pair.bodyA,
				BodyB: pair.bodyB,
			})
		}
	}

	// Current pairs become the previous ones for the next pass
	clear(e.previousActivePairs)
	for pair := range e.currentActivePairs {
		e.previousActivePairs[pair] = true
	}
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
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
