package ecs

import (
	"github.com/google/uuid"

	"github.com/milk9111/fighter/hitbox"
)

// ContactEvent is emitted for every side of an overlap that did something.
type ContactEvent struct {
	Subject     Entity
	Other       Entity
	SubjectKind hitbox.Kind
	OtherKind   hitbox.Kind
	Static      bool
	Outcome     hitbox.Outcome
	// AttackID identifies the attack hitbox when the subject struck.
	AttackID uuid.UUID
}

// HitEvent is emitted when damage lands.
type HitEvent struct {
	Attacker Entity
	Target   Entity
	AttackID uuid.UUID
	Damage   int
	// Remaining is the target's health after the hit.
	Remaining int
}

// DeathEvent is emitted once when an entity's health reaches zero.
type DeathEvent struct {
	Entity Entity
	Killer Entity
}

// EventQueue is a FIFO of events produced during one scheduler pass. It is
// cleared after the pass so every system sees only this tick's events.
type EventQueue struct {
	items []any
}

// Push adds an event.
func (q *EventQueue) Push(evt any) {
	if q == nil || evt == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len is the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []any {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	clear(q.items)
	q.items = q.items[:0]
}

// Events returns the queued events of type T without removing them.
func Events[T any](w *World) []T {
	if w == nil {
		return nil
	}
	var out []T
	for _, item := range w.events.items {
		if evt, ok := item.(T); ok {
			out = append(out, evt)
		}
	}
	return out
}
