// Package component declares the fighter world's component types and the
// kinds the ecs package stores them under. Every component file registers
// its kind once at package init through NewComponent.
package component

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("world: entity destroyed or never created")
	ErrNilComponent         = errors.New("world: nil component value")
	ErrInvalidComponentKind = errors.New("world: component kind was never registered")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind keys one component type's store. The zero kind is
// unregistered and rejected by every world operation.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func NewComponentKind[T any]() ComponentKind[T] {
	name := fmt.Sprintf("%T", *new(T))
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1)), name: name}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// String names the kind in logs and errors, e.g. "Velocity#3".
func (k ComponentKind[T]) String() string {
	if !k.Valid() {
		return "unregistered"
	}
	return fmt.Sprintf("%s#%d", k.name, k.id)
}

// ComponentHandle is what the component files export, e.g. VelocityComponent.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
