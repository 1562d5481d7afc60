package component

import (
	"errors"
	"reflect"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// Kind identifies a component store without its value type.
type Kind interface {
	ID() ComponentID
}

type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is the typed key for one component store. Declare one
// per component type as a package variable.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
	name string
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{
		kind: NewComponentKind[T](),
		name: reflect.TypeFor[T]().Name(),
	}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

// String is the component's type name, used in error messages.
func (h ComponentHandle[T]) String() string {
	if h.name == "" {
		return "component"
	}
	return h.name
}

type ComponentID uint32

var nextComponentID atomic.Uint32
