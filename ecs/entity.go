package ecs

import "fmt"

// Entity packs a slot id in the low 32 bits and its generation in the high
// 32 bits. The zero Entity is never handed out, so a zero reference means
// "none" in components that point at other entities.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

// EntityFromRef turns a reference stored in a component back into an
// Entity. Liveness is not checked.
func EntityFromRef(ref uint64) Entity {
	return Entity(ref)
}

// Ref is the form components use to point at e.
func (e Entity) Ref() uint64 {
	return uint64(e)
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String renders slot and generation, e.g. "7v2".
func (e Entity) String() string {
	if !e.Valid() {
		return "none"
	}
	return fmt.Sprintf("%dv%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e > 0
}
