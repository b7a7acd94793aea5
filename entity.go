package cargo

import "fmt"

// Entity is an opaque handle to a row of data living in some World. It
// carries no data of its own; all state lives in the World's archetype
// storage.
//
// The zero value is never a live entity — Index 0 is reserved so a
// zero-valued Entity reliably reports as not-found rather than aliasing
// whatever the first allocated entity happens to be.
type Entity struct {
	Index      uint32
	Generation uint32

	// world identifies which World (within a Universe) minted this
	// entity, so cross-world use can be detected and rejected rather than
	// silently corrupting unrelated storage.
	world uint32
}

// EntityDestroyCallback is invoked synchronously just before an entity is
// removed from storage.
type EntityDestroyCallback func(Entity)

func (e Entity) String() string {
	return fmt.Sprintf("Entity{Index: %d, Generation: %d}", e.Index, e.Generation)
}

// Valid reports whether e is anything other than the zero value. It does
// not consult any World — use World.Contains for liveness.
func (e Entity) Valid() bool {
	return e != Entity{}
}

// entitySlot is a World's bookkeeping record for one entity index: which
// generation currently owns it, and where its row currently lives. A slot
// with a nil archetype is free and queued for reuse once its generation
// has been bumped.
type entitySlot struct {
	generation uint32
	arch       *archetype
	chunkSet   *chunkSet
	chunk      *chunk
	row        int
}

func (s *entitySlot) live() bool {
	return s.arch != nil
}
