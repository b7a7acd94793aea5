package cargo

import "sync/atomic"

// universeCounter hands out disjoint World id ranges so Entity handles
// minted by different Worlds (even across different Universes in the same
// process) never collide and stay globally unique across all of them.
var universeCounter uint32

// Universe is a factory for Worlds that share nothing but process-wide
// type registration. It has no behavior of its own beyond minting Worlds
// with disjoint identity spaces, so many independent storages can coexist
// safely in one process.
type Universe struct {
	worldCounter uint32
}

// NewUniverse creates an empty Universe.
func NewUniverse() *Universe {
	return &Universe{}
}

// CreateWorld creates a new, empty World with the default entity arena
// starting capacity.
func (u *Universe) CreateWorld() *World {
	return u.CreateWorldWithCapacity(1024)
}

// CreateWorldWithCapacity creates a new, empty World whose entity arena
// preallocates room for initialCapacity entities.
func (u *Universe) CreateWorldWithCapacity(initialCapacity uint32) *World {
	id := atomic.AddUint32(&universeCounter, 1)
	_ = atomic.AddUint32(&u.worldCounter, 1)
	return newWorld(id, initialCapacity)
}
