/*
Package cargo provides an archetype-based Entity-Component-System (ECS) world
for games and simulations.

Cargo groups entities by their exact set of component and tag types so that
iteration becomes dense traversal of parallel column arrays rather than
pointer-chasing. Entities with the same component types and the same tag
values are packed into the same chunks, fixed-capacity struct-of-arrays
blocks; all chunks sharing tag values form a chunk set; all chunk sets sharing a
component/tag schema form an archetype.

Core Concepts:

  - Entity: an opaque (index, generation) identifier.
  - Component: per-entity typed data, registered once via RegisterComponent.
  - Tag: per-chunk-set typed data shared by every entity in the set,
    registered via RegisterTag.
  - Archetype: the schema (component-type set + tag-type set) a World
    interns entities into.
  - Query: a typed view (Read, Write, TryRead, TryWrite, Tagged, Entity)
    paired with a boolean filter over archetypes and chunks.

Basic usage:

	universe := cargo.NewUniverse()
	world := universe.CreateWorld()

	position := cargo.RegisterComponent[Position]()
	velocity := cargo.RegisterComponent[Velocity]()

	entities, _ := cargo.InsertRows2(world, nil, position, velocity,
		[]cargo.Tuple2[Position, Velocity]{
			{A: Position{X: 1}, B: Velocity{X: 1}},
		})

	query := cargo.NewQuery2(world, cargo.Write[Position]{Type: position}, cargo.Read[Velocity]{Type: velocity})
	for row := range query.Iter() {
		row.A.X += row.B.X
	}

Cargo is the storage and query core of a larger simulation framework; the
system scheduler that runs user logic against it, and any concrete wire
format for persistence, are deliberately left to callers.
*/
package cargo
