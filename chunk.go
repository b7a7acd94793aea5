package cargo

import "github.com/TheBitDrifter/bark"

// chunk is a fixed-capacity struct-of-arrays block: every entity sharing
// an archetype and a chunk set's tag values is stored across one or more
// chunks, each holding up to `capacity` rows.
type chunk struct {
	set *chunkSet

	entities []Entity // len == count, cap == capacity
	columns  []*column // indexed the same way as the owning archetype's component list
	count    int
	capacity int
}

func newChunk(set *chunkSet, capacity int, columnTypes []TypeID) *chunk {
	c := &chunk{
		set:      set,
		entities: make([]Entity, 0, capacity),
		columns:  make([]*column, len(columnTypes)),
		capacity: capacity,
	}
	for i, typ := range columnTypes {
		desc, ok := lookupComponent(typ)
		if !ok {
			panic(bark.AddTrace(unknownComponentType(typ)))
		}
		c.columns[i] = newColumn(typ, desc.goType, capacity)
	}
	return c
}

func (c *chunk) full() bool {
	return c.count >= c.capacity
}

// push appends e as a new row and returns its row index. The caller is
// responsible for populating component values afterward.
func (c *chunk) push(e Entity) int {
	row := c.count
	c.entities = append(c.entities, e)
	c.count++
	return row
}

// swapRemove deletes row idx by moving the last row into its place (if
// idx wasn't already last) and shrinking count by one. Returns the entity
// that was moved into idx, or the zero Entity if idx was the last row.
func (c *chunk) swapRemove(idx int) Entity {
	last := c.count - 1
	var moved Entity
	if idx != last {
		moved = c.entities[last]
		c.entities[idx] = moved
		for _, col := range c.columns {
			swapRemoveColumnValue(col, idx, last)
		}
	}
	c.entities = c.entities[:last]
	c.count--
	return moved
}

// componentColumn returns the column storing typ, or nil if typ is not
// part of this chunk's archetype.
func (c *chunk) componentColumn(typ TypeID) *column {
	for _, col := range c.columns {
		if col.typ == typ {
			return col
		}
	}
	return nil
}

// stamp marks col as written at the given world tick. Called once per
// Write/TryWrite column of every chunk a query pass matched, at the end
// of the pass (see querycore.go's finishPass), whether or not the pass
// body wrote to it, never eagerly on every visit.
func (c *chunk) stamp(col *column, tick uint64) {
	col.version = tick
}

func unknownComponentType(typ TypeID) error {
	return ComponentNotPresentError{Type: typ}
}
