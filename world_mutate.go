package cargo

// insertRows is the untyped core behind InsertRows1..4: it creates n new
// entities in the archetype identified by componentTypes/tagTypes, pushes
// them into the appropriate chunk set (creating chunks as needed), and
// populates each named column from columnValues (columnValues[i][row] is
// the value for componentTypes[i] on the given row).
func (w *World) insertRows(componentTypes, tagTypes []TypeID, tagValues map[TypeID]any, n int, columnValues [][]any) ([]Entity, error) {
	if err := w.requireUnlocked(); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	arch := w.archetypeFor(componentTypes, tagTypes)
	cs := arch.chunkSetFor(tagValues)
	tick := w.advanceTick()

	entities := make([]Entity, n)
	for i := 0; i < n; i++ {
		e := w.allocEntity()
		c := cs.lastChunk()
		row := c.push(e)
		*w.slotFor(e) = entitySlot{generation: e.Generation, arch: arch, chunkSet: cs, chunk: c, row: row}
		for ci, typ := range componentTypes {
			col := c.componentColumn(typ)
			setColumnValue(col, row, columnValues[ci][i], tick)
		}
		entities[i] = e
		if hook := Config.hooks.OnEntityInserted; hook != nil {
			hook(e)
		}
	}
	return entities, nil
}

// enqueueInsertRows defers an insertRows call until the world is fully
// unlocked. Unlike direct inserts it cannot hand back Entity handles
// synchronously, since the rows don't exist yet when the call returns.
func (w *World) enqueueInsertRows(componentTypes, tagTypes []TypeID, tagValues map[TypeID]any, n int, columnValues [][]any) error {
	if !w.Locked() {
		_, err := w.insertRows(componentTypes, tagTypes, tagValues, n, columnValues)
		return err
	}
	w.enqueue("insertRows", func(w *World) error {
		_, err := w.insertRows(componentTypes, tagTypes, tagValues, n, columnValues)
		return err
	})
	return nil
}

// Destroy removes the given entities from storage, cascading to any
// entities whose parent (via SetParent) is one of them.
func (w *World) Destroy(entities ...Entity) error {
	if err := w.requireUnlocked(); err != nil {
		return err
	}
	for _, e := range entities {
		if err := w.checkEntity(e); err != nil {
			return err
		}
	}
	for _, e := range entities {
		w.destroyOne(e)
	}
	return nil
}

// EnqueueDestroyEntities defers entity destruction until the world is
// fully unlocked.
func (w *World) EnqueueDestroyEntities(entities ...Entity) error {
	if !w.Locked() {
		return w.Destroy(entities...)
	}
	snapshot := append([]Entity(nil), entities...)
	w.enqueue("destroyEntities", func(w *World) error {
		return w.Destroy(snapshot...)
	})
	return nil
}

func (w *World) destroyOne(e Entity) {
	if !w.Contains(e) {
		return
	}
	if cb, ok := w.destroyCB[e]; ok {
		cb(e)
	}
	for child, parent := range w.parents {
		if parent == e {
			w.destroyOne(child)
		}
	}

	slot := w.slotFor(e)
	moved := slot.chunk.swapRemove(slot.row)
	if moved.Valid() {
		w.slotFor(moved).row = slot.row
	}
	if hook := Config.hooks.OnEntityDestroyed; hook != nil {
		hook(e)
	}
	w.freeEntity(e)
}

// relocation describes a single structural change to one entity's schema:
// optionally adding one component (with its initial value) or one tag
// (with its value), and/or removing one component or tag type. Exactly
// one of add/remove is populated per call in practice (ComponentType[T].Add,
// ComponentType[T].Remove, TagType[T].Add, TagType[T].Remove each build one), but the mechanics
// are shared since every case reduces to "compute the new schema, copy
// surviving columns across, stamp the one that changed."
type relocation struct {
	addComponent    *TypeID
	addValue        any
	removeComponent *TypeID
	addTag          *TypeID
	addTagValue     any
	removeTag       *TypeID
}

// relocate migrates e to the archetype/chunk-set implied by applying rel
// to e's current schema, carrying every untouched column's change version
// forward (a target column already at a newer version keeps it) and
// stamping only the touched component's column.
//
// Adding a component/tag already present is an overwrite rather than a
// schema change, and removing one that's absent is a no-op — both handled
// by the caller (ComponentType[T].Add/Remove, TagType[T].Add/Remove)
// before relocate is ever invoked, so by the time we get here every
// add/remove names a type that genuinely changes the schema.
func (w *World) relocate(e Entity, rel relocation) error {
	if err := w.requireUnlocked(); err != nil {
		return err
	}
	if err := w.checkEntity(e); err != nil {
		return err
	}

	slot := *w.slotFor(e)
	oldArch, oldChunk, oldRow := slot.arch, slot.chunk, slot.row

	newComponentTypes := append([]TypeID(nil), oldArch.componentTypes...)
	if rel.addComponent != nil {
		newComponentTypes = append(newComponentTypes, *rel.addComponent)
	}
	if rel.removeComponent != nil {
		newComponentTypes = removeType(newComponentTypes, *rel.removeComponent)
	}

	newTagTypes := append([]TypeID(nil), oldArch.tagTypes...)
	newTagValues := make(map[TypeID]any, len(newTagTypes)+1)
	for _, t := range oldArch.tagTypes {
		v, _ := slot.chunkSet.tagValue(t)
		newTagValues[t] = v
	}
	if rel.addTag != nil {
		newTagTypes = append(newTagTypes, *rel.addTag)
		newTagValues[*rel.addTag] = rel.addTagValue
	}
	if rel.removeTag != nil {
		newTagTypes = removeType(newTagTypes, *rel.removeTag)
		delete(newTagValues, *rel.removeTag)
	}

	newArch := w.archetypeFor(newComponentTypes, newTagTypes)
	cs := newArch.chunkSetFor(newTagValues)
	newChunk := cs.lastChunk()
	newRow := newChunk.push(e)

	var tick uint64
	if rel.addComponent != nil {
		tick = w.advanceTick()
	}

	for _, col := range newChunk.columns {
		if rel.addComponent != nil && col.typ == *rel.addComponent {
			setColumnValue(col, newRow, rel.addValue, tick)
			continue
		}
		oldCol := oldChunk.componentColumn(col.typ)
		copyColumnValue(col, newRow, oldCol, oldRow)
		if oldCol.version > col.version {
			col.version = oldCol.version
		}
	}

	moved := oldChunk.swapRemove(oldRow)
	if moved.Valid() {
		w.slotFor(moved).row = oldRow
	}
	*w.slotFor(e) = entitySlot{generation: e.Generation, arch: newArch, chunkSet: cs, chunk: newChunk, row: newRow}

	if hook := Config.hooks.OnEntityMigrated; hook != nil {
		hook(e, oldArch.description(), newArch.description())
	}
	return nil
}

func removeType(types []TypeID, target TypeID) []TypeID {
	out := make([]TypeID, 0, len(types))
	for _, t := range types {
		if t != target {
			out = append(out, t)
		}
	}
	return out
}

