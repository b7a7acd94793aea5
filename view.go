package cargo

// viewKind enumerates the view declarators a query can name.
type viewKind int

const (
	viewRead viewKind = iota
	viewWrite
	viewTryRead
	viewTryWrite
	viewTagged
	viewEntity
)

type viewDescriptor struct {
	kind viewKind
	typ  TypeID
}

func (d viewDescriptor) writes() bool {
	return d.kind == viewWrite || d.kind == viewTryWrite
}

func (d viewDescriptor) optional() bool {
	return d.kind == viewTryRead || d.kind == viewTryWrite
}

// requiredOn reports whether an archetype must carry this view's type to
// match a query at all (Read/Write/Tagged are required; TryRead/TryWrite
// are optional; EntityView always matches).
func (d viewDescriptor) requiredOn(a *archetype) bool {
	switch d.kind {
	case viewRead, viewWrite:
		return a.hasComponent(d.typ)
	case viewTagged:
		return a.hasTag(d.typ)
	case viewTryRead, viewTryWrite, viewEntity:
		return true
	}
	return false
}

// View is one typed declarator over a query's rows. Concrete
// implementations are the fixed set: Read, Write, TryRead, TryWrite,
// Tagged, and EntityView. Go has no way to abstract
// over "a type parameterized by its own element type" more generally than
// this without variadic generics, so NewQuery1..4 take View[A]..View[D]
// directly rather than a single homogeneous slice.
type View[T any] interface {
	descriptor() viewDescriptor
	resolve(c *chunk, row int) T
}

// Read declares read-only access to component type T. Required: a query
// naming Read[T] only matches archetypes carrying T.
type Read[T any] struct {
	Type ComponentType[T]
}

func (r Read[T]) descriptor() viewDescriptor { return viewDescriptor{kind: viewRead, typ: r.Type.id} }

func (r Read[T]) resolve(c *chunk, row int) T {
	return columnSlice[T](c.componentColumn(r.Type.id))[row]
}

// Write declares mutable access to component type T via a live pointer
// into chunk storage. Required, and marks the column for a version stamp
// once the enclosing pass completes.
type Write[T any] struct {
	Type ComponentType[T]
}

func (wv Write[T]) descriptor() viewDescriptor {
	return viewDescriptor{kind: viewWrite, typ: wv.Type.id}
}

func (wv Write[T]) resolve(c *chunk, row int) *T {
	return &columnSlice[T](c.componentColumn(wv.Type.id))[row]
}

// TryRead declares optional read-only access: archetypes lacking T still
// match, resolving to a nil pointer for that view on every row.
type TryRead[T any] struct {
	Type ComponentType[T]
}

func (t TryRead[T]) descriptor() viewDescriptor {
	return viewDescriptor{kind: viewTryRead, typ: t.Type.id}
}

func (t TryRead[T]) resolve(c *chunk, row int) *T {
	col := c.componentColumn(t.Type.id)
	if col == nil {
		return nil
	}
	v := columnSlice[T](col)[row]
	return &v
}

// TryWrite declares optional mutable access: archetypes lacking T still
// match, resolving to a nil pointer for that view; archetypes carrying T
// resolve to a live pointer and have the column stamped on write, exactly
// like Write.
type TryWrite[T any] struct {
	Type ComponentType[T]
}

func (t TryWrite[T]) descriptor() viewDescriptor {
	return viewDescriptor{kind: viewTryWrite, typ: t.Type.id}
}

func (t TryWrite[T]) resolve(c *chunk, row int) *T {
	col := c.componentColumn(t.Type.id)
	if col == nil {
		return nil
	}
	return &columnSlice[T](col)[row]
}

// Tagged declares read access to a chunk set's tag value for tag type T.
// Required: a query naming Tagged[T] only matches archetypes carrying the
// tag type (any value).
type Tagged[T comparable] struct {
	Type TagType[T]
}

func (t Tagged[T]) descriptor() viewDescriptor {
	return viewDescriptor{kind: viewTagged, typ: t.Type.id}
}

func (t Tagged[T]) resolve(c *chunk, row int) T {
	v, _ := c.set.tagValue(t.Type.id)
	return v.(T)
}

// EntityView resolves to the row's own Entity handle. Always matches.
type EntityView struct{}

func (EntityView) descriptor() viewDescriptor { return viewDescriptor{kind: viewEntity} }

func (EntityView) resolve(c *chunk, row int) Entity { return c.entities[row] }

// validateAliasing enforces the read/write aliasing rule: no
// component type may be named by both a read view (Read/TryRead) and a
// write view (Write/TryWrite) within the same query, and no type may be
// named by two write views.
func validateAliasing(descs []viewDescriptor) error {
	read := make(map[TypeID]bool)
	write := make(map[TypeID]bool)
	for _, d := range descs {
		if d.kind == viewEntity || d.kind == viewTagged {
			continue
		}
		if d.writes() {
			if write[d.typ] || read[d.typ] {
				return AliasViolationError{Type: d.typ}
			}
			write[d.typ] = true
		} else {
			if write[d.typ] {
				return AliasViolationError{Type: d.typ}
			}
			read[d.typ] = true
		}
	}
	return nil
}

// Get returns a copy of e's value for component type T.
func (c ComponentType[T]) Get(w *World, e Entity) (T, error) {
	var zero T
	if err := w.checkEntity(e); err != nil {
		return zero, err
	}
	slot := w.slotFor(e)
	col := slot.chunk.componentColumn(c.id)
	if col == nil {
		return zero, ComponentNotPresentError{Type: c.id}
	}
	return columnSlice[T](col)[slot.row], nil
}

// GetMut returns a live pointer to e's value for component type T.
func (c ComponentType[T]) GetMut(w *World, e Entity) (*T, error) {
	if err := w.checkEntity(e); err != nil {
		return nil, err
	}
	slot := w.slotFor(e)
	col := slot.chunk.componentColumn(c.id)
	if col == nil {
		return nil, ComponentNotPresentError{Type: c.id}
	}
	return &columnSlice[T](col)[slot.row], nil
}

// Add attaches component type T to e with the given value. If e already
// carries T, Add overwrites its value in place rather than migrating;
// otherwise it migrates e to the archetype that includes T.
// Errors with WorldLockedError if the world is currently locked for
// iteration; use EnqueueAdd while locked.
func (c ComponentType[T]) Add(w *World, e Entity, value T) error {
	if err := w.requireUnlocked(); err != nil {
		return err
	}
	if err := w.checkEntity(e); err != nil {
		return err
	}
	slot := w.slotFor(e)
	if slot.arch.hasComponent(c.id) {
		col := slot.chunk.componentColumn(c.id)
		setColumnValue(col, slot.row, value, w.advanceTick())
		return nil
	}
	typ := c.id
	return w.relocate(e, relocation{addComponent: &typ, addValue: value})
}

// EnqueueAdd defers Add until the world is fully unlocked.
func (c ComponentType[T]) EnqueueAdd(w *World, e Entity, value T) error {
	if !w.Locked() {
		return c.Add(w, e, value)
	}
	w.enqueue("addComponent", func(w *World) error {
		return c.Add(w, e, value)
	})
	return nil
}

// Remove detaches component type T from e, migrating it to the archetype
// without T. A no-op if e doesn't carry T.
func (c ComponentType[T]) Remove(w *World, e Entity) error {
	if err := w.requireUnlocked(); err != nil {
		return err
	}
	if err := w.checkEntity(e); err != nil {
		return err
	}
	if !w.slotFor(e).arch.hasComponent(c.id) {
		return nil
	}
	typ := c.id
	return w.relocate(e, relocation{removeComponent: &typ})
}

// EnqueueRemove defers Remove until the world is fully unlocked.
func (c ComponentType[T]) EnqueueRemove(w *World, e Entity) error {
	if !w.Locked() {
		return c.Remove(w, e)
	}
	w.enqueue("removeComponent", func(w *World) error {
		return c.Remove(w, e)
	})
	return nil
}

// Get returns e's current value for tag type T.
func (t TagType[T]) Get(w *World, e Entity) (T, error) {
	var zero T
	if err := w.checkEntity(e); err != nil {
		return zero, err
	}
	slot := w.slotFor(e)
	v, ok := slot.chunkSet.tagValue(t.id)
	if !ok {
		return zero, TagNotPresentError{Type: t.id}
	}
	return v.(T), nil
}

// Add attaches tag type T to e with the given value, migrating e into the
// chunk set for that tag-value assignment. If e already carries T with a
// different value, this re-migrates it into the chunk set for the new
// value (tags, unlike components, can't be overwritten in place since
// their value selects the chunk set itself).
func (t TagType[T]) Add(w *World, e Entity, value T) error {
	if err := w.requireUnlocked(); err != nil {
		return err
	}
	if err := w.checkEntity(e); err != nil {
		return err
	}
	typ := t.id
	if w.slotFor(e).arch.hasTag(typ) {
		if err := w.relocate(e, relocation{removeTag: &typ}); err != nil {
			return err
		}
	}
	return w.relocate(e, relocation{addTag: &typ, addTagValue: value})
}

// EnqueueAdd defers Add until the world is fully unlocked.
func (t TagType[T]) EnqueueAdd(w *World, e Entity, value T) error {
	if !w.Locked() {
		return t.Add(w, e, value)
	}
	w.enqueue("addTag", func(w *World) error {
		return t.Add(w, e, value)
	})
	return nil
}

// Remove detaches tag type T from e. A no-op if e doesn't carry T.
func (t TagType[T]) Remove(w *World, e Entity) error {
	if err := w.requireUnlocked(); err != nil {
		return err
	}
	if err := w.checkEntity(e); err != nil {
		return err
	}
	if !w.slotFor(e).arch.hasTag(t.id) {
		return nil
	}
	typ := t.id
	return w.relocate(e, relocation{removeTag: &typ})
}

// EnqueueRemove defers Remove until the world is fully unlocked.
func (t TagType[T]) EnqueueRemove(w *World, e Entity) error {
	if !w.Locked() {
		return t.Remove(w, e)
	}
	w.enqueue("removeTag", func(w *World) error {
		return t.Remove(w, e)
	})
	return nil
}
