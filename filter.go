package cargo

import "github.com/TheBitDrifter/bark"

// FilterNode is a boolean predicate over a query's candidate archetypes
// and chunks: component, tag, tag value, changed, and, or, and not
// combinators. matchArchetype is a conservative, cheap over-approximation used
// to build the per-query matched-archetype cache (it may return true for
// an archetype that ultimately has no matching chunk, but must never
// return false for one that does); matchChunk is the exact, per-chunk
// predicate evaluated on every pass.
type FilterNode interface {
	matchArchetype(a *archetype) bool
	matchChunk(a *archetype, c *chunk) bool
	collectChanged(out *[]*changedNode)
}

type componentFilter struct{ typ TypeID }

// Component requires the archetype to carry component type T.
func Component[T any](ct ComponentType[T]) FilterNode {
	return componentFilter{typ: ct.id}
}

func (f componentFilter) matchArchetype(a *archetype) bool        { return a.hasComponent(f.typ) }
func (f componentFilter) matchChunk(a *archetype, c *chunk) bool  { return true }
func (f componentFilter) collectChanged(out *[]*changedNode)      {}

type tagFilter struct{ typ TypeID }

// TagPresent requires the archetype to carry tag type T, regardless of
// value.
func TagPresent[T comparable](tt TagType[T]) FilterNode {
	return tagFilter{typ: tt.id}
}

func (f tagFilter) matchArchetype(a *archetype) bool       { return a.hasTag(f.typ) }
func (f tagFilter) matchChunk(a *archetype, c *chunk) bool { return true }
func (f tagFilter) collectChanged(out *[]*changedNode)     {}

type tagValueFilter struct {
	typ   TypeID
	value any
	equal func(a, b any) bool
}

// TagValue requires the archetype to carry tag type T with exactly the
// given value, matching at chunk-set granularity.
func TagValue[T comparable](tt TagType[T], value T) FilterNode {
	return tagValueFilter{
		typ:   tt.id,
		value: value,
		equal: func(a, b any) bool { return a.(T) == b.(T) },
	}
}

func (f tagValueFilter) matchArchetype(a *archetype) bool { return a.hasTag(f.typ) }
func (f tagValueFilter) matchChunk(a *archetype, c *chunk) bool {
	v, ok := c.set.tagValue(f.typ)
	return ok && f.equal(v, f.value)
}
func (f tagValueFilter) collectChanged(out *[]*changedNode) {}

// changedNode implements the changed<T> filter. lastSeen is mutated only
// at the end of a full pass (see querycore.go finishPass), never mid-pass,
// so nested iteration over the same query sees a stable view.
type changedNode struct {
	typ      TypeID
	lastSeen uint64
}

// Changed requires component type T's column in the candidate chunk to
// have been written since this query last finished a full pass.
func Changed[T any](ct ComponentType[T]) FilterNode {
	return &changedNode{typ: ct.id}
}

func (f *changedNode) matchArchetype(a *archetype) bool { return a.hasComponent(f.typ) }
func (f *changedNode) matchChunk(a *archetype, c *chunk) bool {
	col := c.componentColumn(f.typ)
	if col == nil {
		return false
	}
	return col.version > f.lastSeen
}
func (f *changedNode) collectChanged(out *[]*changedNode) { *out = append(*out, f) }

type andFilter struct{ children []FilterNode }

// And requires every child filter to match.
func And(children ...FilterNode) FilterNode {
	return andFilter{children: children}
}

func (f andFilter) matchArchetype(a *archetype) bool {
	for _, c := range f.children {
		if !c.matchArchetype(a) {
			return false
		}
	}
	return true
}
func (f andFilter) matchChunk(a *archetype, c *chunk) bool {
	for _, child := range f.children {
		if !child.matchChunk(a, c) {
			return false
		}
	}
	return true
}
func (f andFilter) collectChanged(out *[]*changedNode) {
	for _, c := range f.children {
		c.collectChanged(out)
	}
}

type orFilter struct{ children []FilterNode }

// Or requires at least one child filter to match.
func Or(children ...FilterNode) FilterNode {
	return orFilter{children: children}
}

func (f orFilter) matchArchetype(a *archetype) bool {
	for _, c := range f.children {
		if c.matchArchetype(a) {
			return true
		}
	}
	return len(f.children) == 0
}
func (f orFilter) matchChunk(a *archetype, c *chunk) bool {
	for _, child := range f.children {
		if child.matchArchetype(a) && child.matchChunk(a, c) {
			return true
		}
	}
	return false
}
func (f orFilter) collectChanged(out *[]*changedNode) {
	for _, c := range f.children {
		c.collectChanged(out)
	}
}

type notFilter struct{ child FilterNode }

// Not negates child. A changed<T> filter may not appear anywhere inside
// child — its meaning under negation ("hasn't changed since I last
// looked") is undefined, so Not panics rather than silently picking a
// semantics.
func Not(child FilterNode) FilterNode {
	var changed []*changedNode
	child.collectChanged(&changed)
	if len(changed) > 0 {
		panic(bark.AddTrace(ChangedInNotError{}))
	}
	return notFilter{child: child}
}

// matchArchetype conservatively over-approves: the exact negation is only
// resolved at matchChunk, where archetype-level membership is folded in.
func (f notFilter) matchArchetype(a *archetype) bool { return true }
func (f notFilter) matchChunk(a *archetype, c *chunk) bool {
	return !(f.child.matchArchetype(a) && f.child.matchChunk(a, c))
}
func (f notFilter) collectChanged(out *[]*changedNode) {}
