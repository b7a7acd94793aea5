package cargo

// queryCore holds the machinery shared by Query1..Query4: archetype-list
// caching, pass locking, and the Changed-filter version bookkeeping. Each
// NewQueryN constructor embeds one.
type queryCore struct {
	w      *World
	descs  []viewDescriptor
	filter FilterNode // nil: match every archetype satisfying the views' own requirements

	cacheValid  bool
	cacheGen    uint64
	cachedArch  []*archetype
	manualCache bool // when true, skip the archGen check until Invalidate() is called

	depth          int
	pendingAdvance map[*changedNode]uint64
}

func newQueryCore(w *World, filter FilterNode, descs []viewDescriptor) (*queryCore, error) {
	if err := validateAliasing(descs); err != nil {
		return nil, err
	}
	return &queryCore{w: w, filter: filter, descs: descs, pendingAdvance: make(map[*changedNode]uint64)}, nil
}

// Filter replaces the query's filter tree, invalidating the archetype
// cache.
func (q *queryCore) setFilter(f FilterNode) {
	q.filter = f
	q.cacheValid = false
}

func (q *queryCore) effectiveFilter() FilterNode {
	var required []FilterNode
	for _, d := range q.descs {
		switch d.kind {
		case viewRead, viewWrite:
			required = append(required, componentFilter{typ: d.typ})
		case viewTagged:
			required = append(required, tagFilter{typ: d.typ})
		}
	}
	if q.filter != nil {
		required = append(required, q.filter)
	}
	if len(required) == 0 {
		return alwaysMatch{}
	}
	if len(required) == 1 {
		return required[0]
	}
	return andFilter{children: required}
}

type alwaysMatch struct{}

func (alwaysMatch) matchArchetype(a *archetype) bool       { return true }
func (alwaysMatch) matchChunk(a *archetype, c *chunk) bool { return true }
func (alwaysMatch) collectChanged(out *[]*changedNode)     {}

// matchedArchetypes returns the archetypes that might contain matching
// chunks, cached until the world's archetype generation changes (a new
// archetype having been created elsewhere invalidates every query's
// cache, since the cache only ever grows monotonically).
func (q *queryCore) matchedArchetypes() []*archetype {
	if q.cacheValid && (q.manualCache || q.cacheGen == q.w.archGen) {
		return q.cachedArch
	}
	f := q.effectiveFilter()
	var out []*archetype
	for _, a := range q.w.archList {
		if f.matchArchetype(a) {
			out = append(out, a)
		}
	}
	q.cachedArch = out
	q.cacheGen = q.w.archGen
	q.cacheValid = true
	return out
}

type matchedChunk struct {
	arch  *archetype
	chunk *chunk
}

// preparePass locks the world, snapshots the world tick, and computes the
// full matched-chunk list using each chunk's pre-pass column versions —
// before this pass's own body has a chance to write anything. Returns the
// lock bit (to release via finishPass) and the matched chunks.
func (q *queryCore) preparePass() (uint32, uint64, []matchedChunk) {
	q.depth++
	bit := q.w.Lock()
	tickAtStart := q.w.tick
	f := q.effectiveFilter()

	var out []matchedChunk
	for _, a := range q.matchedArchetypes() {
		for _, cs := range a.chunkSets {
			for _, c := range cs.chunks {
				if c.count == 0 {
					continue
				}
				if f.matchChunk(a, c) {
					out = append(out, matchedChunk{arch: a, chunk: c})
				}
			}
		}
	}
	return bit, tickAtStart, out
}

// finishPass stamps every written column touched by this pass's matched
// chunks (once, at a single new tick), computes this pass's lastSeen
// advance target for every changed<T> node in the filter tree, applies it
// immediately if this is the outermost call for this query (depth back to
// zero) or defers it otherwise so a nested pass over the same query
// doesn't see its own in-progress writes reflected early, and releases
// the lock.
func (q *queryCore) finishPass(bit uint32, tickAtStart uint64, matched []matchedChunk) error {
	wroteAny := false
	for _, d := range q.descs {
		if d.writes() {
			wroteAny = true
			break
		}
	}

	advanceTo := tickAtStart
	if wroteAny && len(matched) > 0 {
		stampTick := q.w.advanceTick()
		for _, m := range matched {
			for _, d := range q.descs {
				if !d.writes() {
					continue
				}
				col := m.chunk.componentColumn(d.typ)
				if col == nil { // TryWrite not present on this archetype
					continue
				}
				m.chunk.stamp(col, stampTick)
			}
		}
		advanceTo = stampTick
	}

	var changedNodes []*changedNode
	q.effectiveFilter().collectChanged(&changedNodes)
	for _, n := range changedNodes {
		q.pendingAdvance[n] = advanceTo
	}

	q.depth--
	if q.depth == 0 {
		for n, tick := range q.pendingAdvance {
			n.lastSeen = tick
		}
		q.pendingAdvance = make(map[*changedNode]uint64)
	}

	return q.w.Unlock(bit)
}
