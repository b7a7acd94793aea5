package cargo

import (
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/TheBitDrifter/bark"
)

// ChunkView1 exposes one matched chunk's rows for a single-view query,
// the terminal shape of IterChunks()/ParForEachChunk().
type ChunkView1[A any] struct {
	chunk *chunk
	view  View[A]
}

func (v ChunkView1[A]) Len() int           { return v.chunk.count }
func (v ChunkView1[A]) Entities() []Entity { return v.chunk.entities[:v.chunk.count] }
func (v ChunkView1[A]) At(i int) A         { return v.view.resolve(v.chunk, i) }

// Query1 is a single-view query over a World.
type Query1[A any] struct {
	core *queryCore
	view View[A]
}

// NewQuery1 builds a query over one view. Panics (a programmer error, not
// a runtime condition) if the view declares conflicting read/write access
// to the same component — impossible for a single view, kept for symmetry
// with NewQuery2..4.
func NewQuery1[A any](w *World, view View[A]) *Query1[A] {
	core, err := newQueryCore(w, nil, []viewDescriptor{view.descriptor()})
	if err != nil {
		panic(bark.AddTrace(err))
	}
	return &Query1[A]{core: core, view: view}
}

// Filter narrows the query with an additional predicate.
func (q *Query1[A]) Filter(f FilterNode) *Query1[A] {
	q.core.setFilter(f)
	return q
}

// Cached opts the query into reusing its matched-archetype list across
// passes even after new archetypes are created elsewhere, until
// Invalidate is called. Useful when the caller knows no archetype
// relevant to this query will appear mid-loop.
func (q *Query1[A]) Cached(enabled bool) *Query1[A] {
	q.core.manualCache = enabled
	return q
}

// Invalidate clears a Cached(true) query's archetype-list cache.
func (q *Query1[A]) Invalidate() {
	q.core.cacheValid = false
}

// Iter yields the resolved view value for every matching row.
func (q *Query1[A]) Iter() iter.Seq[A] {
	return func(yield func(A) bool) {
		bit, start, matched := q.core.preparePass()
		defer func() { _ = q.core.finishPass(bit, start, matched) }()
		for _, m := range matched {
			for i := 0; i < m.chunk.count; i++ {
				if !yield(q.view.resolve(m.chunk, i)) {
					return
				}
			}
		}
	}
}

// IterEntities yields each matching row's Entity alongside its resolved
// view value.
func (q *Query1[A]) IterEntities() iter.Seq2[Entity, A] {
	return func(yield func(Entity, A) bool) {
		bit, start, matched := q.core.preparePass()
		defer func() { _ = q.core.finishPass(bit, start, matched) }()
		for _, m := range matched {
			for i := 0; i < m.chunk.count; i++ {
				if !yield(m.chunk.entities[i], q.view.resolve(m.chunk, i)) {
					return
				}
			}
		}
	}
}

// IterChunks yields one ChunkView1 per matching chunk.
func (q *Query1[A]) IterChunks() iter.Seq[ChunkView1[A]] {
	return func(yield func(ChunkView1[A]) bool) {
		bit, start, matched := q.core.preparePass()
		defer func() { _ = q.core.finishPass(bit, start, matched) }()
		for _, m := range matched {
			if !yield(ChunkView1[A]{chunk: m.chunk, view: q.view}) {
				return
			}
		}
	}
}

// ParForEach fans matched chunks out across a work-stealing pool, calling
// fn once per row. Safe because chunks are disjoint memory by
// construction.
func (q *Query1[A]) ParForEach(fn func(A)) error {
	bit, start, matched := q.core.preparePass()
	var g errgroup.Group
	for _, m := range matched {
		m := m
		g.Go(func() error {
			for i := 0; i < m.chunk.count; i++ {
				fn(q.view.resolve(m.chunk, i))
			}
			return nil
		})
	}
	err := g.Wait()
	if ferr := q.core.finishPass(bit, start, matched); err == nil {
		err = ferr
	}
	return err
}

// ParForEachChunk fans matched chunks out across a work-stealing pool,
// calling fn once per chunk.
func (q *Query1[A]) ParForEachChunk(fn func(ChunkView1[A])) error {
	bit, start, matched := q.core.preparePass()
	var g errgroup.Group
	for _, m := range matched {
		m := m
		g.Go(func() error {
			fn(ChunkView1[A]{chunk: m.chunk, view: q.view})
			return nil
		})
	}
	err := g.Wait()
	if ferr := q.core.finishPass(bit, start, matched); err == nil {
		err = ferr
	}
	return err
}
