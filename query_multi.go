package cargo

import (
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/TheBitDrifter/bark"
)

// --- Arity 2 ---

// ChunkView2 exposes one matched chunk's rows for a two-view query.
type ChunkView2[A, B any] struct {
	chunk *chunk
	va    View[A]
	vb    View[B]
}

func (v ChunkView2[A, B]) Len() int           { return v.chunk.count }
func (v ChunkView2[A, B]) Entities() []Entity { return v.chunk.entities[:v.chunk.count] }
func (v ChunkView2[A, B]) At(i int) Tuple2[A, B] {
	return Tuple2[A, B]{A: v.va.resolve(v.chunk, i), B: v.vb.resolve(v.chunk, i)}
}

// Query2 is a two-view query over a World.
type Query2[A, B any] struct {
	core   *queryCore
	va     View[A]
	vb     View[B]
}

// NewQuery2 builds a query over two views, validating that no component
// type is named as both a read and a write across them.
func NewQuery2[A, B any](w *World, va View[A], vb View[B]) *Query2[A, B] {
	core, err := newQueryCore(w, nil, []viewDescriptor{va.descriptor(), vb.descriptor()})
	if err != nil {
		panic(bark.AddTrace(err))
	}
	return &Query2[A, B]{core: core, va: va, vb: vb}
}

func (q *Query2[A, B]) Filter(f FilterNode) *Query2[A, B] {
	q.core.setFilter(f)
	return q
}

func (q *Query2[A, B]) Cached(enabled bool) *Query2[A, B] {
	q.core.manualCache = enabled
	return q
}

func (q *Query2[A, B]) Invalidate() { q.core.cacheValid = false }

func (q *Query2[A, B]) resolve(c *chunk, i int) Tuple2[A, B] {
	return Tuple2[A, B]{A: q.va.resolve(c, i), B: q.vb.resolve(c, i)}
}

func (q *Query2[A, B]) Iter() iter.Seq[Tuple2[A, B]] {
	return func(yield func(Tuple2[A, B]) bool) {
		bit, start, matched := q.core.preparePass()
		defer func() { _ = q.core.finishPass(bit, start, matched) }()
		for _, m := range matched {
			for i := 0; i < m.chunk.count; i++ {
				if !yield(q.resolve(m.chunk, i)) {
					return
				}
			}
		}
	}
}

func (q *Query2[A, B]) IterEntities() iter.Seq2[Entity, Tuple2[A, B]] {
	return func(yield func(Entity, Tuple2[A, B]) bool) {
		bit, start, matched := q.core.preparePass()
		defer func() { _ = q.core.finishPass(bit, start, matched) }()
		for _, m := range matched {
			for i := 0; i < m.chunk.count; i++ {
				if !yield(m.chunk.entities[i], q.resolve(m.chunk, i)) {
					return
				}
			}
		}
	}
}

func (q *Query2[A, B]) IterChunks() iter.Seq[ChunkView2[A, B]] {
	return func(yield func(ChunkView2[A, B]) bool) {
		bit, start, matched := q.core.preparePass()
		defer func() { _ = q.core.finishPass(bit, start, matched) }()
		for _, m := range matched {
			if !yield(ChunkView2[A, B]{chunk: m.chunk, va: q.va, vb: q.vb}) {
				return
			}
		}
	}
}

func (q *Query2[A, B]) ParForEach(fn func(Tuple2[A, B])) error {
	bit, start, matched := q.core.preparePass()
	var g errgroup.Group
	for _, m := range matched {
		m := m
		g.Go(func() error {
			for i := 0; i < m.chunk.count; i++ {
				fn(q.resolve(m.chunk, i))
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

func (q *Query2[A, B]) ParForEachChunk(fn func(ChunkView2[A, B])) error {
	bit, start, matched := q.core.preparePass()
	var g errgroup.Group
	for _, m := range matched {
		m := m
		g.Go(func() error {
			fn(ChunkView2[A, B]{chunk: m.chunk, va: q.va, vb: q.vb})
			return nil
		})
	}
	err := g.Wait()
	if ferr := q.core.finishPass(bit, start, matched); err == nil {
		err = ferr
	}
	return err
}

// --- Arity 3 ---

// ChunkView3 exposes one matched chunk's rows for a three-view query.
type ChunkView3[A, B, C any] struct {
	chunk *chunk
	va    View[A]
	vb    View[B]
	vc    View[C]
}

func (v ChunkView3[A, B, C]) Len() int           { return v.chunk.count }
func (v ChunkView3[A, B, C]) Entities() []Entity { return v.chunk.entities[:v.chunk.count] }
func (v ChunkView3[A, B, C]) At(i int) Tuple3[A, B, C] {
	return Tuple3[A, B, C]{A: v.va.resolve(v.chunk, i), B: v.vb.resolve(v.chunk, i), C: v.vc.resolve(v.chunk, i)}
}

// Query3 is a three-view query over a World.
type Query3[A, B, C any] struct {
	core   *queryCore
	va     View[A]
	vb     View[B]
	vc     View[C]
}

// NewQuery3 builds a query over three views, validating aliasing.
func NewQuery3[A, B, C any](w *World, va View[A], vb View[B], vc View[C]) *Query3[A, B, C] {
	core, err := newQueryCore(w, nil, []viewDescriptor{va.descriptor(), vb.descriptor(), vc.descriptor()})
	if err != nil {
		panic(bark.AddTrace(err))
	}
	return &Query3[A, B, C]{core: core, va: va, vb: vb, vc: vc}
}

func (q *Query3[A, B, C]) Filter(f FilterNode) *Query3[A, B, C] {
	q.core.setFilter(f)
	return q
}

func (q *Query3[A, B, C]) Cached(enabled bool) *Query3[A, B, C] {
	q.core.manualCache = enabled
	return q
}

func (q *Query3[A, B, C]) Invalidate() { q.core.cacheValid = false }

func (q *Query3[A, B, C]) resolve(c *chunk, i int) Tuple3[A, B, C] {
	return Tuple3[A, B, C]{A: q.va.resolve(c, i), B: q.vb.resolve(c, i), C: q.vc.resolve(c, i)}
}

func (q *Query3[A, B, C]) Iter() iter.Seq[Tuple3[A, B, C]] {
	return func(yield func(Tuple3[A, B, C]) bool) {
		bit, start, matched := q.core.preparePass()
		defer func() { _ = q.core.finishPass(bit, start, matched) }()
		for _, m := range matched {
			for i := 0; i < m.chunk.count; i++ {
				if !yield(q.resolve(m.chunk, i)) {
					return
				}
			}
		}
	}
}

func (q *Query3[A, B, C]) IterEntities() iter.Seq2[Entity, Tuple3[A, B, C]] {
	return func(yield func(Entity, Tuple3[A, B, C]) bool) {
		bit, start, matched := q.core.preparePass()
		defer func() { _ = q.core.finishPass(bit, start, matched) }()
		for _, m := range matched {
			for i := 0; i < m.chunk.count; i++ {
				if !yield(m.chunk.entities[i], q.resolve(m.chunk, i)) {
					return
				}
			}
		}
	}
}

func (q *Query3[A, B, C]) IterChunks() iter.Seq[ChunkView3[A, B, C]] {
	return func(yield func(ChunkView3[A, B, C]) bool) {
		bit, start, matched := q.core.preparePass()
		defer func() { _ = q.core.finishPass(bit, start, matched) }()
		for _, m := range matched {
			if !yield(ChunkView3[A, B, C]{chunk: m.chunk, va: q.va, vb: q.vb, vc: q.vc}) {
				return
			}
		}
	}
}

func (q *Query3[A, B, C]) ParForEach(fn func(Tuple3[A, B, C])) error {
	bit, start, matched := q.core.preparePass()
	var g errgroup.Group
	for _, m := range matched {
		m := m
		g.Go(func() error {
			for i := 0; i < m.chunk.count; i++ {
				fn(q.resolve(m.chunk, i))
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

func (q *Query3[A, B, C]) ParForEachChunk(fn func(ChunkView3[A, B, C])) error {
	bit, start, matched := q.core.preparePass()
	var g errgroup.Group
	for _, m := range matched {
		m := m
		g.Go(func() error {
			fn(ChunkView3[A, B, C]{chunk: m.chunk, va: q.va, vb: q.vb, vc: q.vc})
			return nil
		})
	}
	err := g.Wait()
	if ferr := q.core.finishPass(bit, start, matched); err == nil {
		err = ferr
	}
	return err
}

// --- Arity 4 ---

// ChunkView4 exposes one matched chunk's rows for a four-view query.
type ChunkView4[A, B, C, D any] struct {
	chunk *chunk
	va    View[A]
	vb    View[B]
	vc    View[C]
	vd    View[D]
}

func (v ChunkView4[A, B, C, D]) Len() int           { return v.chunk.count }
func (v ChunkView4[A, B, C, D]) Entities() []Entity { return v.chunk.entities[:v.chunk.count] }
func (v ChunkView4[A, B, C, D]) At(i int) Tuple4[A, B, C, D] {
	return Tuple4[A, B, C, D]{
		A: v.va.resolve(v.chunk, i),
		B: v.vb.resolve(v.chunk, i),
		C: v.vc.resolve(v.chunk, i),
		D: v.vd.resolve(v.chunk, i),
	}
}

// Query4 is a four-view query over a World.
type Query4[A, B, C, D any] struct {
	core *queryCore
	va   View[A]
	vb   View[B]
	vc   View[C]
	vd   View[D]
}

// NewQuery4 builds a query over four views, validating aliasing.
func NewQuery4[A, B, C, D any](w *World, va View[A], vb View[B], vc View[C], vd View[D]) *Query4[A, B, C, D] {
	core, err := newQueryCore(w, nil, []viewDescriptor{va.descriptor(), vb.descriptor(), vc.descriptor(), vd.descriptor()})
	if err != nil {
		panic(bark.AddTrace(err))
	}
	return &Query4[A, B, C, D]{core: core, va: va, vb: vb, vc: vc, vd: vd}
}

func (q *Query4[A, B, C, D]) Filter(f FilterNode) *Query4[A, B, C, D] {
	q.core.setFilter(f)
	return q
}

func (q *Query4[A, B, C, D]) Cached(enabled bool) *Query4[A, B, C, D] {
	q.core.manualCache = enabled
	return q
}

func (q *Query4[A, B, C, D]) Invalidate() { q.core.cacheValid = false }

func (q *Query4[A, B, C, D]) resolve(c *chunk, i int) Tuple4[A, B, C, D] {
	return Tuple4[A, B, C, D]{
		A: q.va.resolve(c, i),
		B: q.vb.resolve(c, i),
		C: q.vc.resolve(c, i),
		D: q.vd.resolve(c, i),
	}
}

func (q *Query4[A, B, C, D]) Iter() iter.Seq[Tuple4[A, B, C, D]] {
	return func(yield func(Tuple4[A, B, C, D]) bool) {
		bit, start, matched := q.core.preparePass()
		defer func() { _ = q.core.finishPass(bit, start, matched) }()
		for _, m := range matched {
			for i := 0; i < m.chunk.count; i++ {
				if !yield(q.resolve(m.chunk, i)) {
					return
				}
			}
		}
	}
}

func (q *Query4[A, B, C, D]) IterEntities() iter.Seq2[Entity, Tuple4[A, B, C, D]] {
	return func(yield func(Entity, Tuple4[A, B, C, D]) bool) {
		bit, start, matched := q.core.preparePass()
		defer func() { _ = q.core.finishPass(bit, start, matched) }()
		for _, m := range matched {
			for i := 0; i < m.chunk.count; i++ {
				if !yield(m.chunk.entities[i], q.resolve(m.chunk, i)) {
					return
				}
			}
		}
	}
}

func (q *Query4[A, B, C, D]) IterChunks() iter.Seq[ChunkView4[A, B, C, D]] {
	return func(yield func(ChunkView4[A, B, C, D]) bool) {
		bit, start, matched := q.core.preparePass()
		defer func() { _ = q.core.finishPass(bit, start, matched) }()
		for _, m := range matched {
			if !yield(ChunkView4[A, B, C, D]{chunk: m.chunk, va: q.va, vb: q.vb, vc: q.vc, vd: q.vd}) {
				return
			}
		}
	}
}

func (q *Query4[A, B, C, D]) ParForEach(fn func(Tuple4[A, B, C, D])) error {
	bit, start, matched := q.core.preparePass()
	var g errgroup.Group
	for _, m := range matched {
		m := m
		g.Go(func() error {
			for i := 0; i < m.chunk.count; i++ {
				fn(q.resolve(m.chunk, i))
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

func (q *Query4[A, B, C, D]) ParForEachChunk(fn func(ChunkView4[A, B, C, D])) error {
	bit, start, matched := q.core.preparePass()
	var g errgroup.Group
	for _, m := range matched {
		m := m
		g.Go(func() error {
			fn(ChunkView4[A, B, C, D]{chunk: m.chunk, va: q.va, vb: q.vb, vc: q.vc, vd: q.vd})
			return nil
		})
	}
	err := g.Wait()
	if ferr := q.core.finishPass(bit, start, matched); err == nil {
		err = ferr
	}
	return err
}
