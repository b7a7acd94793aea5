package cargo_test

import (
	"sync"
	"testing"

	"github.com/bitforge-games/cargo"
)

// TestChanged_ReadOnlyQueryDrainsAfterFirstPass confirms a read-only
// Changed query iterated twice in succession without intervening writes
// yields n rows then 0 rows.
func TestChanged_ReadOnlyQueryDrainsAfterFirstPass(t *testing.T) {
	w := newWorld()
	_, err := cargo.InsertRows1(w, nil, positionType, []Position{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}})
	if err != nil {
		t.Fatalf("InsertRows1: %v", err)
	}

	q := cargo.NewQuery1[Position](w, cargo.Read[Position]{Type: positionType}).
		Filter(cargo.Changed[Position](positionType))

	first := 0
	for range q.Iter() {
		first++
	}
	if first != 3 {
		t.Fatalf("first pass: expected 3 rows, got %d", first)
	}

	second := 0
	for range q.Iter() {
		second++
	}
	if second != 0 {
		t.Fatalf("second pass: expected 0 rows, got %d", second)
	}
}

// TestChanged_WriteQuerySelfWritesDoNotReTrigger iterates a Write query
// filtered on Changed once (writing every row), then re-iterates with no
// external mutation — the second pass yields 0 rows since self-writes
// during a pass do not re-trigger in that same sequence of passes.
func TestChanged_WriteQuerySelfWritesDoNotReTrigger(t *testing.T) {
	w := newWorld()
	_, err := cargo.InsertRows1(w, nil, positionType, []Position{{1, 1, 1}, {2, 2, 2}})
	if err != nil {
		t.Fatalf("InsertRows1: %v", err)
	}

	q := cargo.NewQuery1[*Position](w, cargo.Write[Position]{Type: positionType}).
		Filter(cargo.Changed[Position](positionType))

	first := 0
	for pos := range q.Iter() {
		pos.X = 100
		first++
	}
	if first != 2 {
		t.Fatalf("first pass: expected 2 rows written, got %d", first)
	}

	second := 0
	for range q.Iter() {
		second++
	}
	if second != 0 {
		t.Fatalf("second pass: expected 0 rows (self-writes don't re-trigger), got %d", second)
	}
}

// TestQuery2_WriteViewMutatesThroughSubsequentGet runs a (Read<Pos>,
// Write<Rot>) query over two entities that updates Rot fields, then
// confirms a subsequent ComponentType Get reflects the writes.
func TestQuery2_WriteViewMutatesThroughSubsequentGet(t *testing.T) {
	w := newWorld()
	entities, err := cargo.InsertRows2(w, nil, positionType, rotationType, []cargo.Tuple2[Position, Rotation]{
		{A: Position{1, 1, 1}, B: Rotation{9, 9, 9}},
		{A: Position{2, 2, 2}, B: Rotation{9, 9, 9}},
	})
	if err != nil {
		t.Fatalf("InsertRows2: %v", err)
	}

	q := cargo.NewQuery2[Position, *Rotation](w,
		cargo.Read[Position]{Type: positionType},
		cargo.Write[Rotation]{Type: rotationType},
	)
	for row := range q.Iter() {
		row.B.X = 0
	}

	for _, e := range entities {
		rot, err := rotationType.Get(w, e)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if rot.X != 0 {
			t.Errorf("entity %v: expected Rot.X == 0 after write, got %+v", e, rot)
		}
	}
}

// TestChanged_TracksAtChunkGranularity confirms change versions are
// tracked per column per chunk, not per row: writing any single row
// through a Write view marks every row sharing that chunk as changed for
// subsequent Changed passes, while chunks never touched advance nothing.
func TestChanged_TracksAtChunkGranularity(t *testing.T) {
	w := newWorld()
	entities, err := cargo.InsertRows1(w, nil, positionType, []Position{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}})
	if err != nil {
		t.Fatalf("InsertRows1: %v", err)
	}

	watcher := cargo.NewQuery1[Position](w, cargo.Read[Position]{Type: positionType}).
		Filter(cargo.Changed[Position](positionType))
	for range watcher.Iter() {
	}

	mutator := cargo.NewQuery1[*Position](w, cargo.Write[Position]{Type: positionType})
	target := entities[1]
	found := false
	for e, pos := range mutator.IterEntities() {
		if e == target {
			pos.X = 42
			found = true
		}
	}
	if !found {
		t.Fatalf("target entity not visited by mutator query")
	}

	seen := make(map[cargo.Entity]Position)
	for e, pos := range watcher.IterEntities() {
		seen[e] = pos
	}
	if len(seen) != len(entities) {
		t.Fatalf("expected all %d co-chunk rows to report changed, got %d", len(entities), len(seen))
	}
	if pos, ok := seen[target]; !ok || pos.X != 42 {
		t.Errorf("expected mutated entity to be among changed rows with X==42, got %+v (present=%v)", pos, ok)
	}

	second := 0
	for range watcher.Iter() {
		second++
	}
	if second != 0 {
		t.Fatalf("expected no further changes without an intervening write, got %d", second)
	}
}

// TestParForEach_MatchesSequentialIter confirms ParForEach visits the
// same set of values as sequential Iter, independent of ordering.
func TestParForEach_MatchesSequentialIter(t *testing.T) {
	w := newWorld()
	rows := make([]Position, 50)
	for i := range rows {
		rows[i] = Position{float64(i), 0, 0}
	}
	if _, err := cargo.InsertRows1(w, nil, positionType, rows); err != nil {
		t.Fatalf("InsertRows1: %v", err)
	}

	seqQ := cargo.NewQuery1[Position](w, cargo.Read[Position]{Type: positionType})
	var seq []float64
	for pos := range seqQ.Iter() {
		seq = append(seq, pos.X)
	}

	parQ := cargo.NewQuery1[Position](w, cargo.Read[Position]{Type: positionType})
	var mu sync.Mutex
	var par []float64
	err := parQ.ParForEach(func(pos Position) {
		mu.Lock()
		par = append(par, pos.X)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("ParForEach: %v", err)
	}

	if len(seq) != len(par) {
		t.Fatalf("sequential visited %d, parallel visited %d", len(seq), len(par))
	}
	seqSet := make(map[float64]int)
	for _, v := range seq {
		seqSet[v]++
	}
	for _, v := range par {
		seqSet[v]--
	}
	for v, n := range seqSet {
		if n != 0 {
			t.Errorf("value %v: sequential/parallel visit count mismatch (delta %d)", v, n)
		}
	}
}

func TestQuery_CachedSurvivesNewArchetypesUntilInvalidated(t *testing.T) {
	w := newWorld()
	if _, err := cargo.InsertRows1(w, nil, positionType, []Position{{1, 1, 1}}); err != nil {
		t.Fatalf("InsertRows1: %v", err)
	}

	q := cargo.NewQuery1[Position](w, cargo.Read[Position]{Type: positionType}).Cached(true)
	count := func() int {
		n := 0
		for range q.Iter() {
			n++
		}
		return n
	}
	if n := count(); n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	if _, err := cargo.InsertRows2(w, nil, positionType, velocityType, []cargo.Tuple2[Position, Velocity]{
		{A: Position{2, 2, 2}, B: Velocity{0, 0, 0}},
	}); err != nil {
		t.Fatalf("InsertRows2: %v", err)
	}

	if n := count(); n != 1 {
		t.Fatalf("expected cache to suppress the new archetype, got %d rows", n)
	}

	q.Invalidate()
	if n := count(); n != 2 {
		t.Fatalf("after Invalidate expected 2 rows, got %d", n)
	}
}
