package cargo_test

import (
	"testing"

	"github.com/bitforge-games/cargo"
)

// TestInsertRows_SharedTagsGroupIntoOneChunkSet inserts two rows under the
// same tag values and reads them back by entity.
func TestInsertRows_SharedTagsGroupIntoOneChunkSet(t *testing.T) {
	w := newWorld()

	tagValues := map[cargo.TypeID]any{
		staticType.ID(): Static{},
		modelType.ID():  Model(5),
	}
	rows := []cargo.Tuple2[Position, Rotation]{
		{A: Position{1, 2, 3}, B: Rotation{0.1, 0.2, 0.3}},
		{A: Position{4, 5, 6}, B: Rotation{0.4, 0.5, 0.6}},
	}

	entities, err := cargo.InsertRows2(w, tagValues, positionType, rotationType, rows)
	if err != nil {
		t.Fatalf("InsertRows2: %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(entities))
	}

	q := cargo.NewQuery1[Position](w, cargo.Read[Position]{Type: positionType})

	got := make(map[cargo.Entity]Position)
	for e, pos := range q.IterEntities() {
		got[e] = pos
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 (entity, Position) pairs, got %d", len(got))
	}
	for i, e := range entities {
		pos, ok := got[e]
		if !ok {
			t.Fatalf("entity %v missing from query results", e)
		}
		if pos != rows[i].A {
			t.Errorf("entity %v: got %+v, want %+v", e, pos, rows[i].A)
		}
	}
}

// TestInsertRows_TryReadYieldsNilForEntityMissingComponent inserts one
// entity without Rotation and one with, confirming TryRead yields both
// rows with the missing value surfaced as a nil pointer.
func TestInsertRows_TryReadYieldsNilForEntityMissingComponent(t *testing.T) {
	w := newWorld()

	onlyPos, err := cargo.InsertRows1(w, nil, positionType, []Position{{1, 2, 3}})
	if err != nil {
		t.Fatalf("InsertRows1: %v", err)
	}
	posAndRot, err := cargo.InsertRows2(w, nil, positionType, rotationType, []cargo.Tuple2[Position, Rotation]{
		{A: Position{4, 5, 6}, B: Rotation{0.4, 0.5, 0.6}},
	})
	if err != nil {
		t.Fatalf("InsertRows2: %v", err)
	}

	q := cargo.NewQuery2[Position, *Rotation](w,
		cargo.Read[Position]{Type: positionType},
		cargo.TryRead[Rotation]{Type: rotationType},
	)

	results := make(map[cargo.Entity]*Rotation)
	count := 0
	for e, row := range q.IterEntities() {
		count++
		results[e] = row.B
	}
	if count != 2 {
		t.Fatalf("expected 2 results, got %d", count)
	}

	absent := 0
	for _, e := range onlyPos {
		if results[e] != nil {
			t.Errorf("expected entity %v to have no Rotation", e)
		} else {
			absent++
		}
	}
	if absent != 1 {
		t.Fatalf("expected exactly 1 absent result, got %d", absent)
	}
	for _, e := range posAndRot {
		rot := results[e]
		if rot == nil {
			t.Fatalf("expected entity %v to have a Rotation", e)
		}
		if *rot != (Rotation{0.4, 0.5, 0.6}) {
			t.Errorf("got %+v, want {0.4 0.5 0.6}", *rot)
		}
	}
}

func TestDestroy_RemovesEntityAndCascades(t *testing.T) {
	w := newWorld()
	entities, err := cargo.InsertRows1(w, nil, positionType, []Position{{1, 1, 1}, {2, 2, 2}})
	if err != nil {
		t.Fatalf("InsertRows1: %v", err)
	}
	parent, child := entities[0], entities[1]

	if err := w.SetParent(child, parent); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	if err := w.Destroy(parent); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	if w.Contains(parent) {
		t.Errorf("parent should no longer be live")
	}
	if w.Contains(child) {
		t.Errorf("child should have been destroyed by cascade")
	}
	if _, err := positionType.Get(w, parent); err == nil {
		t.Errorf("expected Get on destroyed entity to return an error")
	}
}

func TestAddComponent_OverwritesWhenPresent(t *testing.T) {
	w := newWorld()
	entities, _ := cargo.InsertRows1(w, nil, positionType, []Position{{1, 1, 1}})
	e := entities[0]

	if err := velocityType.Add(w, e, Velocity{1, 0, 0}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := velocityType.Add(w, e, Velocity{2, 0, 0}); err != nil {
		t.Fatalf("Add (overwrite): %v", err)
	}
	vel, err := velocityType.Get(w, e)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if vel != (Velocity{2, 0, 0}) {
		t.Errorf("got %+v, want overwritten value {2 0 0}", vel)
	}
}

func TestRemoveComponent_NoopWhenAbsent(t *testing.T) {
	w := newWorld()
	entities, _ := cargo.InsertRows1(w, nil, positionType, []Position{{1, 1, 1}})
	e := entities[0]

	if err := velocityType.Remove(w, e); err != nil {
		t.Fatalf("Remove of absent component should be a no-op, got error: %v", err)
	}
}
