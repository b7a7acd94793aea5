package cargo_test

import (
	"testing"

	"github.com/bitforge-games/cargo"
)

func TestFilter_TagValueSelectsChunkSet(t *testing.T) {
	w := newWorld()

	low, err := cargo.InsertRows1(w, map[cargo.TypeID]any{modelType.ID(): Model(1)}, positionType, []Position{{1, 1, 1}})
	if err != nil {
		t.Fatalf("InsertRows1 (model 1): %v", err)
	}
	high, err := cargo.InsertRows1(w, map[cargo.TypeID]any{modelType.ID(): Model(5)}, positionType, []Position{{2, 2, 2}})
	if err != nil {
		t.Fatalf("InsertRows1 (model 5): %v", err)
	}

	q := cargo.NewQuery1[Position](w, cargo.Read[Position]{Type: positionType}).
		Filter(cargo.TagValue(modelType, Model(5)))

	var got []cargo.Entity
	for e := range q.IterEntities() {
		got = append(got, e)
	}
	if len(got) != 1 || got[0] != high[0] {
		t.Fatalf("expected only the model-5 entity %v, got %v (low=%v)", high[0], got, low[0])
	}
}

func TestFilter_AndRequiresAllChildren(t *testing.T) {
	w := newWorld()
	tagValues := map[cargo.TypeID]any{staticType.ID(): Static{}}

	withVel, err := cargo.InsertRows2(w, tagValues, positionType, velocityType, []cargo.Tuple2[Position, Velocity]{
		{A: Position{1, 1, 1}, B: Velocity{1, 0, 0}},
	})
	if err != nil {
		t.Fatalf("InsertRows2: %v", err)
	}
	_, err = cargo.InsertRows1(w, tagValues, positionType, []Position{{2, 2, 2}})
	if err != nil {
		t.Fatalf("InsertRows1: %v", err)
	}

	q := cargo.NewQuery1[Position](w, cargo.Read[Position]{Type: positionType}).
		Filter(cargo.And(cargo.Component[Velocity](velocityType), cargo.TagPresent[Static](staticType)))

	var got []cargo.Entity
	for e := range q.IterEntities() {
		got = append(got, e)
	}
	if len(got) != 1 || got[0] != withVel[0] {
		t.Fatalf("expected only the Velocity-carrying entity %v, got %v", withVel[0], got)
	}
}

func TestFilter_OrMatchesEitherChild(t *testing.T) {
	w := newWorld()

	withVel, err := cargo.InsertRows2(w, nil, positionType, velocityType, []cargo.Tuple2[Position, Velocity]{
		{A: Position{1, 1, 1}, B: Velocity{1, 0, 0}},
	})
	if err != nil {
		t.Fatalf("InsertRows2: %v", err)
	}
	withHealth, err := cargo.InsertRows2(w, nil, positionType, healthType, []cargo.Tuple2[Position, Health]{
		{A: Position{2, 2, 2}, B: Health{10, 10}},
	})
	if err != nil {
		t.Fatalf("InsertRows2: %v", err)
	}
	_, err = cargo.InsertRows1(w, nil, positionType, []Position{{3, 3, 3}})
	if err != nil {
		t.Fatalf("InsertRows1: %v", err)
	}

	q := cargo.NewQuery1[Position](w, cargo.Read[Position]{Type: positionType}).
		Filter(cargo.Or(cargo.Component[Velocity](velocityType), cargo.Component[Health](healthType)))

	want := map[cargo.Entity]bool{withVel[0]: true, withHealth[0]: true}
	got := make(map[cargo.Entity]bool)
	for e := range q.IterEntities() {
		got[e] = true
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d (%v)", len(want), len(got), got)
	}
	for e := range want {
		if !got[e] {
			t.Errorf("expected entity %v to match the or() filter", e)
		}
	}
}

func TestFilter_NotExcludesMatchingChild(t *testing.T) {
	w := newWorld()

	plain, err := cargo.InsertRows1(w, nil, positionType, []Position{{1, 1, 1}})
	if err != nil {
		t.Fatalf("InsertRows1: %v", err)
	}
	_, err = cargo.InsertRows2(w, nil, positionType, velocityType, []cargo.Tuple2[Position, Velocity]{
		{A: Position{2, 2, 2}, B: Velocity{1, 0, 0}},
	})
	if err != nil {
		t.Fatalf("InsertRows2: %v", err)
	}

	q := cargo.NewQuery1[Position](w, cargo.Read[Position]{Type: positionType}).
		Filter(cargo.Not(cargo.Component[Velocity](velocityType)))

	var got []cargo.Entity
	for e := range q.IterEntities() {
		got = append(got, e)
	}
	if len(got) != 1 || got[0] != plain[0] {
		t.Fatalf("expected only the Velocity-free entity %v, got %v", plain[0], got)
	}
}

func TestFilter_NotRejectsChangedInside(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Not(Changed(...)) to panic")
		}
		if _, ok := r.(error); !ok {
			t.Fatalf("expected panic value to be an error, got %T: %v", r, r)
		}
	}()
	cargo.Not(cargo.Changed[Position](positionType))
}
