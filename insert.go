package cargo

// InsertRows1 creates len(rows) new entities carrying component a, using
// tagValues (nil for an untagged archetype) to select the chunk set.
// Go methods cannot introduce new type parameters, so the Insert family is
// a set of package-level generic functions rather than World methods.
func InsertRows1[A any](w *World, tagValues map[TypeID]any, a ComponentType[A], rows []A) ([]Entity, error) {
	n := len(rows)
	colA := make([]any, n)
	for i, r := range rows {
		colA[i] = r
	}
	return w.insertRows([]TypeID{a.id}, tagTypesOf(tagValues), tagValues, n, [][]any{colA})
}

// EnqueueInsertRows1 defers InsertRows1 until the world is fully unlocked.
func EnqueueInsertRows1[A any](w *World, tagValues map[TypeID]any, a ComponentType[A], rows []A) error {
	n := len(rows)
	colA := make([]any, n)
	for i, r := range rows {
		colA[i] = r
	}
	return w.enqueueInsertRows([]TypeID{a.id}, tagTypesOf(tagValues), tagValues, n, [][]any{colA})
}

// InsertRows2 creates len(rows) new entities carrying components a and b.
func InsertRows2[A, B any](w *World, tagValues map[TypeID]any, a ComponentType[A], b ComponentType[B], rows []Tuple2[A, B]) ([]Entity, error) {
	n := len(rows)
	colA := make([]any, n)
	colB := make([]any, n)
	for i, r := range rows {
		colA[i], colB[i] = r.A, r.B
	}
	return w.insertRows([]TypeID{a.id, b.id}, tagTypesOf(tagValues), tagValues, n, [][]any{colA, colB})
}

// EnqueueInsertRows2 defers InsertRows2 until the world is fully unlocked.
func EnqueueInsertRows2[A, B any](w *World, tagValues map[TypeID]any, a ComponentType[A], b ComponentType[B], rows []Tuple2[A, B]) error {
	n := len(rows)
	colA := make([]any, n)
	colB := make([]any, n)
	for i, r := range rows {
		colA[i], colB[i] = r.A, r.B
	}
	return w.enqueueInsertRows([]TypeID{a.id, b.id}, tagTypesOf(tagValues), tagValues, n, [][]any{colA, colB})
}

// InsertRows3 creates len(rows) new entities carrying components a, b, c.
func InsertRows3[A, B, C any](w *World, tagValues map[TypeID]any, a ComponentType[A], b ComponentType[B], c ComponentType[C], rows []Tuple3[A, B, C]) ([]Entity, error) {
	n := len(rows)
	colA := make([]any, n)
	colB := make([]any, n)
	colC := make([]any, n)
	for i, r := range rows {
		colA[i], colB[i], colC[i] = r.A, r.B, r.C
	}
	return w.insertRows([]TypeID{a.id, b.id, c.id}, tagTypesOf(tagValues), tagValues, n, [][]any{colA, colB, colC})
}

// EnqueueInsertRows3 defers InsertRows3 until the world is fully unlocked.
func EnqueueInsertRows3[A, B, C any](w *World, tagValues map[TypeID]any, a ComponentType[A], b ComponentType[B], c ComponentType[C], rows []Tuple3[A, B, C]) error {
	n := len(rows)
	colA := make([]any, n)
	colB := make([]any, n)
	colC := make([]any, n)
	for i, r := range rows {
		colA[i], colB[i], colC[i] = r.A, r.B, r.C
	}
	return w.enqueueInsertRows([]TypeID{a.id, b.id, c.id}, tagTypesOf(tagValues), tagValues, n, [][]any{colA, colB, colC})
}

// InsertRows4 creates len(rows) new entities carrying components a, b, c, d.
func InsertRows4[A, B, C, D any](w *World, tagValues map[TypeID]any, a ComponentType[A], b ComponentType[B], c ComponentType[C], d ComponentType[D], rows []Tuple4[A, B, C, D]) ([]Entity, error) {
	n := len(rows)
	colA := make([]any, n)
	colB := make([]any, n)
	colC := make([]any, n)
	colD := make([]any, n)
	for i, r := range rows {
		colA[i], colB[i], colC[i], colD[i] = r.A, r.B, r.C, r.D
	}
	return w.insertRows([]TypeID{a.id, b.id, c.id, d.id}, tagTypesOf(tagValues), tagValues, n, [][]any{colA, colB, colC, colD})
}

// EnqueueInsertRows4 defers InsertRows4 until the world is fully unlocked.
func EnqueueInsertRows4[A, B, C, D any](w *World, tagValues map[TypeID]any, a ComponentType[A], b ComponentType[B], c ComponentType[C], d ComponentType[D], rows []Tuple4[A, B, C, D]) error {
	n := len(rows)
	colA := make([]any, n)
	colB := make([]any, n)
	colC := make([]any, n)
	colD := make([]any, n)
	for i, r := range rows {
		colA[i], colB[i], colC[i], colD[i] = r.A, r.B, r.C, r.D
	}
	return w.enqueueInsertRows([]TypeID{a.id, b.id, c.id, d.id}, tagTypesOf(tagValues), tagValues, n, [][]any{colA, colB, colC, colD})
}

// InsertTagOnly creates n entities carrying no components, only the given
// tag values — component-free marker archetypes.
func InsertTagOnly(w *World, tagValues map[TypeID]any, n int) ([]Entity, error) {
	return w.insertRows(nil, tagTypesOf(tagValues), tagValues, n, nil)
}

func tagTypesOf(tagValues map[TypeID]any) []TypeID {
	if len(tagValues) == 0 {
		return nil
	}
	out := make([]TypeID, 0, len(tagValues))
	for t := range tagValues {
		out = append(out, t)
	}
	return out
}
