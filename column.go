package cargo

import "reflect"

// column is one component's storage within a chunk: a reflect-backed slice
// plus the change-version stamp used by the Changed query filter. Using
// reflect.MakeSlice instead of unsafe.Pointer
// keeps the store type-safe while still sharing a single backing array, so
// pointers returned by ComponentType[T].GetMut alias real storage rather
// than a copy.
type column struct {
	typ     TypeID
	values  reflect.Value // slice of the component's Go type, len == cap == chunk capacity
	version uint64         // world tick of the most recent write through this column; never decreases
}

func newColumn(typ TypeID, goType reflect.Type, capacity int) *column {
	return &column{
		typ:    typ,
		values: reflect.MakeSlice(reflect.SliceOf(goType), capacity, capacity),
	}
}

// columnSlice returns col's backing storage as a []T. Panics (via a failed
// type assertion) if T doesn't match the column's registered Go type;
// callers are expected to only ever reach a column through a ComponentType[T]
// whose id was validated against the same archetype schema, so this should
// never actually fail in practice.
func columnSlice[T any](col *column) []T {
	return col.values.Interface().([]T)
}

// setColumnValue writes v into row idx of col and stamps the column's
// version. Used by the untyped paths (migration, deserialization) that
// don't have a static T to route through columnSlice.
func setColumnValue(col *column, idx int, v any, tick uint64) {
	col.values.Index(idx).Set(reflect.ValueOf(v))
	col.version = tick
}

// copyColumnValue moves row src of srcCol into row dst of dstCol without
// touching dstCol's version — used when migrating an entity to a new
// archetype so untouched columns keep their prior change-version.
func copyColumnValue(dstCol *column, dst int, srcCol *column, src int) {
	dstCol.values.Index(dst).Set(srcCol.values.Index(src))
}

// swapRemoveColumnValue moves the value at row `last` into row `idx` within
// the same column, used when a chunk's swap-remove needs to relocate the
// final row into the gap left by a removed entity.
func swapRemoveColumnValue(col *column, idx, last int) {
	if idx == last {
		return
	}
	col.values.Index(idx).Set(col.values.Index(last))
}
