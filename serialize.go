package cargo

import (
	"fmt"

	"github.com/google/uuid"
)

// ComponentMeta identifies a component type to a WorldSerializer/
// WorldDeserializer without exposing cargo's internal process-local
// TypeID as the persisted identity — UUID is what actually round-trips.
type ComponentMeta struct {
	Type TypeID
	UUID uuid.UUID
}

// TagMeta is ComponentMeta's counterpart for tag types.
type TagMeta struct {
	Type TypeID
	UUID uuid.UUID
}

// SerializedArchetypeDescription is the filtered (visible-only) archetype
// description a WorldSerializer receives: the UUIDs of the component and
// tag types that survived the visitor's can_serialize checks, in the
// order the core intends to stream their columns.
type SerializedArchetypeDescription struct {
	ComponentUUIDs []uuid.UUID
	TagUUIDs       []uuid.UUID
}

// WorldSerializer is the visitor contract for walking a World out to some
// external representation. The core decides *what* to
// visit and in what order (archetype, chunk-set, chunk); the visitor
// decides *whether* a given type is worth persisting and *how* values are
// encoded.
type WorldSerializer interface {
	CanSerializeComponent(typ TypeID, meta ComponentMeta) bool
	CanSerializeTag(typ TypeID, meta TagMeta) bool

	SerializeArchetypeDescription(desc SerializedArchetypeDescription) error

	// SerializeEntities is called once per chunk with that chunk's live
	// entities, returning one external id per entity in the same order.
	SerializeEntities(entities []Entity) ([]uuid.UUID, error)

	// SerializeComponents is called once per serializable component type
	// per chunk, with values holding exactly length elements of that
	// component's Go type (as []T erased to any).
	SerializeComponents(typ TypeID, meta ComponentMeta, values any) error

	// SerializeTags is called once per serializable tag type per chunk
	// set, with value holding that chunk set's single tag value (as T
	// erased to any) — tags are per-chunk-set, not per-row.
	SerializeTags(typ TypeID, meta TagMeta, value any) error
}

// WorldDeserializer is the dual pull-based contract: the core asks it to
// advance through archetypes, then chunk sets, then chunks, reading
// whatever encoding SerializeWorld produced.
type WorldDeserializer interface {
	NextArchetype() (desc SerializedArchetypeDescription, ok bool, err error)
	NextChunkSet() (ok bool, err error)
	NextChunk() (length int, ok bool, err error)

	DeserializeEntities(length int) ([]uuid.UUID, error)
	DeserializeComponents(typ TypeID, meta ComponentMeta, length int) (any, error)
	DeserializeTags(typ TypeID, meta TagMeta) (any, error)
}

// SerializeWorld walks w's archetypes in (archetype, chunk-set, chunk)
// order, consulting ser to decide which component/tag types are visible.
// An archetype whose visible component and tag intersections are both
// empty is omitted entirely; within an emitted archetype, individual
// unserializable columns are simply skipped.
func SerializeWorld(w *World, ser WorldSerializer) error {
	for _, a := range w.archList {
		var compMeta []ComponentMeta
		var compUUIDs []uuid.UUID
		for _, t := range a.componentTypes {
			desc, ok := lookupComponent(t)
			if !ok {
				continue
			}
			meta := ComponentMeta{Type: t, UUID: desc.uuid}
			if ser.CanSerializeComponent(t, meta) {
				compMeta = append(compMeta, meta)
				compUUIDs = append(compUUIDs, desc.uuid)
			}
		}
		var tagMeta []TagMeta
		var tagUUIDs []uuid.UUID
		for _, t := range a.tagTypes {
			desc, ok := lookupTag(t)
			if !ok {
				continue
			}
			meta := TagMeta{Type: t, UUID: desc.uuid}
			if ser.CanSerializeTag(t, meta) {
				tagMeta = append(tagMeta, meta)
				tagUUIDs = append(tagUUIDs, desc.uuid)
			}
		}
		if len(compMeta) == 0 && len(tagMeta) == 0 {
			continue
		}
		if err := ser.SerializeArchetypeDescription(SerializedArchetypeDescription{
			ComponentUUIDs: compUUIDs,
			TagUUIDs:       tagUUIDs,
		}); err != nil {
			return err
		}

		for _, cs := range a.chunkSets {
			for _, tm := range tagMeta {
				desc, _ := lookupTag(tm.Type)
				v, _ := cs.tagValue(tm.Type)
				if err := desc.serializeValue(v, tm, ser); err != nil {
					return err
				}
			}
			for _, c := range cs.chunks {
				if c.count == 0 {
					continue
				}
				if _, err := ser.SerializeEntities(c.entities[:c.count]); err != nil {
					return err
				}
				for _, cm := range compMeta {
					desc, _ := lookupComponent(cm.Type)
					col := c.componentColumn(cm.Type)
					if err := desc.serializeColumn(col, c.count, cm, ser); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// DeserializeWorld pulls archetypes/chunk-sets/chunks from de and inserts
// their rows into w, returning the external-id -> Entity mapping assigned
// along the way (needed by a caller that wants to resolve cross-entity
// references recorded under the old external ids).
func DeserializeWorld(w *World, de WorldDeserializer) (map[uuid.UUID]Entity, error) {
	result := make(map[uuid.UUID]Entity)
	for {
		desc, ok, err := de.NextArchetype()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		componentTypes, err := resolveComponentUUIDs(desc.ComponentUUIDs)
		if err != nil {
			return nil, err
		}
		tagTypes, err := resolveTagUUIDs(desc.TagUUIDs)
		if err != nil {
			return nil, err
		}

		for {
			ok, err := de.NextChunkSet()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			tagValues := make(map[TypeID]any, len(tagTypes))
			for _, t := range tagTypes {
				tdesc, _ := lookupTag(t)
				meta := TagMeta{Type: t, UUID: tdesc.uuid}
				v, err := tdesc.deserializeValue(de, meta)
				if err != nil {
					return nil, err
				}
				tagValues[t] = v
			}

			for {
				length, ok, err := de.NextChunk()
				if err != nil {
					return nil, err
				}
				if !ok {
					break
				}
				extIDs, err := de.DeserializeEntities(length)
				if err != nil {
					return nil, err
				}
				columnValues := make([][]any, len(componentTypes))
				for i, t := range componentTypes {
					cdesc, _ := lookupComponent(t)
					meta := ComponentMeta{Type: t, UUID: cdesc.uuid}
					vals, err := cdesc.deserializeColumn(de, meta, length)
					if err != nil {
						return nil, err
					}
					columnValues[i] = vals
				}
				entities, err := w.insertRows(componentTypes, tagTypes, tagValues, length, columnValues)
				if err != nil {
					return nil, err
				}
				for i, e := range entities {
					result[extIDs[i]] = e
				}
			}
		}
	}
	return result, nil
}

func resolveComponentUUIDs(ids []uuid.UUID) ([]TypeID, error) {
	out := make([]TypeID, len(ids))
	for i, id := range ids {
		t, ok := lookupComponentByUUID(id)
		if !ok {
			return nil, fmt.Errorf("cargo: no component registered for uuid %s", id)
		}
		out[i] = t
	}
	return out, nil
}

func resolveTagUUIDs(ids []uuid.UUID) ([]TypeID, error) {
	out := make([]TypeID, len(ids))
	for i, id := range ids {
		t, ok := lookupTagByUUID(id)
		if !ok {
			return nil, fmt.Errorf("cargo: no tag registered for uuid %s", id)
		}
		out[i] = t
	}
	return out, nil
}
