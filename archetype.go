package cargo

import (
	"math/bits"
	"sort"

	"github.com/TheBitDrifter/mask"
)

// ArchetypeDescription is the public, serialization/diagnostics-facing view
// of an archetype's schema: the component and tag types an entity must
// have to live in it. Used by StructuralHooks; WorldSerializer receives
// the filtered SerializedArchetypeDescription instead.
type ArchetypeDescription struct {
	ComponentTypes []TypeID
	TagTypes       []TypeID
}

// archetype is the internal home for every entity sharing an exact
// (component-type-set, tag-type-set) schema. Its local bit
// signature is a mask.Mask built from the owning World's compact
// type->bit mapping, not from the process-wide TypeID space directly —
// this keeps the mask narrow even when the process has registered many
// unrelated types across unrelated Worlds.
type archetype struct {
	world *World
	id    uint32

	componentTypes []TypeID // ordered by descending Go alignment, then TypeID, for compact chunk layout
	tagTypes       []TypeID

	signature mask.Mask // components ∪ tags, in the world's local bit space

	chunkCapacity int

	chunkSets    []*chunkSet
	chunkSetByKey map[string]*chunkSet
}

// newArchetype computes chunk capacity from the target byte budget in
// Config, lays out columns by descending alignment (reduces padding, the
// same reasoning a hand-packed struct would follow), and builds the
// archetype's mask signature from the owning world's local bit indices.
func newArchetype(w *World, id uint32, componentTypes, tagTypes []TypeID) *archetype {
	components := append([]TypeID(nil), componentTypes...)
	sort.Slice(components, func(i, j int) bool {
		di, _ := lookupComponent(components[i])
		dj, _ := lookupComponent(components[j])
		if di.align != dj.align {
			return di.align > dj.align
		}
		return components[i] < components[j]
	})

	a := &archetype{
		world:          w,
		id:             id,
		componentTypes: components,
		tagTypes:       append([]TypeID(nil), tagTypes...),
		chunkCapacity:  computeChunkCapacity(components),
		chunkSetByKey:  make(map[string]*chunkSet),
	}

	sig := mask.Mask{}
	for _, t := range components {
		sig.Mark(w.bitFor(t))
	}
	for _, t := range tagTypes {
		sig.Mark(w.bitFor(t))
	}
	a.signature = sig

	return a
}

// computeChunkCapacity derives a chunk's row count from Config's
// per-chunk byte budget. Component-free (tag-only/marker)
// archetypes have no column bytes to budget against, so they fall back to
// Config.ComponentFreeChunkCapacity instead.
func computeChunkCapacity(components []TypeID) int {
	if len(components) == 0 {
		return Config.ComponentFreeChunkCapacity
	}
	var rowBytes uintptr
	for _, t := range components {
		desc, _ := lookupComponent(t)
		rowBytes += desc.size
	}
	if rowBytes == 0 {
		return Config.ComponentFreeChunkCapacity
	}
	capacity := int(Config.TargetChunkBytes / rowBytes)
	if capacity < 1 {
		return 1
	}
	// Round down to the largest power of two so capacity*rowBytes stays
	// within the byte budget with a layout that halves/doubles cleanly.
	return 1 << (bits.Len(uint(capacity)) - 1)
}

func (a *archetype) description() ArchetypeDescription {
	return ArchetypeDescription{
		ComponentTypes: append([]TypeID(nil), a.componentTypes...),
		TagTypes:       append([]TypeID(nil), a.tagTypes...),
	}
}

func (a *archetype) hasComponent(typ TypeID) bool {
	for _, t := range a.componentTypes {
		if t == typ {
			return true
		}
	}
	return false
}

func (a *archetype) hasTag(typ TypeID) bool {
	for _, t := range a.tagTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// chunkSetFor returns the chunk set matching tagValues, creating one if
// this is the first entity inserted under that tag-value assignment.
func (a *archetype) chunkSetFor(tagValues map[TypeID]any) *chunkSet {
	key := tagSignature(a.tagTypes, tagValues)
	if cs, ok := a.chunkSetByKey[key]; ok {
		return cs
	}
	cs := newChunkSet(a, tagValues)
	a.chunkSetByKey[key] = cs
	a.chunkSets = append(a.chunkSets, cs)
	return cs
}
