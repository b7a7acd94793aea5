package cargo

import (
	"strings"

	"github.com/TheBitDrifter/bark"
)

// chunkSet groups every chunk that shares one concrete assignment of tag
// values within an archetype: all chunks sharing the same tag values
// form a chunk set. Archetypes with no tags have exactly one chunk set.
type chunkSet struct {
	arch      *archetype
	tagValues map[TypeID]any // concrete value for each of arch.tagTypes
	key       string          // tagSignature(tagValues), cached for map lookups

	chunks []*chunk
}

// tagSignature produces a stable string key for a tag-value assignment.
// Keying on fmt.Sprintf-style textual rendering (via each tag descriptor's
// keyOf) is a pragmatic simplification: two distinct values that happen to
// render identically would collide. This is acceptable for the value
// types tags are expected to carry (small comparable structs, enums,
// ids) but is not adversarially safe; see DESIGN.md.
func tagSignature(tagTypes []TypeID, values map[TypeID]any) string {
	var b strings.Builder
	for _, typ := range tagTypes {
		desc, ok := lookupTag(typ)
		if !ok {
			panic(bark.AddTrace(unknownTagType(typ)))
		}
		b.WriteString(desc.keyOf(values[typ]))
		b.WriteByte('\x00')
	}
	return b.String()
}

func newChunkSet(arch *archetype, tagValues map[TypeID]any) *chunkSet {
	return &chunkSet{
		arch:      arch,
		tagValues: tagValues,
		key:       tagSignature(arch.tagTypes, tagValues),
	}
}

// lastChunk returns a chunk with room for at least one more row, creating
// a new one if every existing chunk is full.
func (cs *chunkSet) lastChunk() *chunk {
	if n := len(cs.chunks); n > 0 {
		if last := cs.chunks[n-1]; !last.full() {
			return last
		}
	}
	c := newChunk(cs, cs.arch.chunkCapacity, cs.arch.componentTypes)
	cs.chunks = append(cs.chunks, c)
	return c
}

// tagValue returns the concrete value stored for tag typ in this chunk
// set, matching every entity in it — tags are per-chunk-set, not
// per-entity.
func (cs *chunkSet) tagValue(typ TypeID) (any, bool) {
	v, ok := cs.tagValues[typ]
	return v, ok
}

func unknownTagType(typ TypeID) error {
	return TagNotPresentError{Type: typ}
}
