package cargo

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/TheBitDrifter/bark"
	"github.com/google/uuid"
)

// TypeID is a process-local identifier for a registered component or tag
// type. It is stable for the lifetime of the process but is not meant to
// be persisted; serialization uses the registration's UUID instead.
type TypeID uint32

// typeNamespace seeds the deterministic UUID fallback used when a
// registration doesn't supply one explicitly.
var typeNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

type componentDescriptor struct {
	id     TypeID
	uuid   uuid.UUID
	goType reflect.Type
	size   uintptr
	align  uintptr
	drop   func(any)

	// serializeColumn forwards a chunk's typed column to a WorldSerializer,
	// hiding the element type behind a closure captured at registration
	// time.
	serializeColumn func(col *column, length int, meta ComponentMeta, ser WorldSerializer) error

	// deserializeColumn reads length values for this type from a
	// WorldDeserializer and returns them ready to push into chunk rows.
	deserializeColumn func(de WorldDeserializer, meta ComponentMeta, length int) ([]any, error)
}

type tagDescriptor struct {
	id     TypeID
	uuid   uuid.UUID
	goType reflect.Type

	keyOf func(v any) string
	equal func(a, b any) bool

	serializeValue func(v any, meta TagMeta, ser WorldSerializer) error
	deserializeValue func(de WorldDeserializer, meta TagMeta) (any, error)
}

// registry is the process-wide type registry. Registration is keyed by Go
// type: calling RegisterComponent[T] (or RegisterTag[T]) more than once for
// the same T is idempotent and returns a handle to the same descriptor —
// one identity per Go type, not per call site.
type registry struct {
	mu              sync.Mutex
	nextID          TypeID
	byGoType        map[reflect.Type]TypeID
	components      map[TypeID]*componentDescriptor
	tags            map[TypeID]*tagDescriptor
	componentByUUID map[uuid.UUID]TypeID
	tagByUUID       map[uuid.UUID]TypeID
}

var globalRegistry = &registry{
	byGoType:        make(map[reflect.Type]TypeID),
	components:      make(map[TypeID]*componentDescriptor),
	tags:            make(map[TypeID]*tagDescriptor),
	componentByUUID: make(map[uuid.UUID]TypeID),
	tagByUUID:       make(map[uuid.UUID]TypeID),
}

// RegisterOption configures an individual RegisterComponent/RegisterTag
// call. Options only take effect on the call that first registers a given
// Go type; later idempotent calls for the same type ignore them.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	uuid uuid.UUID
	drop func(any)
}

// WithUUID pins a type's serialization identifier instead of deriving one
// deterministically from its Go type name.
func WithUUID(id uuid.UUID) RegisterOption {
	return func(c *registerConfig) { c.uuid = id }
}

// WithDrop records a cleanup hook on the component's registration. The
// hook is stored with the type's descriptor only: no World operation
// (overwrite, migration, removal, destroy) calls it.
func WithDrop(fn func(any)) RegisterOption {
	return func(c *registerConfig) { c.drop = fn }
}

func applyOptions(opts []RegisterOption) registerConfig {
	var cfg registerConfig
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

func resolveUUID(t reflect.Type, cfg registerConfig) uuid.UUID {
	if cfg.uuid != uuid.Nil {
		return cfg.uuid
	}
	return uuid.NewSHA1(typeNamespace, []byte(t.PkgPath()+"."+t.Name()))
}

func goTypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// ComponentType is the typed handle returned by RegisterComponent. It is
// the unit of identity passed to Insert, views, and filters.
type ComponentType[T any] struct {
	id TypeID
}

// ID returns the component's process-local type id.
func (c ComponentType[T]) ID() TypeID { return c.id }

// TagType is the typed handle returned by RegisterTag. T is constrained to
// comparable so the registry's equality+hash requirement for tag values is
// enforced by the Go compiler rather than a runtime check.
type TagType[T comparable] struct {
	id TypeID
}

// ID returns the tag's process-local type id.
func (t TagType[T]) ID() TypeID { return t.id }

// RegisterComponent registers T as a component type, returning a typed
// handle for use with Insert, views, and filters. Safe to call more than
// once for the same T from multiple goroutines; every call after the
// first returns a handle to the same descriptor.
func RegisterComponent[T any](opts ...RegisterOption) ComponentType[T] {
	gt := goTypeOf[T]()

	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()

	if id, ok := globalRegistry.byGoType[gt]; ok {
		if _, isComponent := globalRegistry.components[id]; !isComponent {
			panic(bark.AddTrace(DuplicateRegistrationError{Type: id}))
		}
		return ComponentType[T]{id: id}
	}

	cfg := applyOptions(opts)
	id := globalRegistry.nextID
	globalRegistry.nextID++

	desc := &componentDescriptor{
		id:     id,
		uuid:   resolveUUID(gt, cfg),
		goType: gt,
		size:   gt.Size(),
		align:  uintptr(gt.Align()),
		drop:   cfg.drop,
		serializeColumn: func(col *column, length int, meta ComponentMeta, ser WorldSerializer) error {
			return ser.SerializeComponents(id, meta, columnSlice[T](col)[:length])
		},
		deserializeColumn: func(de WorldDeserializer, meta ComponentMeta, length int) ([]any, error) {
			values, err := de.DeserializeComponents(id, meta, length)
			if err != nil {
				return nil, err
			}
			typed, ok := values.([]T)
			if !ok {
				return nil, fmt.Errorf("cargo: deserializer returned %T for component %s, want []%s", values, gt, gt)
			}
			out := make([]any, len(typed))
			for i, v := range typed {
				out[i] = v
			}
			return out, nil
		},
	}
	globalRegistry.components[id] = desc
	globalRegistry.byGoType[gt] = id
	globalRegistry.componentByUUID[desc.uuid] = id
	return ComponentType[T]{id: id}
}

// RegisterTag registers T as a tag type, returning a typed handle for use
// with Insert, views, and filters.
func RegisterTag[T comparable](opts ...RegisterOption) TagType[T] {
	gt := goTypeOf[T]()

	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()

	if id, ok := globalRegistry.byGoType[gt]; ok {
		if _, isTag := globalRegistry.tags[id]; !isTag {
			panic(bark.AddTrace(DuplicateRegistrationError{Type: id}))
		}
		return TagType[T]{id: id}
	}

	cfg := applyOptions(opts)
	id := globalRegistry.nextID
	globalRegistry.nextID++

	desc := &tagDescriptor{
		id:     id,
		uuid:   resolveUUID(gt, cfg),
		goType: gt,
		keyOf: func(v any) string {
			return fmt.Sprintf("%v", v.(T))
		},
		equal: func(a, b any) bool {
			return a.(T) == b.(T)
		},
		serializeValue: func(v any, meta TagMeta, ser WorldSerializer) error {
			return ser.SerializeTags(id, meta, v.(T))
		},
		deserializeValue: func(de WorldDeserializer, meta TagMeta) (any, error) {
			return de.DeserializeTags(id, meta)
		},
	}
	globalRegistry.tags[id] = desc
	globalRegistry.byGoType[gt] = id
	globalRegistry.tagByUUID[desc.uuid] = id
	return TagType[T]{id: id}
}

func lookupComponent(id TypeID) (*componentDescriptor, bool) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	d, ok := globalRegistry.components[id]
	return d, ok
}

func lookupTag(id TypeID) (*tagDescriptor, bool) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	d, ok := globalRegistry.tags[id]
	return d, ok
}

func lookupComponentByUUID(id uuid.UUID) (TypeID, bool) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	t, ok := globalRegistry.componentByUUID[id]
	return t, ok
}

func lookupTagByUUID(id uuid.UUID) (TypeID, bool) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	t, ok := globalRegistry.tagByUUID[id]
	return t, ok
}
