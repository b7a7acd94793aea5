package cargo

import "fmt"

// EntityNotFoundError is returned when an operation addresses an entity
// minted by the target world that is no longer live there (it was
// destroyed). An entity from a different world panics with
// CrossWorldEntityError instead.
type EntityNotFoundError struct {
	Entity Entity
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("cargo: entity %v not found", e.Entity)
}

// WorldLockedError is returned by direct (non-enqueued) mutating World
// operations while a query holds the world locked for iteration.
type WorldLockedError struct{}

func (e WorldLockedError) Error() string {
	return "cargo: world is locked for iteration"
}

// ComponentNotPresentError is returned by ComponentType[T].Get/GetMut when
// the target type is not part of the entity's archetype. Removing an
// absent component is a no-op and does not return it.
type ComponentNotPresentError struct {
	Type TypeID
}

func (e ComponentNotPresentError) Error() string {
	return fmt.Sprintf("cargo: component type %d not present on entity", e.Type)
}

// TagNotPresentError mirrors ComponentNotPresentError for tags.
type TagNotPresentError struct {
	Type TypeID
}

func (e TagNotPresentError) Error() string {
	return fmt.Sprintf("cargo: tag type %d not present on entity", e.Type)
}

// CrossWorldEntityError is a programmer error: an Entity handle minted by
// one World was passed to another. This is fatal rather than returned,
// since it indicates a bug rather than a recoverable runtime condition.
type CrossWorldEntityError struct {
	Entity Entity
}

func (e CrossWorldEntityError) Error() string {
	return fmt.Sprintf("cargo: entity %v does not belong to this world", e.Entity)
}

// AliasViolationError is a programmer error: a query declared both a
// Read/TryRead and a Write/TryWrite view over the same component type.
type AliasViolationError struct {
	Type TypeID
}

func (e AliasViolationError) Error() string {
	return fmt.Sprintf("cargo: query aliases component type %d as both read and write", e.Type)
}

// DuplicateRegistrationError is a programmer error: one Go type was
// registered both as a component and as a tag. Each Go type maps to
// exactly one id, so the second registration under the other kind panics
// with this error.
type DuplicateRegistrationError struct {
	Type TypeID
}

func (e DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("cargo: type id %d already registered under a different kind (component vs tag)", e.Type)
}

// ChangedInNotError is a programmer error: a filter tree passed to Not
// contains a Changed filter, whose meaning under negation is undefined.
type ChangedInNotError struct{}

func (e ChangedInNotError) Error() string {
	return "cargo: changed() filters may not appear inside not()"
}
