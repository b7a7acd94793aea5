package cargo_test

import (
	"testing"

	"github.com/bitforge-games/cargo"
)

type registryTestComponent struct{ N int }
type registryTestTag int

func TestRegisterComponent_IsIdempotentPerGoType(t *testing.T) {
	first := cargo.RegisterComponent[registryTestComponent]()
	second := cargo.RegisterComponent[registryTestComponent]()

	if first.ID() != second.ID() {
		t.Fatalf("expected repeated registration to return the same id, got %d and %d", first.ID(), second.ID())
	}
}

func TestRegisterTag_IsIdempotentPerGoType(t *testing.T) {
	first := cargo.RegisterTag[registryTestTag]()
	second := cargo.RegisterTag[registryTestTag]()

	if first.ID() != second.ID() {
		t.Fatalf("expected repeated registration to return the same id, got %d and %d", first.ID(), second.ID())
	}
}

func TestRegisterComponent_ComponentAndTagIDsAreDisjoint(t *testing.T) {
	if positionType.ID() == staticType.ID() {
		t.Fatalf("a component and a tag registered from distinct Go types should never share a TypeID")
	}
}
