package cargo_test

import "github.com/bitforge-games/cargo"

// Shared fixture types for the test suite. Kept in one file since nearly
// every _test.go in this package exercises the same handful of
// components/tags.

type Position struct {
	X, Y, Z float64
}

type Rotation struct {
	X, Y, Z float64
}

type Velocity struct {
	X, Y, Z float64
}

type Health struct {
	Current, Max int
}

type Static struct{}

type Model int

var (
	positionType cargo.ComponentType[Position]
	rotationType cargo.ComponentType[Rotation]
	velocityType cargo.ComponentType[Velocity]
	healthType   cargo.ComponentType[Health]
	staticType   cargo.TagType[Static]
	modelType    cargo.TagType[Model]
)

func init() {
	positionType = cargo.RegisterComponent[Position]()
	rotationType = cargo.RegisterComponent[Rotation]()
	velocityType = cargo.RegisterComponent[Velocity]()
	healthType = cargo.RegisterComponent[Health]()
	staticType = cargo.RegisterTag[Static]()
	modelType = cargo.RegisterTag[Model]()
}

func newWorld() *cargo.World {
	return cargo.NewUniverse().CreateWorld()
}
