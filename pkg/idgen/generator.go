// Package idgen hands out monotonically increasing decimal ids per logical
// name, reserving them from a shared range authority one segment at a time.
package idgen

import "context"

//go:generate mockgen -destination=mocks/generator_mock.go -package=mocks -source=generator.go

// IdGenerator is the public facade over the allocators.
type IdGenerator interface {
	// GenerateID returns an id unique within this application for name.
	GenerateID(ctx context.Context, name string) (string, error)

	// GenerateGlobalID returns an id unique across every application that
	// shares the range authority for name.
	GenerateGlobalID(ctx context.Context, name string) (string, error)
}
