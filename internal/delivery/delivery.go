package delivery

import (
	"context"
	"errors"
)

var (
	// ErrOptionNotFound is returned when an unknown option id is selected.
	ErrOptionNotFound = errors.New("delivery option not found")

	// ErrNoOptions is returned when a provider has no options configured.
	ErrNoOptions = errors.New("no delivery options configured")
)

// Provider supplies the delivery options offered at the delivery step.
// Implementations can be flat-rate tables or real carrier integrations.
type Provider interface {
	// Options returns every available option, cheapest first.
	Options(ctx context.Context) ([]Option, error)

	// ByID returns the option with the given id.
	ByID(ctx context.Context, id string) (*Option, error)

	// Default returns the option preselected for a new checkout,
	// the cheapest available one.
	Default(ctx context.Context) (*Option, error)
}

// Option is a single delivery choice with a price and an ETA description.
type Option struct {
	ID         string
	Name       string
	PriceCents int64
	ETA        string
}
