package delivery

import (
	"context"
	"sort"
)

// FlatRateProvider returns a fixed set of delivery options.
// Used when real carrier integration is not needed.
type FlatRateProvider struct {
	options []Option
}

// NewFlatRateProvider creates a provider over a static option table.
// Options are kept sorted by price, then name, so Default is stable.
func NewFlatRateProvider(options []Option) *FlatRateProvider {
	sorted := make([]Option, len(options))
	copy(sorted, options)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PriceCents != sorted[j].PriceCents {
			return sorted[i].PriceCents < sorted[j].PriceCents
		}
		return sorted[i].Name < sorted[j].Name
	})
	return &FlatRateProvider{options: sorted}
}

// NewStorefrontProvider returns the storefront's standard option table:
// standard and store pickup are free, express and overnight are paid.
func NewStorefrontProvider() *FlatRateProvider {
	return NewFlatRateProvider([]Option{
		{ID: "standard", Name: "Standard Delivery", PriceCents: 0, ETA: "5-7 business days"},
		{ID: "express", Name: "Express Delivery", PriceCents: 1299, ETA: "2-3 business days"},
		{ID: "overnight", Name: "Overnight Delivery", PriceCents: 2499, ETA: "1 business day"},
		{ID: "pickup", Name: "Store Pickup", PriceCents: 0, ETA: "Ready in 2-4 hours"},
	})
}

// Options returns all configured options, cheapest first.
func (p *FlatRateProvider) Options(ctx context.Context) ([]Option, error) {
	if len(p.options) == 0 {
		return nil, ErrNoOptions
	}
	result := make([]Option, len(p.options))
	copy(result, p.options)
	return result, nil
}

// ByID returns the option with the given id.
func (p *FlatRateProvider) ByID(ctx context.Context, id string) (*Option, error) {
	for _, opt := range p.options {
		if opt.ID == id {
			o := opt
			return &o, nil
		}
	}
	return nil, ErrOptionNotFound
}

// Default returns the cheapest option.
func (p *FlatRateProvider) Default(ctx context.Context) (*Option, error) {
	if len(p.options) == 0 {
		return nil, ErrNoOptions
	}
	o := p.options[0]
	return &o, nil
}
