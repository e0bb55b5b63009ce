package promo

import "context"

// MockResolver is a test double with a configurable resolve function.
type MockResolver struct {
	ResolveFunc func(ctx context.Context, code string, subtotalCents, shippingCents int64) (*Applied, error)
}

// Resolve delegates to ResolveFunc, or reports not-found when unset.
func (m *MockResolver) Resolve(ctx context.Context, code string, subtotalCents, shippingCents int64) (*Applied, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, code, subtotalCents, shippingCents)
	}
	return nil, ErrPromoNotFound
}
