// Package service implements the storefront's business logic services on
// top of the session store, catalog, promo resolver, and delivery
// provider.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/markethub/storefront/internal/domain"
	"github.com/markethub/storefront/internal/promo"
	"github.com/markethub/storefront/internal/session"
)

// cartService implements domain.CartService.
type cartService struct {
	store   *session.Store
	catalog domain.ProductRepository
	promos  promo.Resolver
}

// NewCartService creates a new CartService instance.
func NewCartService(store *session.Store, catalog domain.ProductRepository, promos promo.Resolver) domain.CartService {
	return &cartService{
		store:   store,
		catalog: catalog,
		promos:  promos,
	}
}

// AddItem adds a product to the session's cart or merges it into the
// existing line for the same product and variant.
func (s *cartService) AddItem(ctx context.Context, sessionToken string, productID string, quantity int) (*domain.CartSummary, error) {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	return s.withSummary(ctx, sessionToken, func(e *session.Entry) error {
		_, err := e.Cart.AddItem(product, quantity)
		return err
	})
}

// SetQuantity sets a line item's quantity. Quantity zero removes the item.
func (s *cartService) SetQuantity(ctx context.Context, sessionToken string, lineItemID string, quantity int) (*domain.CartSummary, error) {
	return s.withSummary(ctx, sessionToken, func(e *session.Entry) error {
		return e.Cart.SetQuantity(lineItemID, quantity)
	})
}

// RemoveItem removes a line item. Removing it again is a no-op.
func (s *cartService) RemoveItem(ctx context.Context, sessionToken string, lineItemID string) (*domain.CartSummary, error) {
	return s.withSummary(ctx, sessionToken, func(e *session.Entry) error {
		e.Cart.RemoveItem(lineItemID)
		return nil
	})
}

// MoveToWishlist moves a line item from the cart to the session wishlist.
func (s *cartService) MoveToWishlist(ctx context.Context, sessionToken string, lineItemID string) (*domain.CartSummary, error) {
	return s.withSummary(ctx, sessionToken, func(e *session.Entry) error {
		e.Cart.MoveToWishlist(lineItemID)
		return nil
	})
}

// ApplyPromo resolves a code and attaches its rule to the cart, replacing
// any previously applied rule. The benefit reported in the summary is
// recomputed against the cart's totals at read time, not frozen here.
func (s *cartService) ApplyPromo(ctx context.Context, sessionToken string, code string) (*domain.CartSummary, error) {
	const op = "cart.apply_promo"

	return s.withSummary(ctx, sessionToken, func(e *session.Entry) error {
		summary := e.Cart.Summary()
		applied, err := s.promos.Resolve(ctx, code, summary.SubtotalCents, summary.ShippingCents)
		if err != nil {
			if errors.Is(err, promo.ErrPromoNotFound) || errors.Is(err, promo.ErrEmptyCode) {
				return domain.WrapError(err, domain.ENOTFOUND, op, "Invalid promo code")
			}
			return domain.Internal(err, op, "could not resolve promo code")
		}
		e.Cart.ApplyPromo(applied.Rule)
		return nil
	})
}

// RemovePromo detaches the active promo code. Idempotent.
func (s *cartService) RemovePromo(ctx context.Context, sessionToken string) (*domain.CartSummary, error) {
	return s.withSummary(ctx, sessionToken, func(e *session.Entry) error {
		e.Cart.RemovePromo()
		return nil
	})
}

// GetSummary returns the cart with totals recomputed now.
func (s *cartService) GetSummary(ctx context.Context, sessionToken string) (*domain.CartSummary, error) {
	return s.withSummary(ctx, sessionToken, func(*session.Entry) error {
		return nil
	})
}

// withSummary runs a cart mutation under the session's in-flight slot,
// refreshes stock ceilings from the catalog, and returns the resulting
// summary. Stock is synced before the mutation so a product that sold
// out since it was added surfaces immediately.
func (s *cartService) withSummary(ctx context.Context, sessionToken string, fn func(*session.Entry) error) (*domain.CartSummary, error) {
	var summary domain.CartSummary
	err := s.store.With(sessionToken, func(e *session.Entry) error {
		e.Cart.SyncStock(func(productID string) (int, bool) {
			p, err := s.catalog.GetByID(ctx, productID)
			if err != nil {
				return 0, false
			}
			return p.Stock, true
		})
		if err := fn(e); err != nil {
			return err
		}
		summary = e.Cart.Summary()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
