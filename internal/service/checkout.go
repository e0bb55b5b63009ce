package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/markethub/storefront/internal/checkout"
	"github.com/markethub/storefront/internal/delivery"
	"github.com/markethub/storefront/internal/domain"
	"github.com/markethub/storefront/internal/session"
)

// checkoutService implements domain.CheckoutService.
type checkoutService struct {
	store     *session.Store
	catalog   domain.ProductRepository
	options   delivery.Provider
	assembler *checkout.Assembler
}

// NewCheckoutService creates a new CheckoutService instance.
func NewCheckoutService(
	store *session.Store,
	catalog domain.ProductRepository,
	options delivery.Provider,
	assembler *checkout.Assembler,
) domain.CheckoutService {
	return &checkoutService{
		store:     store,
		catalog:   catalog,
		options:   options,
		assembler: assembler,
	}
}

// Begin starts checkout for the session, or returns the wizard already in
// progress. A session sitting at confirmation is given a fresh wizard so
// the shopper can place another order. An empty cart cannot enter
// checkout.
func (s *checkoutService) Begin(ctx context.Context, sessionToken string) (*domain.CheckoutState, error) {
	const op = "checkout.begin"

	var state domain.CheckoutState
	err := s.store.With(sessionToken, func(e *session.Entry) error {
		if e.Checkout == nil || e.Checkout.Step() == domain.StepConfirmation {
			if e.Cart.Empty() {
				return domain.WrapError(domain.ErrEmptyCart, domain.EINVALID, op, "cannot check out an empty cart")
			}
			def, err := s.options.Default(ctx)
			if err != nil {
				return domain.Internal(err, op, "no delivery options available")
			}
			e.Checkout = checkout.NewSession(*def)
		}
		state = e.Checkout.State()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// State returns the current wizard state without mutating it.
func (s *checkoutService) State(ctx context.Context, sessionToken string) (*domain.CheckoutState, error) {
	return s.withState(sessionToken, func(cs *checkout.Session) error {
		return nil
	})
}

// SubmitShipping validates the address and advances shipping -> delivery.
func (s *checkoutService) SubmitShipping(ctx context.Context, sessionToken string, addr domain.ShippingAddress) (*domain.CheckoutState, error) {
	return s.withState(sessionToken, func(cs *checkout.Session) error {
		return cs.SubmitShipping(addr)
	})
}

// SelectDelivery resolves the option id against the provider and advances
// delivery -> payment.
func (s *checkoutService) SelectDelivery(ctx context.Context, sessionToken string, optionID string) (*domain.CheckoutState, error) {
	opt, err := s.options.ByID(ctx, optionID)
	if err != nil {
		if errors.Is(err, delivery.ErrOptionNotFound) {
			return nil, domain.WrapError(err, domain.ENOTFOUND, "checkout.select_delivery", "Unknown delivery option")
		}
		return nil, fmt.Errorf("failed to resolve delivery option: %w", err)
	}

	return s.withState(sessionToken, func(cs *checkout.Session) error {
		return cs.SelectDelivery(*opt)
	})
}

// SubmitPayment validates the payment form and advances payment -> review.
func (s *checkoutService) SubmitPayment(ctx context.Context, sessionToken string, details domain.PaymentDetails) (*domain.CheckoutState, error) {
	return s.withState(sessionToken, func(cs *checkout.Session) error {
		return cs.SubmitPayment(details)
	})
}

// PlaceOrder assembles the order exactly once, clears the cart, and moves
// the wizard to confirmation. Terms must be accepted and no line item may
// be blocked on stock.
func (s *checkoutService) PlaceOrder(ctx context.Context, sessionToken string, termsAccepted bool) (*domain.Order, error) {
	const op = "checkout.place_order"

	var order *domain.Order
	err := s.store.With(sessionToken, func(e *session.Entry) error {
		if e.Checkout == nil {
			return domain.ErrCheckoutNotStarted
		}
		if e.Checkout.Step() != domain.StepReview {
			return domain.WrapError(domain.ErrWrongStep, domain.EINVALID, op, "order can only be placed from the review step")
		}
		if !termsAccepted {
			return domain.NewValidationError(op, domain.StepReview, "terms", "You must accept the terms and conditions")
		}

		e.Cart.SyncStock(func(productID string) (int, bool) {
			p, err := s.catalog.GetByID(ctx, productID)
			if err != nil {
				return 0, false
			}
			return p.Stock, true
		})

		o, err := s.assembler.Assemble(e.Cart, e.Checkout)
		if err != nil {
			return err
		}
		e.Checkout.CompleteOrder(o)
		e.Cart.Clear()
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Back moves one step backward, preserving entered data.
func (s *checkoutService) Back(ctx context.Context, sessionToken string) (*domain.CheckoutState, error) {
	return s.withState(sessionToken, func(cs *checkout.Session) error {
		return cs.Back()
	})
}

// Order returns the order assembled for this session. The order number is
// generated once at confirmation; repeated reads always see the same one.
func (s *checkoutService) Order(ctx context.Context, sessionToken string) (*domain.Order, error) {
	var order *domain.Order
	err := s.store.With(sessionToken, func(e *session.Entry) error {
		if e.Checkout == nil || e.Checkout.Order() == nil {
			return domain.ErrOrderNotFound
		}
		order = e.Checkout.Order()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// withState runs a wizard operation under the session's in-flight slot
// and returns the resulting state. Checkout must have been started.
func (s *checkoutService) withState(sessionToken string, fn func(*checkout.Session) error) (*domain.CheckoutState, error) {
	var state domain.CheckoutState
	err := s.store.With(sessionToken, func(e *session.Entry) error {
		if e.Checkout == nil {
			return domain.ErrCheckoutNotStarted
		}
		if err := fn(e.Checkout); err != nil {
			return err
		}
		state = e.Checkout.State()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}
