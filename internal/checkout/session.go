// Package checkout implements the five-step checkout wizard: a linear
// state machine over shipping, delivery, payment, review, and
// confirmation, plus the assembler that turns a reviewed session into an
// immutable order.
package checkout

import (
	"strings"

	"github.com/markethub/storefront/internal/delivery"
	"github.com/markethub/storefront/internal/domain"
)

// Session is one shopper's progress through the checkout wizard. Data
// entered at each step is retained across backward navigation so forms
// repopulate. Not safe for concurrent use; the session store serializes
// access.
type Session struct {
	step     domain.Step
	shipping *domain.ShippingAddress
	option   *delivery.Option
	payment  *domain.PaymentDetails
	order    *domain.Order
}

// NewSession starts a wizard at the shipping step with the cheapest
// delivery option preselected.
func NewSession(defaultOption delivery.Option) *Session {
	opt := defaultOption
	return &Session{step: domain.StepShipping, option: &opt}
}

// Step returns the current wizard position.
func (s *Session) Step() domain.Step {
	return s.step
}

// SubmitShipping validates and records the shipping address, advancing to
// the delivery step. Every invalid field is reported in one error.
func (s *Session) SubmitShipping(addr domain.ShippingAddress) error {
	if s.step != domain.StepShipping {
		return domain.ErrWrongStep
	}
	if err := ValidateShippingAddress(addr); err != nil {
		return err
	}
	a := addr
	s.shipping = &a
	s.step = s.step.Next()
	return nil
}

// SelectDelivery records the chosen delivery option, advancing to the
// payment step. The option must come from the delivery provider; the
// session does not second-guess it.
func (s *Session) SelectDelivery(opt delivery.Option) error {
	if s.step != domain.StepDelivery {
		return domain.ErrWrongStep
	}
	o := opt
	s.option = &o
	s.step = s.step.Next()
	return nil
}

// SubmitPayment validates and records payment details, advancing to the
// review step. Full card data is held only for form repopulation on
// backward navigation; it is redacted before leaving the session.
func (s *Session) SubmitPayment(details domain.PaymentDetails) error {
	if s.step != domain.StepPayment {
		return domain.ErrWrongStep
	}
	if err := ValidatePaymentDetails(details); err != nil {
		return err
	}
	d := details
	s.payment = &d
	s.step = s.step.Next()
	return nil
}

// Back moves one step backward, keeping all entered data. Backing out of
// the shipping step signals ErrExitCheckout so the caller can return the
// shopper to the cart. Confirmation is terminal; there is nothing to go
// back to once an order exists.
func (s *Session) Back() error {
	switch s.step {
	case domain.StepShipping:
		return domain.ErrExitCheckout
	case domain.StepConfirmation:
		return domain.ErrWrongStep
	}
	s.step = s.step.Prev()
	return nil
}

// CompleteOrder records the assembled order and moves the session to its
// terminal confirmation step.
func (s *Session) CompleteOrder(o *domain.Order) {
	s.order = o
	s.step = domain.StepConfirmation
}

// Order returns the order assembled for this session, or nil before
// confirmation. The same order is returned on every read.
func (s *Session) Order() *domain.Order {
	return s.order
}

// Shipping returns the recorded shipping address, or nil.
func (s *Session) Shipping() *domain.ShippingAddress {
	if s.shipping == nil {
		return nil
	}
	a := *s.shipping
	return &a
}

// Delivery returns the currently selected delivery option.
func (s *Session) Delivery() *delivery.Option {
	if s.option == nil {
		return nil
	}
	o := *s.option
	return &o
}

// PaymentSnapshot returns the redacted view of the recorded payment
// details, or nil before the payment step completes.
func (s *Session) PaymentSnapshot() *domain.PaymentSnapshot {
	if s.payment == nil {
		return nil
	}
	snap := redactPayment(*s.payment)
	return &snap
}

// State returns the externally visible wizard state. Payment details are
// redacted; card numbers and CVVs never leave the session.
func (s *Session) State() domain.CheckoutState {
	st := domain.CheckoutState{
		Step:             s.step,
		ShippingAddress:  s.Shipping(),
		SelectedDelivery: s.Delivery(),
		Payment:          s.PaymentSnapshot(),
	}
	if s.order != nil {
		st.OrderNumber = s.order.OrderNumber
	}
	return st
}

// redactPayment strips a payment submission down to what an order may
// retain: method, cardholder, expiry, and the last four card digits.
// The CVV is dropped entirely.
func redactPayment(d domain.PaymentDetails) domain.PaymentSnapshot {
	snap := domain.PaymentSnapshot{Method: d.Method}
	if d.Method != domain.PaymentCard {
		return snap
	}
	digits := stripNonDigits(d.CardNumber)
	if n := len(digits); n >= 4 {
		snap.CardLast4 = digits[n-4:]
	}
	snap.CardholderName = d.CardName
	snap.ExpiryMonth = d.ExpiryMonth
	snap.ExpiryYear = d.ExpiryYear
	return snap
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
