package domain

import (
	"context"

	"github.com/markethub/storefront/internal/delivery"
)

// Checkout domain errors.
var (
	// ErrExitCheckout is a control-flow signal, not a failure: backing out
	// of the first step means the shopper returned to the cart.
	ErrExitCheckout = &Error{Code: EINVALID, Message: "Checkout exited from the first step"}

	// ErrIncompleteCheckout indicates a caller contract violation: an order
	// was assembled from a session that never reached review. Treated as
	// fatal rather than user-facing.
	ErrIncompleteCheckout = &Error{Code: EINTERNAL, Message: "Order assembly attempted before review"}

	ErrCheckoutNotStarted = &Error{Code: ENOTFOUND, Message: "Checkout has not been started"}
	ErrWrongStep          = &Error{Code: EINVALID, Message: "Submitted data does not match the current checkout step"}
	ErrOrderNotFound      = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrStockBlocked       = &Error{Code: ECONFLICT, Message: "An item in the cart is out of stock"}
	ErrEmptyCart          = &Error{Code: EINVALID, Message: "Cart is empty"}
)

// Step identifies a position in the linear checkout wizard.
type Step string

const (
	StepShipping     Step = "shipping"
	StepDelivery     Step = "delivery"
	StepPayment      Step = "payment"
	StepReview       Step = "review"
	StepConfirmation Step = "confirmation"
)

// steps in wizard order. Backward navigation walks this left, forward right.
var stepOrder = []Step{StepShipping, StepDelivery, StepPayment, StepReview, StepConfirmation}

// Index returns the zero-based wizard position of the step, or -1.
func (s Step) Index() int {
	for i, st := range stepOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Prev returns the preceding step. Calling Prev on the first step returns
// the first step unchanged; callers detect that case via ErrExitCheckout.
func (s Step) Prev() Step {
	i := s.Index()
	if i <= 0 {
		return stepOrder[0]
	}
	return stepOrder[i-1]
}

// Next returns the following step, or the step itself when terminal.
func (s Step) Next() Step {
	i := s.Index()
	if i < 0 || i >= len(stepOrder)-1 {
		return s
	}
	return stepOrder[i+1]
}

// ShippingAddress holds the shipping-step form data.
// Validation is field-presence/format only; no external verification.
type ShippingAddress struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,contains=@"`
	Phone       string `json:"phone" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Apartment   string `json:"apartment"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required"`
	ZipCode     string `json:"zipCode" validate:"required"`
	Country     string `json:"country" validate:"required"`
	SaveAddress bool   `json:"saveAddress"`

	// SameBilling defaults to true when the shipping step is submitted
	// without an explicit value; toggling it off is honored as-is.
	SameBilling bool `json:"sameBilling"`
}

// PaymentMethod tags the payment variant chosen at the payment step.
type PaymentMethod string

const (
	PaymentCard      PaymentMethod = "card"
	PaymentPayPal    PaymentMethod = "paypal"
	PaymentApplePay  PaymentMethod = "apple"
	PaymentGooglePay PaymentMethod = "google"
	PaymentPayLater  PaymentMethod = "klarna"
)

// Valid reports whether the method is one of the supported variants.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentPayPal, PaymentApplePay, PaymentGooglePay, PaymentPayLater:
		return true
	}
	return false
}

// PaymentDetails holds the payment-step form data. Card fields are only
// required when Method is PaymentCard; other methods carry no extra fields.
type PaymentDetails struct {
	Method      PaymentMethod `json:"method"`
	CardNumber  string        `json:"cardNumber"`
	CardName    string        `json:"cardName"`
	ExpiryMonth string        `json:"expiryMonth"`
	ExpiryYear  string        `json:"expiryYear"`
	CVV         string        `json:"cvv"`
	SavePayment bool          `json:"savePayment"`
}

// PaymentSnapshot is the redacted form of PaymentDetails retained on an
// order: last four card digits only, CVV never stored.
type PaymentSnapshot struct {
	Method         PaymentMethod
	CardLast4      string
	CardholderName string
	ExpiryMonth    string
	ExpiryYear     string
}

// CheckoutState is the wizard position and step data visible to callers.
// Payment data is redacted before it leaves the service.
type CheckoutState struct {
	Step             Step
	ShippingAddress  *ShippingAddress
	SelectedDelivery *delivery.Option
	Payment          *PaymentSnapshot
	OrderNumber      string // set once the session reaches confirmation
}

// CheckoutService drives the five-step checkout wizard for a session.
type CheckoutService interface {
	// Begin starts (or returns the in-progress) checkout for the session.
	// A session already at confirmation is reset for a new order.
	Begin(ctx context.Context, sessionToken string) (*CheckoutState, error)

	// State returns the current wizard state without mutating it.
	State(ctx context.Context, sessionToken string) (*CheckoutState, error)

	// SubmitShipping validates the address and advances shipping -> delivery.
	SubmitShipping(ctx context.Context, sessionToken string, addr ShippingAddress) (*CheckoutState, error)

	// SelectDelivery records a delivery option and advances delivery -> payment.
	SelectDelivery(ctx context.Context, sessionToken string, optionID string) (*CheckoutState, error)

	// SubmitPayment validates payment fields per method and advances
	// payment -> review.
	SubmitPayment(ctx context.Context, sessionToken string, details PaymentDetails) (*CheckoutState, error)

	// PlaceOrder requires terms acceptance, assembles the order exactly
	// once, clears the cart, and advances review -> confirmation.
	PlaceOrder(ctx context.Context, sessionToken string, termsAccepted bool) (*Order, error)

	// Back moves one step backward, preserving entered data. Backing out
	// of the shipping step returns ErrExitCheckout.
	Back(ctx context.Context, sessionToken string) (*CheckoutState, error)

	// Order returns the order assembled for this session. Safe to call
	// repeatedly; the order number never changes across reads.
	Order(ctx context.Context, sessionToken string) (*Order, error)
}
