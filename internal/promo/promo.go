package promo

import "context"

// Kind classifies how a promo rule computes its benefit.
type Kind string

const (
	// KindPercentage discounts a fraction of the cart subtotal.
	KindPercentage Kind = "percentage"

	// KindFixedAmount discounts a fixed number of cents.
	KindFixedAmount Kind = "fixed"

	// KindFreeShipping discounts exactly the current shipping charge.
	KindFreeShipping Kind = "shipping"
)

// Rule is a named discount policy drawn from a static table. Immutable.
type Rule struct {
	// Code is the case-insensitive lookup key, stored uppercase.
	Code string

	Kind        Kind
	Description string

	// PercentBP is the percentage in basis points (1000 = 10%) for
	// KindPercentage rules; zero otherwise.
	PercentBP int64

	// AmountCents is the fixed discount for KindFixedAmount rules;
	// zero otherwise.
	AmountCents int64
}

// Applied pairs a rule with the benefit it yields against a specific cart.
// A zero DiscountCents is a valid outcome ("code applied, $0 benefit") and
// is distinct from the code not resolving at all.
type Applied struct {
	Rule          Rule
	DiscountCents int64
}

// Resolver maps a promo code to a discount for the cart's current totals.
type Resolver interface {
	// Resolve looks up the code case-insensitively and computes its
	// benefit against the given subtotal and shipping. Unknown codes
	// return ErrPromoNotFound.
	Resolve(ctx context.Context, code string, subtotalCents, shippingCents int64) (*Applied, error)
}
