package promo

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/markethub/storefront/internal/money"
)

// TableResolver resolves codes against a static in-memory rule table.
type TableResolver struct {
	rules map[string]Rule
}

// NewTableResolver creates a resolver over the given rules, keyed by
// uppercased code.
func NewTableResolver(rules []Rule) *TableResolver {
	m := make(map[string]Rule, len(rules))
	for _, r := range rules {
		r.Code = strings.ToUpper(r.Code)
		m[r.Code] = r
	}
	return &TableResolver{rules: m}
}

// NewStorefrontResolver returns the storefront's standard promo table:
// SAVE10 (10% of subtotal), FREESHIP (current shipping), WELCOME20 ($20).
func NewStorefrontResolver() *TableResolver {
	return NewTableResolver([]Rule{
		{Code: "SAVE10", Kind: KindPercentage, PercentBP: 1000, Description: "10% off your order"},
		{Code: "FREESHIP", Kind: KindFreeShipping, Description: "Free shipping"},
		{Code: "WELCOME20", Kind: KindFixedAmount, AmountCents: 2000, Description: "$20 off your order"},
	})
}

// Resolve looks up the code case-insensitively and computes its benefit
// against the cart's current subtotal and shipping.
func (r *TableResolver) Resolve(ctx context.Context, code string, subtotalCents, shippingCents int64) (*Applied, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrEmptyCode
	}

	rule, ok := r.rules[strings.ToUpper(trimmed)]
	if !ok {
		return nil, ErrPromoNotFound
	}

	return &Applied{
		Rule:          rule,
		DiscountCents: Discount(rule, subtotalCents, shippingCents),
	}, nil
}

// Discount computes a rule's benefit against the given totals. Free-shipping
// rules track the current shipping charge, so callers must pass the shipping
// in effect at computation time, not at apply time.
func Discount(rule Rule, subtotalCents, shippingCents int64) int64 {
	switch rule.Kind {
	case KindPercentage:
		pct := decimal.NewFromInt(rule.PercentBP).Div(decimal.NewFromInt(10000))
		return money.Percentage(subtotalCents, pct)
	case KindFixedAmount:
		return rule.AmountCents
	case KindFreeShipping:
		return shippingCents
	}
	return 0
}
