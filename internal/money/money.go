// Package money implements the storefront's fixed-point price arithmetic.
// All monetary state is int64 minor units (cents); anything fractional
// (tax, percentage discounts) goes through shopspring/decimal with an
// explicit round-half-up rule so no sub-cent amount is silently truncated.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRate is the fixed sales tax rate applied to subtotal minus discount.
var TaxRate = decimal.RequireFromString("0.08")

const (
	// FreeShippingThresholdCents is the subtotal above which the cart-level
	// standard shipping charge is waived.
	FreeShippingThresholdCents int64 = 5000

	// StandardShippingCents is the cart-level shipping charge under the
	// free-shipping threshold.
	StandardShippingCents int64 = 999
)

// Line is the minimal shape needed to total a cart line.
type Line struct {
	UnitPriceCents int64
	Quantity       int64
}

// Subtotal sums unit price times quantity over all lines.
// Zero lines yields zero. Order of lines is irrelevant.
func Subtotal(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.UnitPriceCents * l.Quantity
	}
	return sum
}

// ClampDiscount bounds a discount so it never drives the pre-shipping,
// pre-tax amount negative: min(discount, subtotal), floored at zero.
func ClampDiscount(discountCents, subtotalCents int64) int64 {
	if discountCents < 0 {
		return 0
	}
	if discountCents > subtotalCents {
		return subtotalCents
	}
	return discountCents
}

// Tax computes taxableCents * rate rounded to whole cents, half up.
// The rate applies to subtotal minus discount, never to shipping.
func Tax(taxableCents int64, rate decimal.Decimal) int64 {
	if taxableCents <= 0 {
		return 0
	}
	return decimal.NewFromInt(taxableCents).Mul(rate).Round(0).IntPart()
}

// Percentage computes pct (e.g. "0.1" for 10%) of amountCents, rounded to
// whole cents half up. Used for percentage promo rules.
func Percentage(amountCents int64, pct decimal.Decimal) int64 {
	if amountCents <= 0 {
		return 0
	}
	return decimal.NewFromInt(amountCents).Mul(pct).Round(0).IntPart()
}

// Total computes max(0, subtotal - discount) + shipping + tax.
// The discount is clamped first, so for non-negative inputs the result
// never falls below shipping + tax.
func Total(subtotalCents, discountCents, shippingCents, taxCents int64) int64 {
	discounted := subtotalCents - ClampDiscount(discountCents, subtotalCents)
	return discounted + shippingCents + taxCents
}

// CartShipping returns the cart-level shipping charge shown before a
// delivery option is chosen: free strictly above the threshold.
func CartShipping(subtotalCents int64) int64 {
	if subtotalCents > FreeShippingThresholdCents {
		return 0
	}
	return StandardShippingCents
}

// FormatCents renders cents as a dollar string, e.g. 123456 -> "$1234.56".
func FormatCents(cents int64) string {
	d := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
	return fmt.Sprintf("$%s", d.StringFixed(2))
}
