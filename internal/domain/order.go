package domain

import (
	"time"

	"github.com/markethub/storefront/internal/delivery"
)

// OrderTotals is the monetary breakdown captured on an order.
type OrderTotals struct {
	SubtotalCents int64
	DiscountCents int64
	ShippingCents int64
	TaxCents      int64
	TotalCents    int64
}

// Order is the immutable record produced when checkout reaches confirmation.
// Line items, delivery, and payment are deep copies: later cart or session
// mutations never alter an assembled order.
type Order struct {
	OrderNumber string
	Items       []LineItem
	Delivery    delivery.Option
	Payment     PaymentSnapshot
	PromoCode   string // empty when no code was applied
	Totals      OrderTotals
	CreatedAt   time.Time
}
