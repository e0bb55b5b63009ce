package domain

import "context"

// Cart domain errors.
var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrLineItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrSessionNotFound  = &Error{Code: ENOTFOUND, Message: "Session not found"}
	ErrOutOfStock       = &Error{Code: EGONE, Message: "Item is out of stock"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be between 1 and available stock"}
)

// CartService provides business logic for shopping cart operations.
// Implementations are session-scoped: one cart per browsing session.
type CartService interface {
	// AddItem adds a product to the cart or increments quantity if an item
	// with the same (product, variant) pair is already present.
	AddItem(ctx context.Context, sessionToken string, productID string, quantity int) (*CartSummary, error)

	// SetQuantity sets the quantity of a cart line item.
	// Quantity zero removes the item.
	SetQuantity(ctx context.Context, sessionToken string, lineItemID string, quantity int) (*CartSummary, error)

	// RemoveItem removes a line item. Removing an unknown id is a no-op.
	RemoveItem(ctx context.Context, sessionToken string, lineItemID string) (*CartSummary, error)

	// MoveToWishlist removes a line item from the cart and records the
	// product on the session wishlist.
	MoveToWishlist(ctx context.Context, sessionToken string, lineItemID string) (*CartSummary, error)

	// ApplyPromo resolves a promo code and attaches it to the cart,
	// replacing any previously applied code.
	ApplyPromo(ctx context.Context, sessionToken string, code string) (*CartSummary, error)

	// RemovePromo detaches the active promo code. Idempotent.
	RemovePromo(ctx context.Context, sessionToken string) (*CartSummary, error)

	// GetSummary retrieves the cart with items and freshly computed totals.
	GetSummary(ctx context.Context, sessionToken string) (*CartSummary, error)
}

// LineItem is one product/variant entry in a cart with a quantity.
type LineItem struct {
	ID             string
	ProductID      string
	Name           string
	UnitPriceCents int64
	Quantity       int
	StockCeiling   int
	VariantLabel   string
	ImageURL       string
	Seller         string
}

// LineSubtotalCents returns unit price times quantity for this line.
func (li *LineItem) LineSubtotalCents() int64 {
	return li.UnitPriceCents * int64(li.Quantity)
}

// AppliedPromo describes the promo rule currently attached to a cart,
// with its benefit computed against the cart's current totals.
type AppliedPromo struct {
	Code          string
	Description   string
	DiscountCents int64
}

// CartSummary aggregates cart contents with totals recomputed at read time.
// Totals are never cached across mutations.
type CartSummary struct {
	Items     []LineItem
	ItemCount int

	Promo *AppliedPromo // nil when no code is applied

	SubtotalCents int64
	DiscountCents int64
	ShippingCents int64
	TaxCents      int64
	TotalCents    int64

	// BlockingStockIssues is true when any line item has a zero stock
	// ceiling; checkout refuses to proceed while set.
	BlockingStockIssues bool
}
