// Package cart implements the per-session shopping cart model: an ordered
// collection of line items with stock-ceiling enforcement, at most one
// active promo rule, and totals recomputed on every read.
package cart

import (
	"github.com/google/uuid"

	"github.com/markethub/storefront/internal/domain"
	"github.com/markethub/storefront/internal/money"
	"github.com/markethub/storefront/internal/promo"
)

// Model is a single session's cart. It is not safe for concurrent use;
// the session store serializes all access to it.
type Model struct {
	items    []domain.LineItem
	promo    *promo.Rule
	wishlist []string
}

// NewModel creates an empty cart.
func NewModel() *Model {
	return &Model{}
}

// AddItem adds a product to the cart, or increments the quantity of the
// existing line item with the same (product, variant) pair. Quantities are
// clamped to the product's stock ceiling. Products with no stock cannot be
// added at all.
func (m *Model) AddItem(p *domain.Product, quantity int) (*domain.LineItem, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	if p.Stock == 0 {
		return nil, domain.ErrOutOfStock
	}

	for i := range m.items {
		li := &m.items[i]
		if li.ProductID == p.ID && li.VariantLabel == p.VariantLabel {
			li.Quantity += quantity
			if li.Quantity > li.StockCeiling {
				li.Quantity = li.StockCeiling
			}
			cp := *li
			return &cp, nil
		}
	}

	qty := quantity
	if qty > p.Stock {
		qty = p.Stock
	}
	item := domain.LineItem{
		ID:             uuid.New().String(),
		ProductID:      p.ID,
		Name:           p.Name,
		UnitPriceCents: p.PriceCents,
		Quantity:       qty,
		StockCeiling:   p.Stock,
		VariantLabel:   p.VariantLabel,
		ImageURL:       p.ImageURL,
		Seller:         p.Seller,
	}
	m.items = append(m.items, item)
	return &item, nil
}

// SetQuantity sets a line item's quantity in place. Quantity zero removes
// the item. Out-of-bounds quantities are rejected and leave the prior
// quantity unchanged.
func (m *Model) SetQuantity(lineItemID string, quantity int) error {
	if quantity == 0 {
		m.RemoveItem(lineItemID)
		return nil
	}
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}

	for i := range m.items {
		li := &m.items[i]
		if li.ID == lineItemID {
			if quantity > li.StockCeiling {
				return domain.ErrInvalidQuantity
			}
			li.Quantity = quantity
			return nil
		}
	}
	return domain.ErrLineItemNotFound
}

// RemoveItem removes a line item. Removing an id that is not present is a
// no-op, tolerating duplicate UI events.
func (m *Model) RemoveItem(lineItemID string) {
	for i := range m.items {
		if m.items[i].ID == lineItemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return
		}
	}
}

// MoveToWishlist removes a line item from the cart and records its product
// on the session wishlist. Unknown ids are a no-op.
func (m *Model) MoveToWishlist(lineItemID string) {
	for i := range m.items {
		if m.items[i].ID == lineItemID {
			m.wishlist = append(m.wishlist, m.items[i].ProductID)
			m.items = append(m.items[:i], m.items[i+1:]...)
			return
		}
	}
}

// Wishlist returns the product ids moved to the wishlist, in move order.
func (m *Model) Wishlist() []string {
	out := make([]string, len(m.wishlist))
	copy(out, m.wishlist)
	return out
}

// ApplyPromo attaches a promo rule, replacing any previously applied one.
// Rules never stack.
func (m *Model) ApplyPromo(rule promo.Rule) {
	r := rule
	m.promo = &r
}

// RemovePromo detaches the active promo rule. Removing twice is a no-op.
func (m *Model) RemovePromo() {
	m.promo = nil
}

// Promo returns the active promo rule, or nil.
func (m *Model) Promo() *promo.Rule {
	if m.promo == nil {
		return nil
	}
	r := *m.promo
	return &r
}

// Items returns a copy of the line items in insertion order.
func (m *Model) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(m.items))
	copy(out, m.items)
	return out
}

// Empty reports whether the cart has no line items.
func (m *Model) Empty() bool {
	return len(m.items) == 0
}

// Clear removes every line item and the active promo. The wishlist
// survives; it belongs to the session, not the order.
func (m *Model) Clear() {
	m.items = nil
	m.promo = nil
}

// SyncStock refreshes each line item's stock ceiling from current catalog
// stock. Held quantities are left alone; a product that sold out since it
// was added surfaces as a blocking stock issue rather than a silent edit
// to the shopper's cart. Products the lookup no longer knows are treated
// as sold out.
func (m *Model) SyncStock(stock func(productID string) (int, bool)) {
	for i := range m.items {
		n, ok := stock(m.items[i].ProductID)
		if !ok {
			n = 0
		}
		m.items[i].StockCeiling = n
	}
}

// HasBlockingStockIssues reports whether any line item has a zero stock
// ceiling. Checkout refuses to proceed while this is true.
func (m *Model) HasBlockingStockIssues() bool {
	for _, li := range m.items {
		if li.StockCeiling == 0 {
			return true
		}
	}
	return false
}

// SubtotalCents sums unit price times quantity over all items.
func (m *Model) SubtotalCents() int64 {
	lines := make([]money.Line, len(m.items))
	for i, li := range m.items {
		lines[i] = money.Line{UnitPriceCents: li.UnitPriceCents, Quantity: int64(li.Quantity)}
	}
	return money.Subtotal(lines)
}

// Summary computes the cart-page view of the cart: shipping is quoted by
// the subtotal threshold rule because no delivery option exists yet.
func (m *Model) Summary() domain.CartSummary {
	return m.SummaryWithShipping(money.CartShipping(m.SubtotalCents()))
}

// SummaryWithShipping computes totals against an explicit shipping charge,
// used once a checkout delivery option is authoritative. Totals are always
// recomputed from current state; nothing is cached across mutations, and
// promo benefits (notably free-shipping rules) track the shipping charge
// in effect now rather than the one seen when the code was applied.
func (m *Model) SummaryWithShipping(shippingCents int64) domain.CartSummary {
	subtotal := m.SubtotalCents()

	var applied *domain.AppliedPromo
	var discount int64
	if m.promo != nil {
		raw := promo.Discount(*m.promo, subtotal, shippingCents)
		discount = money.ClampDiscount(raw, subtotal)
		applied = &domain.AppliedPromo{
			Code:          m.promo.Code,
			Description:   m.promo.Description,
			DiscountCents: discount,
		}
	}

	tax := money.Tax(subtotal-discount, money.TaxRate)

	itemCount := 0
	for _, li := range m.items {
		itemCount += li.Quantity
	}

	return domain.CartSummary{
		Items:               m.Items(),
		ItemCount:           itemCount,
		Promo:               applied,
		SubtotalCents:       subtotal,
		DiscountCents:       discount,
		ShippingCents:       shippingCents,
		TaxCents:            tax,
		TotalCents:          money.Total(subtotal, discount, shippingCents, tax),
		BlockingStockIssues: m.HasBlockingStockIssues(),
	}
}
