package checkout

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/markethub/storefront/internal/cart"
	"github.com/markethub/storefront/internal/domain"
)

// IDSource produces order numbers. It is a seam so tests can pin numbers
// and deployments can swap the legacy scheme for a collision-resistant one.
type IDSource interface {
	OrderNumber(now time.Time) string
}

// TimestampIDSource is the legacy scheme: the MHP prefix plus the last
// eight digits of the millisecond timestamp. Two orders placed in the
// same millisecond would collide; kept for continuity with existing
// order-number formats.
type TimestampIDSource struct{}

func (TimestampIDSource) OrderNumber(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return "MHP" + ms
}

// RandomIDSource draws order numbers from a UUID, keeping the MHP prefix
// and an eight-character suffix so the format matches the legacy scheme.
type RandomIDSource struct{}

func (RandomIDSource) OrderNumber(time.Time) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "MHP" + strings.ToUpper(raw[:8])
}

// Assembler turns a reviewed checkout session and its cart into an
// immutable order.
type Assembler struct {
	ids   IDSource
	clock func() time.Time
}

// NewAssembler creates an assembler. A nil clock uses time.Now.
func NewAssembler(ids IDSource, clock func() time.Time) *Assembler {
	if clock == nil {
		clock = time.Now
	}
	return &Assembler{ids: ids, clock: clock}
}

// Assemble builds the order from the session's recorded steps and the
// cart's current contents. The session must sit at the review step with
// every prior step completed, the cart must be non-empty, and no line
// item may be blocked on stock. Totals are computed against the selected
// delivery option's charge, with any promo benefit resolved at this
// moment. Everything on the returned order is a copy; later cart or
// session mutations cannot reach it.
func (a *Assembler) Assemble(c *cart.Model, s *Session) (*domain.Order, error) {
	const op = "checkout.assemble"

	if s.step != domain.StepReview {
		return nil, domain.WrapError(domain.ErrIncompleteCheckout, domain.EINTERNAL, op, "session has not reached review")
	}
	if s.shipping == nil || s.option == nil || s.payment == nil {
		return nil, domain.WrapError(domain.ErrIncompleteCheckout, domain.EINTERNAL, op, "session reached review with missing step data")
	}
	if c.Empty() {
		return nil, domain.WrapError(domain.ErrEmptyCart, domain.EINVALID, op, "cannot place an order from an empty cart")
	}
	if c.HasBlockingStockIssues() {
		return nil, domain.WrapError(domain.ErrStockBlocked, domain.ECONFLICT, op, "an item in the cart is out of stock")
	}

	now := a.clock()
	summary := c.SummaryWithShipping(s.option.PriceCents)

	order := &domain.Order{
		OrderNumber: a.ids.OrderNumber(now),
		Items:       summary.Items,
		Delivery:    *s.option,
		Payment:     redactPayment(*s.payment),
		Totals: domain.OrderTotals{
			SubtotalCents: summary.SubtotalCents,
			DiscountCents: summary.DiscountCents,
			ShippingCents: summary.ShippingCents,
			TaxCents:      summary.TaxCents,
			TotalCents:    summary.TotalCents,
		},
		CreatedAt: now,
	}
	if summary.Promo != nil {
		order.PromoCode = summary.Promo.Code
	}
	return order, nil
}
