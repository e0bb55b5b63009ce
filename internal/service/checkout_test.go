package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markethub/storefront/internal/catalog"
	"github.com/markethub/storefront/internal/checkout"
	"github.com/markethub/storefront/internal/delivery"
	"github.com/markethub/storefront/internal/domain"
	"github.com/markethub/storefront/internal/promo"
	"github.com/markethub/storefront/internal/service"
	"github.com/markethub/storefront/internal/session"
)

type checkoutFixture struct {
	cart     domain.CartService
	checkout domain.CheckoutService
	repo     *catalog.MemoryRepository
	token    string
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	repo := catalog.NewMemoryRepository([]domain.Product{
		{ID: "1", Name: "Wireless Headphones", PriceCents: 10000, Stock: 10, Seller: "AudioHub"},
		{ID: "2", Name: "Phone Case", PriceCents: 1999, Stock: 5, Seller: "CaseWorld"},
	})
	store := session.NewStore(session.Options{})
	t.Cleanup(store.Close)

	provider := delivery.NewStorefrontProvider()
	asm := checkout.NewAssembler(checkout.TimestampIDSource{}, func() time.Time {
		return time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	})

	token, err := store.Create()
	require.NoError(t, err)

	return &checkoutFixture{
		cart:     service.NewCartService(store, repo, promo.NewStorefrontResolver()),
		checkout: service.NewCheckoutService(store, repo, provider, asm),
		repo:     repo,
		token:    token,
	}
}

func shippingForm() domain.ShippingAddress {
	return domain.ShippingAddress{
		FirstName:   "Grace",
		LastName:    "Hopper",
		Email:       "grace@example.com",
		Phone:       "555-0199",
		Address:     "1 Harbor Way",
		City:        "Arlington",
		State:       "VA",
		ZipCode:     "22201",
		Country:     "United States",
		SameBilling: true,
	}
}

func cardForm() domain.PaymentDetails {
	return domain.PaymentDetails{
		Method:      domain.PaymentCard,
		CardNumber:  "4111 1111 1111 1111",
		CardName:    "Grace Hopper",
		ExpiryMonth: "09",
		ExpiryYear:  "2029",
		CVV:         "4321",
	}
}

// runToReview drives the fixture's session to the review step.
func runToReview(t *testing.T, f *checkoutFixture) {
	t.Helper()
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, f.token, "1", 1)
	require.NoError(t, err)
	_, err = f.checkout.Begin(ctx, f.token)
	require.NoError(t, err)
	_, err = f.checkout.SubmitShipping(ctx, f.token, shippingForm())
	require.NoError(t, err)
	_, err = f.checkout.SelectDelivery(ctx, f.token, "standard")
	require.NoError(t, err)
	state, err := f.checkout.SubmitPayment(ctx, f.token, cardForm())
	require.NoError(t, err)
	require.Equal(t, domain.StepReview, state.Step)
}

func TestCheckoutService_Begin(t *testing.T) {
	ctx := context.Background()

	t.Run("starts at shipping with default delivery", func(t *testing.T) {
		f := newCheckoutFixture(t)
		_, err := f.cart.AddItem(ctx, f.token, "1", 1)
		require.NoError(t, err)

		state, err := f.checkout.Begin(ctx, f.token)
		require.NoError(t, err)
		assert.Equal(t, domain.StepShipping, state.Step)
		require.NotNil(t, state.SelectedDelivery)
		assert.Equal(t, "standard", state.SelectedDelivery.ID)
	})

	t.Run("empty cart cannot enter checkout", func(t *testing.T) {
		f := newCheckoutFixture(t)
		_, err := f.checkout.Begin(ctx, f.token)
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("begin resumes an in-progress wizard", func(t *testing.T) {
		f := newCheckoutFixture(t)
		_, err := f.cart.AddItem(ctx, f.token, "1", 1)
		require.NoError(t, err)
		_, err = f.checkout.Begin(ctx, f.token)
		require.NoError(t, err)
		_, err = f.checkout.SubmitShipping(ctx, f.token, shippingForm())
		require.NoError(t, err)

		state, err := f.checkout.Begin(ctx, f.token)
		require.NoError(t, err)
		assert.Equal(t, domain.StepDelivery, state.Step, "begin must not restart a wizard in progress")
	})
}

func TestCheckoutService_StepGating(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	_, err := f.cart.AddItem(ctx, f.token, "1", 1)
	require.NoError(t, err)

	// Operations before Begin.
	_, err = f.checkout.SubmitShipping(ctx, f.token, shippingForm())
	assert.ErrorIs(t, err, domain.ErrCheckoutNotStarted)

	_, err = f.checkout.Begin(ctx, f.token)
	require.NoError(t, err)

	// Skipping ahead from the shipping step.
	_, err = f.checkout.SelectDelivery(ctx, f.token, "express")
	assert.ErrorIs(t, err, domain.ErrWrongStep)
	_, err = f.checkout.SubmitPayment(ctx, f.token, cardForm())
	assert.ErrorIs(t, err, domain.ErrWrongStep)
	_, err = f.checkout.PlaceOrder(ctx, f.token, true)
	assert.ErrorIs(t, err, domain.ErrWrongStep)
}

func TestCheckoutService_InvalidShippingNeverAdvances(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	_, err := f.cart.AddItem(ctx, f.token, "1", 1)
	require.NoError(t, err)
	_, err = f.checkout.Begin(ctx, f.token)
	require.NoError(t, err)

	addr := shippingForm()
	addr.Email = ""
	_, err = f.checkout.SubmitShipping(ctx, f.token, addr)
	require.True(t, domain.IsValidationError(err))
	assert.Equal(t, "Email is required", domain.GetValidationFields(err)["email"])

	state, err := f.checkout.State(ctx, f.token)
	require.NoError(t, err)
	assert.Equal(t, domain.StepShipping, state.Step)
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles order and clears cart", func(t *testing.T) {
		f := newCheckoutFixture(t)
		runToReview(t, f)

		order, err := f.checkout.PlaceOrder(ctx, f.token, true)
		require.NoError(t, err)
		assert.Equal(t, "MHP00966000", order.OrderNumber)
		assert.Equal(t, int64(10000), order.Totals.SubtotalCents)
		assert.Equal(t, int64(0), order.Totals.ShippingCents)
		assert.Equal(t, int64(800), order.Totals.TaxCents)
		assert.Equal(t, int64(10800), order.Totals.TotalCents)
		assert.Equal(t, "1111", order.Payment.CardLast4)

		summary, err := f.cart.GetSummary(ctx, f.token)
		require.NoError(t, err)
		assert.Empty(t, summary.Items)

		state, err := f.checkout.State(ctx, f.token)
		require.NoError(t, err)
		assert.Equal(t, domain.StepConfirmation, state.Step)
		assert.Equal(t, order.OrderNumber, state.OrderNumber)
	})

	t.Run("terms must be accepted", func(t *testing.T) {
		f := newCheckoutFixture(t)
		runToReview(t, f)

		_, err := f.checkout.PlaceOrder(ctx, f.token, false)
		require.True(t, domain.IsValidationError(err))
		assert.Contains(t, domain.GetValidationFields(err), "terms")

		state, err := f.checkout.State(ctx, f.token)
		require.NoError(t, err)
		assert.Equal(t, domain.StepReview, state.Step)
	})

	t.Run("stock sold out between review and placement", func(t *testing.T) {
		f := newCheckoutFixture(t)
		runToReview(t, f)
		require.NoError(t, f.repo.SetStock("1", 0))

		_, err := f.checkout.PlaceOrder(ctx, f.token, true)
		assert.ErrorIs(t, err, domain.ErrStockBlocked)
	})

	t.Run("order number is stable across reads", func(t *testing.T) {
		f := newCheckoutFixture(t)
		runToReview(t, f)

		placed, err := f.checkout.PlaceOrder(ctx, f.token, true)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			got, err := f.checkout.Order(ctx, f.token)
			require.NoError(t, err)
			assert.Equal(t, placed.OrderNumber, got.OrderNumber)
		}
	})

	t.Run("confirmation always carries a complete shipping address", func(t *testing.T) {
		f := newCheckoutFixture(t)
		runToReview(t, f)
		_, err := f.checkout.PlaceOrder(ctx, f.token, true)
		require.NoError(t, err)

		state, err := f.checkout.State(ctx, f.token)
		require.NoError(t, err)
		require.Equal(t, domain.StepConfirmation, state.Step)
		require.NotNil(t, state.ShippingAddress)
		assert.NotEmpty(t, state.ShippingAddress.Email)
		assert.NotEmpty(t, state.ShippingAddress.FirstName)
	})
}

func TestCheckoutService_Back(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	runToReview(t, f)

	state, err := f.checkout.Back(ctx, f.token)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, state.Step)
	require.NotNil(t, state.Payment, "payment data survives backward navigation")

	_, err = f.checkout.Back(ctx, f.token)
	require.NoError(t, err)
	_, err = f.checkout.Back(ctx, f.token)
	require.NoError(t, err)
	_, err = f.checkout.Back(ctx, f.token)
	assert.ErrorIs(t, err, domain.ErrExitCheckout)
}

func TestCheckoutService_NewOrderAfterConfirmation(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	runToReview(t, f)

	first, err := f.checkout.PlaceOrder(ctx, f.token, true)
	require.NoError(t, err)
	require.NotEmpty(t, first.OrderNumber)

	// The cart was cleared, so a fresh wizard needs a fresh cart.
	_, err = f.checkout.Begin(ctx, f.token)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = f.cart.AddItem(ctx, f.token, "2", 1)
	require.NoError(t, err)

	state, err := f.checkout.Begin(ctx, f.token)
	require.NoError(t, err)
	assert.Equal(t, domain.StepShipping, state.Step, "a confirmed wizard resets for the next order")
	assert.Empty(t, state.OrderNumber)

	// The first order leaves with its wizard, the same way the
	// confirmation page does when the shopper starts a new purchase.
	_, err = f.checkout.Order(ctx, f.token)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}