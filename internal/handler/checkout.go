package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/markethub/storefront/internal/domain"
	"github.com/markethub/storefront/internal/money"
)

// checkoutStateResponse is the wire shape of the wizard state.
type checkoutStateResponse struct {
	Step             string                  `json:"step"`
	StepIndex        int                     `json:"stepIndex"`
	ShippingAddress  *domain.ShippingAddress `json:"shippingAddress,omitempty"`
	SelectedDelivery *deliveryResponse       `json:"selectedDelivery,omitempty"`
	Payment          *paymentResponse        `json:"payment,omitempty"`
	OrderNumber      string                  `json:"orderNumber,omitempty"`
}

type deliveryResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Price      string `json:"price"`
	ETA        string `json:"eta"`
}

type paymentResponse struct {
	Method         string `json:"method"`
	CardLast4      string `json:"cardLast4,omitempty"`
	CardholderName string `json:"cardholderName,omitempty"`
	ExpiryMonth    string `json:"expiryMonth,omitempty"`
	ExpiryYear     string `json:"expiryYear,omitempty"`
}

func toCheckoutStateResponse(st *domain.CheckoutState) checkoutStateResponse {
	resp := checkoutStateResponse{
		Step:            string(st.Step),
		StepIndex:       st.Step.Index(),
		ShippingAddress: st.ShippingAddress,
		OrderNumber:     st.OrderNumber,
	}
	if st.SelectedDelivery != nil {
		resp.SelectedDelivery = &deliveryResponse{
			ID:         st.SelectedDelivery.ID,
			Name:       st.SelectedDelivery.Name,
			PriceCents: st.SelectedDelivery.PriceCents,
			Price:      money.FormatCents(st.SelectedDelivery.PriceCents),
			ETA:        st.SelectedDelivery.ETA,
		}
	}
	if st.Payment != nil {
		resp.Payment = &paymentResponse{
			Method:         string(st.Payment.Method),
			CardLast4:      st.Payment.CardLast4,
			CardholderName: st.Payment.CardholderName,
			ExpiryMonth:    st.Payment.ExpiryMonth,
			ExpiryYear:     st.Payment.ExpiryYear,
		}
	}
	return resp
}

// orderResponse is the wire shape of a placed order.
type orderResponse struct {
	OrderNumber string             `json:"orderNumber"`
	Items       []lineItemResponse `json:"items"`
	Delivery    deliveryResponse   `json:"delivery"`
	Payment     paymentResponse    `json:"payment"`
	PromoCode   string             `json:"promoCode,omitempty"`

	SubtotalCents int64  `json:"subtotalCents"`
	DiscountCents int64  `json:"discountCents"`
	ShippingCents int64  `json:"shippingCents"`
	TaxCents      int64  `json:"taxCents"`
	TotalCents    int64  `json:"totalCents"`
	Total         string `json:"total"`

	CreatedAt time.Time `json:"createdAt"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	resp := orderResponse{
		OrderNumber: o.OrderNumber,
		Items:       make([]lineItemResponse, len(o.Items)),
		Delivery: deliveryResponse{
			ID:         o.Delivery.ID,
			Name:       o.Delivery.Name,
			PriceCents: o.Delivery.PriceCents,
			Price:      money.FormatCents(o.Delivery.PriceCents),
			ETA:        o.Delivery.ETA,
		},
		Payment: paymentResponse{
			Method:         string(o.Payment.Method),
			CardLast4:      o.Payment.CardLast4,
			CardholderName: o.Payment.CardholderName,
			ExpiryMonth:    o.Payment.ExpiryMonth,
			ExpiryYear:     o.Payment.ExpiryYear,
		},
		PromoCode:     o.PromoCode,
		SubtotalCents: o.Totals.SubtotalCents,
		DiscountCents: o.Totals.DiscountCents,
		ShippingCents: o.Totals.ShippingCents,
		TaxCents:      o.Totals.TaxCents,
		TotalCents:    o.Totals.TotalCents,
		Total:         money.FormatCents(o.Totals.TotalCents),
		CreatedAt:     o.CreatedAt,
	}
	for i, li := range o.Items {
		resp.Items[i] = lineItemResponse{
			ID:             li.ID,
			ProductID:      li.ProductID,
			Name:           li.Name,
			UnitPriceCents: li.UnitPriceCents,
			UnitPrice:      money.FormatCents(li.UnitPriceCents),
			Quantity:       li.Quantity,
			Stock:          li.StockCeiling,
			VariantLabel:   li.VariantLabel,
			ImageURL:       li.ImageURL,
			Seller:         li.Seller,
			SubtotalCents:  li.LineSubtotalCents(),
		}
	}
	return resp
}

// BeginCheckout starts (or resumes) the checkout wizard.
func (h *Handler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	state, err := h.checkout.Begin(r.Context(), sessionToken(r))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCheckoutStateResponse(state))
}

// CheckoutState returns the wizard state without mutating it.
func (h *Handler) CheckoutState(w http.ResponseWriter, r *http.Request) {
	state, err := h.checkout.State(r.Context(), sessionToken(r))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCheckoutStateResponse(state))
}

// shippingRequest mirrors domain.ShippingAddress but keeps sameBilling a
// pointer: a form that never mentions it means "billing matches shipping".
type shippingRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Apartment   string `json:"apartment"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`
	SaveAddress bool   `json:"saveAddress"`
	SameBilling *bool  `json:"sameBilling"`
}

// SubmitShipping validates the shipping form and advances the wizard.
func (h *Handler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	var req shippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, domain.Invalid("checkout.submit_shipping", "Invalid JSON body"))
		return
	}

	addr := domain.ShippingAddress{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Apartment:   req.Apartment,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Country:     req.Country,
		SaveAddress: req.SaveAddress,
		SameBilling: req.SameBilling == nil || *req.SameBilling,
	}

	state, err := h.checkout.SubmitShipping(r.Context(), sessionToken(r), addr)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCheckoutStateResponse(state))
}

// SelectDelivery records the chosen delivery option and advances.
func (h *Handler) SelectDelivery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OptionID string `json:"optionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, domain.Invalid("checkout.select_delivery", "Invalid JSON body"))
		return
	}

	state, err := h.checkout.SelectDelivery(r.Context(), sessionToken(r), req.OptionID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCheckoutStateResponse(state))
}

// SubmitPayment validates the payment form and advances.
func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.PaymentDetails
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, domain.Invalid("checkout.submit_payment", "Invalid JSON body"))
		return
	}

	state, err := h.checkout.SubmitPayment(r.Context(), sessionToken(r), req)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCheckoutStateResponse(state))
}

// StepBack moves the wizard one step backward. Backing out of the first
// step tells the client to return to the cart.
func (h *Handler) StepBack(w http.ResponseWriter, r *http.Request) {
	state, err := h.checkout.Back(r.Context(), sessionToken(r))
	if err != nil {
		if errors.Is(err, domain.ErrExitCheckout) {
			JSONResponse(w, http.StatusOK, map[string]interface{}{"exited": true})
			return
		}
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCheckoutStateResponse(state))
}

// PlaceOrder assembles the order and moves the wizard to confirmation.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TermsAccepted bool `json:"termsAccepted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, domain.Invalid("checkout.place_order", "Invalid JSON body"))
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), sessionToken(r), req.TermsAccepted)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusCreated, toOrderResponse(order))
}

// GetOrder returns the order placed in this session.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkout.Order(r.Context(), sessionToken(r))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toOrderResponse(order))
}
