package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markethub/storefront/internal/domain"
	"github.com/markethub/storefront/internal/money"
)

// lineItemResponse is the wire shape of one cart line.
type lineItemResponse struct {
	ID             string `json:"id"`
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	UnitPrice      string `json:"unitPrice"`
	Quantity       int    `json:"quantity"`
	Stock          int    `json:"stock"`
	VariantLabel   string `json:"variantLabel,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
	Seller         string `json:"seller"`
	SubtotalCents  int64  `json:"subtotalCents"`
}

// cartResponse is the wire shape of the cart summary.
type cartResponse struct {
	Items     []lineItemResponse `json:"items"`
	ItemCount int                `json:"itemCount"`

	Promo *promoResponse `json:"promo,omitempty"`

	SubtotalCents int64  `json:"subtotalCents"`
	DiscountCents int64  `json:"discountCents"`
	ShippingCents int64  `json:"shippingCents"`
	TaxCents      int64  `json:"taxCents"`
	TotalCents    int64  `json:"totalCents"`
	Total         string `json:"total"`

	BlockingStockIssues bool `json:"blockingStockIssues"`
}

type promoResponse struct {
	Code          string `json:"code"`
	Description   string `json:"description"`
	DiscountCents int64  `json:"discountCents"`
}

func toCartResponse(s *domain.CartSummary) cartResponse {
	resp := cartResponse{
		Items:               make([]lineItemResponse, len(s.Items)),
		ItemCount:           s.ItemCount,
		SubtotalCents:       s.SubtotalCents,
		DiscountCents:       s.DiscountCents,
		ShippingCents:       s.ShippingCents,
		TaxCents:            s.TaxCents,
		TotalCents:          s.TotalCents,
		Total:               money.FormatCents(s.TotalCents),
		BlockingStockIssues: s.BlockingStockIssues,
	}
	for i, li := range s.Items {
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
	if s.Promo != nil {
		resp.Promo = &promoResponse{
			Code:          s.Promo.Code,
			Description:   s.Promo.Description,
			DiscountCents: s.Promo.DiscountCents,
		}
	}
	return resp
}

// GetCart returns the session's cart with freshly computed totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cart.GetSummary(r.Context(), sessionToken(r))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCartResponse(summary))
}

// AddCartItem adds a product to the cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, domain.Invalid("cart.add_item", "Invalid JSON body"))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	summary, err := h.cart.AddItem(r.Context(), sessionToken(r), req.ProductID, req.Quantity)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCartResponse(summary))
}

// SetCartItemQuantity sets a line item's quantity; zero removes it.
func (h *Handler) SetCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		ErrorResponse(w, r, domain.Invalid("cart.set_quantity", "Invalid JSON body"))
		return
	}

	summary, err := h.cart.SetQuantity(r.Context(), sessionToken(r), chi.URLParam(r, "id"), *req.Quantity)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCartResponse(summary))
}

// RemoveCartItem removes a line item. Removing it twice is fine.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cart.RemoveItem(r.Context(), sessionToken(r), chi.URLParam(r, "id"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCartResponse(summary))
}

// MoveCartItemToWishlist moves a line item to the session wishlist.
func (h *Handler) MoveCartItemToWishlist(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cart.MoveToWishlist(r.Context(), sessionToken(r), chi.URLParam(r, "id"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCartResponse(summary))
}

// ApplyPromo attaches a promo code to the cart.
func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, domain.Invalid("cart.apply_promo", "Invalid JSON body"))
		return
	}

	summary, err := h.cart.ApplyPromo(r.Context(), sessionToken(r), req.Code)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCartResponse(summary))
}

// RemovePromo detaches the active promo code.
func (h *Handler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cart.RemovePromo(r.Context(), sessionToken(r))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toCartResponse(summary))
}
