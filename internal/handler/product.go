package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markethub/storefront/internal/domain"
	"github.com/markethub/storefront/internal/money"
)

// productResponse is the wire shape of a catalog product.
type productResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	PriceCents         int64   `json:"priceCents"`
	Price              string  `json:"price"`
	OriginalPriceCents int64   `json:"originalPriceCents,omitempty"`
	ImageURL           string  `json:"imageUrl,omitempty"`
	Seller             string  `json:"seller"`
	SellerRating       float64 `json:"sellerRating,omitempty"`
	Rating             float64 `json:"rating,omitempty"`
	Reviews            int     `json:"reviews,omitempty"`
	Stock              int     `json:"stock"`
	InStock            bool    `json:"inStock"`
	VariantLabel       string  `json:"variantLabel,omitempty"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:                 p.ID,
		Name:               p.Name,
		PriceCents:         p.PriceCents,
		Price:              money.FormatCents(p.PriceCents),
		OriginalPriceCents: p.OriginalPriceCents,
		ImageURL:           p.ImageURL,
		Seller:             p.Seller,
		SellerRating:       p.SellerRating,
		Rating:             p.Rating,
		Reviews:            p.Reviews,
		Stock:              p.Stock,
		InStock:            p.InStock(),
		VariantLabel:       p.VariantLabel,
	}
}

// ListProducts returns the catalog, filtered by the q query parameter.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	JSONResponse(w, http.StatusOK, map[string]interface{}{"products": out})
}

// GetProduct returns a single product by id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toProductResponse(*p))
}

// ListDeliveryOptions returns the delivery options shown at the delivery
// step, cheapest first.
func (h *Handler) ListDeliveryOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.options.Options(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	type optionResponse struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		PriceCents int64  `json:"priceCents"`
		Price      string `json:"price"`
		ETA        string `json:"eta"`
	}
	out := make([]optionResponse, len(opts))
	for i, o := range opts {
		out[i] = optionResponse{
			ID:         o.ID,
			Name:       o.Name,
			PriceCents: o.PriceCents,
			Price:      money.FormatCents(o.PriceCents),
			ETA:        o.ETA,
		}
	}
	JSONResponse(w, http.StatusOK, map[string]interface{}{"options": out})
}
