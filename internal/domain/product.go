package domain

import "context"

// Product domain errors.
var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
)

// ProductRepository supplies catalog records to the cart and checkout core.
// The core treats the catalog as a read-only external data source.
type ProductRepository interface {
	// GetByID retrieves a single product by its identifier.
	GetByID(ctx context.Context, id string) (*Product, error)

	// Search returns products whose name matches the query, ordered
	// deterministically. An empty query returns the full catalog.
	Search(ctx context.Context, query string) ([]Product, error)
}

// Product represents a catalog record as the storefront displays it.
type Product struct {
	ID                 string
	Name               string
	PriceCents         int64
	OriginalPriceCents int64 // zero when the product is not discounted
	ImageURL           string
	Seller             string
	SellerRating       float64
	Rating             float64
	Reviews            int
	Stock              int // purchasable quantity ceiling; zero means out of stock
	VariantLabel       string
}

// InStock reports whether the product can currently be added to a cart.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
