// Package catalog provides the product repository the cart and checkout
// core reads from. The in-memory implementation is seeded with fixtures.
// The core only reads; stock adjustments arrive from the inventory side
// through SetStock.
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/markethub/storefront/internal/domain"
)

// MemoryRepository is an in-memory product catalog.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.Product
	order []string // insertion order for deterministic listings
}

// NewMemoryRepository creates a repository over the given products.
// Later entries with a duplicate ID replace earlier ones.
func NewMemoryRepository(products []domain.Product) *MemoryRepository {
	r := &MemoryRepository{byID: make(map[string]domain.Product, len(products))}
	for _, p := range products {
		if _, exists := r.byID[p.ID]; !exists {
			r.order = append(r.order, p.ID)
		}
		r.byID[p.ID] = p
	}
	return r
}

// GetByID retrieves a single product by its identifier.
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.NotFound("catalog.get", "product", id)
	}
	cp := p
	return &cp, nil
}

// Search returns products whose name contains the query, case-insensitive.
// An empty query returns the full catalog. Results keep catalog order with
// name as a tiebreaker so repeated searches are deterministic.
func (r *MemoryRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Product
	for _, id := range r.order {
		p := r.byID[id]
		if needle == "" || strings.Contains(strings.ToLower(p.Name), needle) {
			result = append(result, p)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// SetStock adjusts a product's available stock.
func (r *MemoryRepository) SetStock(id string, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return domain.NotFound("catalog.set_stock", "product", id)
	}
	p.Stock = stock
	r.byID[id] = p
	return nil
}
