package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markethub/storefront/internal/catalog"
	"github.com/markethub/storefront/internal/domain"
)

func TestMemoryRepository_GetByID(t *testing.T) {
	repo := catalog.NewMemoryRepository(catalog.Fixtures())

	p, err := repo.GetByID(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, "Apple iPhone 15 Pro Max 256GB - Natural Titanium", p.Name)
	assert.Equal(t, int64(119999), p.PriceCents)
	assert.Equal(t, 15, p.Stock)
	assert.True(t, p.InStock())
}

func TestMemoryRepository_GetByID_NotFound(t *testing.T) {
	repo := catalog.NewMemoryRepository(catalog.Fixtures())

	p, err := repo.GetByID(context.Background(), "no-such-product")

	assert.Nil(t, p)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestMemoryRepository_GetByID_ReturnsCopy(t *testing.T) {
	repo := catalog.NewMemoryRepository(catalog.Fixtures())

	p, err := repo.GetByID(context.Background(), "2")
	require.NoError(t, err)
	p.Stock = 0

	fresh, err := repo.GetByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, 8, fresh.Stock, "catalog records must not be mutable through returned pointers")
}

func TestMemoryRepository_Search(t *testing.T) {
	repo := catalog.NewMemoryRepository(catalog.Fixtures())

	tests := []struct {
		name          string
		query         string
		expectedNames []string
	}{
		{
			name:  "case insensitive substring",
			query: "iphone",
			expectedNames: []string{
				"Apple iPhone 15 Pro Max 256GB - Natural Titanium",
				"iPhone 15 Pro Clear Case",
			},
		},
		{
			name:          "no matches",
			query:         "toaster",
			expectedNames: nil,
		},
		{
			name:          "single match",
			query:         "QLED",
			expectedNames: []string{"Samsung 65\" QLED 4K Smart TV (QN65Q80C)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := repo.Search(context.Background(), tt.query)
			require.NoError(t, err)

			var names []string
			for _, p := range results {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

func TestMemoryRepository_Search_EmptyQueryReturnsAll(t *testing.T) {
	fixtures := catalog.Fixtures()
	repo := catalog.NewMemoryRepository(fixtures)

	results, err := repo.Search(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, results, len(fixtures))
}

func TestMemoryRepository_Search_Deterministic(t *testing.T) {
	repo := catalog.NewMemoryRepository(catalog.Fixtures())

	first, err := repo.Search(context.Background(), "apple")
	require.NoError(t, err)
	second, err := repo.Search(context.Background(), "apple")
	require.NoError(t, err)

	assert.Equal(t, first, second, "repeated searches must return identical orderings")
}

func TestFixtures_IncludeOutOfStockItem(t *testing.T) {
	var outOfStock int
	for _, p := range catalog.Fixtures() {
		if !p.InStock() {
			outOfStock++
		}
	}
	assert.Equal(t, 1, outOfStock, "exactly one fixture exercises the blocking-stock path")
}

func TestMemoryRepository_SetStock(t *testing.T) {
	repo := catalog.NewMemoryRepository(catalog.Fixtures())

	require.NoError(t, repo.SetStock("1", 0))
	p, err := repo.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
	assert.False(t, p.InStock())

	err = repo.SetStock("missing", 5)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
