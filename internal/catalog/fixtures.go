package catalog

import "github.com/markethub/storefront/internal/domain"

// Fixtures returns the demo catalog used when no other product source is
// configured. Stock ceilings are deliberately varied: one item is out of
// stock so the blocking-stock path stays exercised end to end.
func Fixtures() []domain.Product {
	return []domain.Product{
		{
			ID:                 "1",
			Name:               "Apple iPhone 15 Pro Max 256GB - Natural Titanium",
			PriceCents:         119999,
			OriginalPriceCents: 129999,
			ImageURL:           "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=400&h=400&fit=crop",
			Seller:             "Apple Store Official",
			SellerRating:       4.9,
			Rating:             4.8,
			Reviews:            2100,
			Stock:              15,
			VariantLabel:       "256GB, Natural Titanium",
		},
		{
			ID:                 "2",
			Name:               "Sony WH-1000XM5 Wireless Noise Canceling Headphones",
			PriceCents:         34999,
			OriginalPriceCents: 39999,
			ImageURL:           "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop",
			Seller:             "Sony Electronics",
			SellerRating:       4.8,
			Rating:             4.7,
			Reviews:            1580,
			Stock:              8,
			VariantLabel:       "Black",
		},
		{
			ID:                 "3",
			Name:               "Samsung 65\" QLED 4K Smart TV (QN65Q80C)",
			PriceCents:         129999,
			OriginalPriceCents: 149999,
			ImageURL:           "https://images.unsplash.com/photo-1593359677879-a4bb92f829d1?w=400&h=400&fit=crop",
			Seller:             "Samsung Official Store",
			SellerRating:       4.7,
			Rating:             4.6,
			Reviews:            890,
			Stock:              3,
			VariantLabel:       "65 inch, QLED",
		},
		{
			ID:           "4",
			Name:         "MacBook Air M2 13-inch Laptop",
			PriceCents:   99999,
			ImageURL:     "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=400&h=400&fit=crop",
			Seller:       "Apple Store Official",
			SellerRating: 4.9,
			Rating:       4.8,
			Reviews:      1120,
			Stock:        0,
			VariantLabel: "13-inch, Space Gray, 256GB",
		},
		{
			ID:                 "101",
			Name:               "Apple MagSafe Charger",
			PriceCents:         3999,
			OriginalPriceCents: 4999,
			ImageURL:           "https://images.unsplash.com/photo-1583394838336-acd977736f90?w=300&h=300&fit=crop",
			Seller:             "Apple Store Official",
			SellerRating:       4.9,
			Rating:             4.6,
			Reviews:            1250,
			Stock:              25,
		},
		{
			ID:           "102",
			Name:         "iPhone 15 Pro Clear Case",
			PriceCents:   4999,
			ImageURL:     "https://images.unsplash.com/photo-1556656793-08538906a9f8?w=300&h=300&fit=crop",
			Seller:       "Apple Store Official",
			SellerRating: 4.9,
			Rating:       4.4,
			Reviews:      890,
			Stock:        50,
		},
		{
			ID:                 "103",
			Name:               "AirPods Pro (2nd Generation)",
			PriceCents:         24999,
			OriginalPriceCents: 27999,
			ImageURL:           "https://images.unsplash.com/photo-1606220945770-b5b6c2c55bf1?w=300&h=300&fit=crop",
			Seller:             "Apple Store Official",
			SellerRating:       4.9,
			Rating:             4.8,
			Reviews:            2100,
			Stock:              12,
		},
		{
			ID:           "201",
			Name:         "iPad Air 5th Generation",
			PriceCents:   59999,
			OriginalPriceCents: 64999,
			ImageURL:     "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0?w=300&h=300&fit=crop",
			Seller:       "Apple Store Official",
			SellerRating: 4.9,
			Rating:       4.7,
			Reviews:      1580,
			Stock:        22,
		},
		{
			ID:           "202",
			Name:         "Apple Watch Series 9",
			PriceCents:   39999,
			ImageURL:     "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=300&h=300&fit=crop",
			Seller:       "Apple Store Official",
			SellerRating: 4.9,
			Rating:       4.8,
			Reviews:      2340,
			Stock:        15,
		},
	}
}
