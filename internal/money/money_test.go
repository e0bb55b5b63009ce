package money_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/markethub/storefront/internal/money"
)

func TestSubtotal_BasicSums(t *testing.T) {
	tests := []struct {
		name        string
		lines       []money.Line
		expected    int64
		explanation string
	}{
		{
			name:        "empty cart",
			lines:       nil,
			expected:    0,
			explanation: "zero items means zero subtotal",
		},
		{
			name:        "single line",
			lines:       []money.Line{{UnitPriceCents: 1999, Quantity: 1}},
			expected:    1999,
			explanation: "1999 * 1 = 1999",
		},
		{
			name: "quantity multiplies",
			lines: []money.Line{
				{UnitPriceCents: 1999, Quantity: 3},
			},
			expected:    5997,
			explanation: "1999 * 3 = 5997",
		},
		{
			name: "two premium items",
			lines: []money.Line{
				{UnitPriceCents: 19999, Quantity: 1},
				{UnitPriceCents: 29999, Quantity: 1},
			},
			expected:    49998,
			explanation: "199.99 + 299.99 = 499.98",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, money.Subtotal(tt.lines), tt.explanation)
		})
	}
}

func TestSubtotal_OrderIndependent(t *testing.T) {
	lines := []money.Line{
		{UnitPriceCents: 119999, Quantity: 1},
		{UnitPriceCents: 34999, Quantity: 2},
		{UnitPriceCents: 129999, Quantity: 1},
		{UnitPriceCents: 3999, Quantity: 5},
	}
	want := money.Subtotal(lines)

	// Summation is commutative: every permutation yields the same subtotal.
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]money.Line, len(lines))
		copy(shuffled, lines)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, money.Subtotal(shuffled))
	}
}

func TestClampDiscount(t *testing.T) {
	tests := []struct {
		name     string
		discount int64
		subtotal int64
		expected int64
	}{
		{"discount below subtotal", 1000, 5000, 1000},
		{"discount equals subtotal", 5000, 5000, 5000},
		{"discount exceeds subtotal", 9000, 5000, 5000},
		{"negative discount clamps to zero", -100, 5000, 0},
		{"zero subtotal", 2000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, money.ClampDiscount(tt.discount, tt.subtotal))
		})
	}
}

func TestTax_RoundHalfUp(t *testing.T) {
	tests := []struct {
		name        string
		taxable     int64
		expected    int64
		explanation string
	}{
		{"exact cents", 1000, 80, "1000 * 0.08 = 80.0 exactly"},
		{"rounds down below midpoint", 1040, 83, "1040 * 0.08 = 83.2 rounds to 83"},
		{"rounds up above midpoint", 1062, 85, "1062 * 0.08 = 84.96 rounds to 85"},
		{"fractional cents round nearest", 9031, 722, "9031 * 0.08 = 722.48 rounds to 722"},
		{"spec scenario", 49998, 4000, "49998 * 0.08 = 3999.84 rounds to 4000"},
		{"save10 scenario", 9000, 720, "9000 * 0.08 = 720 exactly"},
		{"zero taxable", 0, 0, "no taxable amount, no tax"},
		{"negative taxable", -500, 0, "negative taxable amounts never produce tax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, money.Tax(tt.taxable, money.TaxRate), tt.explanation)
		})
	}
}

func TestTax_ExplicitHalfUpMidpoint(t *testing.T) {
	// 0.125 * 1234 = 154.25; 0.125 * 1236 = 154.5 which must round up to 155.
	rate := decimal.RequireFromString("0.125")
	assert.Equal(t, int64(154), money.Tax(1234, rate), "154.25 rounds down")
	assert.Equal(t, int64(155), money.Tax(1236, rate), "154.5 rounds half up")
}

func TestPercentage(t *testing.T) {
	ten := decimal.RequireFromString("0.1")

	tests := []struct {
		name        string
		amount      int64
		expected    int64
		explanation string
	}{
		{"ten percent of $100", 10000, 1000, "SAVE10 on a $100.00 subtotal is $10.00"},
		{"ten percent with rounding", 4999, 500, "4999 * 0.1 = 499.9 rounds to 500"},
		{"zero amount", 0, 0, "nothing to discount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, money.Percentage(tt.amount, ten), tt.explanation)
		})
	}
}

func TestTotal_FloorAtShippingPlusTax(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		discount int64
		shipping int64
		tax      int64
		expected int64
	}{
		{"no discount", 49998, 0, 0, 4000, 53998},
		{"save10 on $100 with 8% tax", 10000, 1000, 0, 720, 9720},
		{"discount exceeding subtotal floors at shipping+tax", 2000, 9999, 999, 0, 999},
		{"everything zero", 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.Total(tt.subtotal, tt.discount, tt.shipping, tt.tax)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, tt.shipping+tt.tax,
				"discount can never push the total below the shipping+tax floor")
		})
	}
}

func TestCartShipping_Threshold(t *testing.T) {
	tests := []struct {
		name        string
		subtotal    int64
		expected    int64
		explanation string
	}{
		{"under threshold", 4999, 999, "$49.99 pays standard shipping"},
		{"at threshold", 5000, 999, "free shipping requires strictly more than $50"},
		{"above threshold", 5001, 0, "$50.01 ships free"},
		{"empty cart", 0, 999, "an empty cart is quoted standard shipping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, money.CartShipping(tt.subtotal), tt.explanation)
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$0.00", money.FormatCents(0))
	assert.Equal(t, "$9.99", money.FormatCents(999))
	assert.Equal(t, "$539.98", money.FormatCents(53998))
	assert.Equal(t, "$1234.56", money.FormatCents(123456))
}
