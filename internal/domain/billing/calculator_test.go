package billing

import (
	"testing"

	"github.com/hms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeLine(t *testing.T) {
	t.Run("computes amount, tax and total", func(t *testing.T) {
		totals, err := ComputeLine(dec("100"), 3, dec("10"))
		require.NoError(t, err)

		assert.True(t, totals.Amount.Equal(dec("300")), "amount = %s", totals.Amount)
		assert.True(t, totals.TaxAmount.Equal(dec("30")), "tax = %s", totals.TaxAmount)
		assert.True(t, totals.Total.Equal(dec("330")), "total = %s", totals.Total)
	})

	t.Run("zero tax", func(t *testing.T) {
		totals, err := ComputeLine(dec("49.99"), 2, decimal.Zero)
		require.NoError(t, err)

		assert.True(t, totals.Amount.Equal(dec("99.98")))
		assert.True(t, totals.TaxAmount.IsZero())
		assert.True(t, totals.Total.Equal(dec("99.98")))
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		tests := []struct {
			name       string
			unitPrice  string
			quantity   int64
			taxPercent string
			wantCode   string
		}{
			{"zero quantity", "10", 0, "0", "INVALID_QUANTITY"},
			{"negative quantity", "10", -2, "0", "INVALID_QUANTITY"},
			{"negative price", "-1", 1, "0", "INVALID_PRICE"},
			{"negative tax", "10", 1, "-5", "INVALID_TAX"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ComputeLine(dec(tt.unitPrice), tt.quantity, dec(tt.taxPercent))
				require.Error(t, err)

				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, tt.wantCode, domainErr.Code)
			})
		}
	})
}

func TestApplyDiscount(t *testing.T) {
	t.Run("percentage discount", func(t *testing.T) {
		net, err := ApplyDiscount(dec("330"), dec("5"), DiscountTypePercentage)
		require.NoError(t, err)
		assert.True(t, net.Equal(dec("313.5")), "net = %s", net)
	})

	t.Run("fixed discount", func(t *testing.T) {
		net, err := ApplyDiscount(dec("330"), dec("30"), DiscountTypeFixed)
		require.NoError(t, err)
		assert.True(t, net.Equal(dec("300")))
	})

	t.Run("zero discount is idempotent for both types", func(t *testing.T) {
		for _, dt := range []DiscountType{DiscountTypeFixed, DiscountTypePercentage} {
			net, err := ApplyDiscount(dec("123.45"), decimal.Zero, dt)
			require.NoError(t, err)
			assert.True(t, net.Equal(dec("123.45")), "type %s", dt)
		}
	})

	t.Run("rejects percentage above 100", func(t *testing.T) {
		_, err := ApplyDiscount(dec("100"), dec("101"), DiscountTypePercentage)
		require.Error(t, err)
	})

	t.Run("rejects fixed discount above total", func(t *testing.T) {
		_, err := ApplyDiscount(dec("100"), dec("100.01"), DiscountTypeFixed)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DISCOUNT", domainErr.Code)
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		_, err := ApplyDiscount(dec("100"), dec("-1"), DiscountTypeFixed)
		require.Error(t, err)
	})

	t.Run("rejects unknown discount type", func(t *testing.T) {
		_, err := ApplyDiscount(dec("100"), dec("1"), DiscountType("bogus"))
		require.Error(t, err)
	})
}

func TestAggregateLines(t *testing.T) {
	t.Run("single line round-trips to the single-line formula", func(t *testing.T) {
		line := LineInput{UnitPrice: dec("100"), Quantity: 3, TaxPercent: dec("10")}

		lineTotals, err := ComputeLine(line.UnitPrice, line.Quantity, line.TaxPercent)
		require.NoError(t, err)
		net, err := ApplyDiscount(lineTotals.Total, dec("5"), DiscountTypePercentage)
		require.NoError(t, err)

		orderTotals, err := AggregateLines([]LineInput{line}, dec("5"), DiscountTypePercentage)
		require.NoError(t, err)

		assert.True(t, orderTotals.Amount.Equal(lineTotals.Amount))
		assert.True(t, orderTotals.TaxAmount.Equal(lineTotals.TaxAmount))
		assert.True(t, orderTotals.Total.Equal(lineTotals.Total))
		assert.True(t, orderTotals.NetAmount.Equal(net))
		assert.True(t, orderTotals.NetAmount.Equal(dec("313.5")))
	})

	t.Run("sums amounts and tax across lines", func(t *testing.T) {
		lines := []LineInput{
			{UnitPrice: dec("50"), Quantity: 2, TaxPercent: dec("10")},  // 100 + 10
			{UnitPrice: dec("20"), Quantity: 5, TaxPercent: dec("5")},   // 100 + 5
			{UnitPrice: dec("30"), Quantity: 1, TaxPercent: decimal.Zero}, // 30 + 0
		}

		totals, err := AggregateLines(lines, dec("35"), DiscountTypeFixed)
		require.NoError(t, err)

		assert.True(t, totals.Amount.Equal(dec("230")))
		assert.True(t, totals.TaxAmount.Equal(dec("15")))
		assert.True(t, totals.Total.Equal(dec("245")))
		assert.True(t, totals.NetAmount.Equal(dec("210")))
	})

	t.Run("empty order aggregates to zero", func(t *testing.T) {
		totals, err := AggregateLines(nil, decimal.Zero, DiscountTypeFixed)
		require.NoError(t, err)
		assert.True(t, totals.NetAmount.IsZero())
	})

	t.Run("propagates line validation errors", func(t *testing.T) {
		_, err := AggregateLines([]LineInput{{UnitPrice: dec("10"), Quantity: 0}}, decimal.Zero, DiscountTypeFixed)
		require.Error(t, err)
	})
}
