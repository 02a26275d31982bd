package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInsurance(t *testing.T) {
	t.Run("creates active plan with zero totals", func(t *testing.T) {
		ins, err := NewInsurance("MediCare Plus", "MediCare")
		require.NoError(t, err)

		assert.Equal(t, InsuranceStatusActive, ins.Status)
		assert.True(t, ins.NetAmount.IsZero())
		assert.Empty(t, ins.Items)
		assert.Equal(t, 1, ins.Version)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewInsurance("", "MediCare")
		require.Error(t, err)
	})
}

func TestInsurance_ItemCascade(t *testing.T) {
	ins, err := NewInsurance("MediCare Plus", "MediCare")
	require.NoError(t, err)

	item, err := ins.AddItem("General Ward", LineInput{UnitPrice: dec("100"), Quantity: 3, TaxPercent: dec("10")})
	require.NoError(t, err)

	// amount=300, tax=30, total=330
	assert.True(t, ins.Amount.Equal(dec("300")))
	assert.True(t, ins.TaxAmount.Equal(dec("30")))
	assert.True(t, ins.TotalAmount.Equal(dec("330")))
	assert.True(t, ins.NetAmount.Equal(dec("330")), "no discount yet")

	t.Run("discount recomputes net", func(t *testing.T) {
		require.NoError(t, ins.SetDiscount(dec("5"), DiscountTypePercentage))
		assert.True(t, ins.NetAmount.Equal(dec("313.5")), "net = %s", ins.NetAmount)
	})

	t.Run("updating an item reruns the full cascade", func(t *testing.T) {
		require.NoError(t, ins.UpdateItem(item.ID, LineInput{UnitPrice: dec("200"), Quantity: 1, TaxPercent: decimal.Zero}))

		assert.True(t, ins.TotalAmount.Equal(dec("200")))
		assert.True(t, ins.NetAmount.Equal(dec("190")), "percentage discount survives, net = %s", ins.NetAmount)
	})

	t.Run("removing the item zeroes everything", func(t *testing.T) {
		require.NoError(t, ins.RemoveItem(item.ID))
		assert.True(t, ins.TotalAmount.IsZero())
		assert.True(t, ins.NetAmount.IsZero())
	})

	t.Run("unknown item is rejected", func(t *testing.T) {
		err := ins.RemoveItem(uuid.New())
		require.Error(t, err)
	})
}

func TestInsurance_FixedDiscountClampedOnShrink(t *testing.T) {
	ins, err := NewInsurance("Basic Cover", "")
	require.NoError(t, err)

	a, err := ins.AddItem("X-Ray", LineInput{UnitPrice: dec("100"), Quantity: 1})
	require.NoError(t, err)
	_, err = ins.AddItem("Blood Test", LineInput{UnitPrice: dec("50"), Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, ins.SetDiscount(dec("120"), DiscountTypeFixed))
	assert.True(t, ins.NetAmount.Equal(dec("30")))

	// Removing the big line shrinks the total below the stored discount; the
	// discount is clamped so net never goes negative.
	require.NoError(t, ins.RemoveItem(a.ID))
	assert.True(t, ins.Discount.Equal(dec("50")))
	assert.True(t, ins.NetAmount.IsZero())
}

func TestInsurance_SetDiscountValidation(t *testing.T) {
	ins, err := NewInsurance("Basic Cover", "")
	require.NoError(t, err)
	_, err = ins.AddItem("X-Ray", LineInput{UnitPrice: dec("100"), Quantity: 1})
	require.NoError(t, err)

	assert.Error(t, ins.SetDiscount(dec("101"), DiscountTypePercentage))
	assert.Error(t, ins.SetDiscount(dec("150"), DiscountTypeFixed))
	assert.Error(t, ins.SetDiscount(dec("10"), DiscountType("bogus")))
}

func TestTreatmentPackage_Cascade(t *testing.T) {
	pkg, err := NewTreatmentPackage("Maternity Care", "Full maternity package")
	require.NoError(t, err)

	_, err = pkg.AddItem("Delivery", LineInput{UnitPrice: dec("1000"), Quantity: 1, TaxPercent: dec("10")})
	require.NoError(t, err)
	item, err := pkg.AddItem("Post-natal checkup", LineInput{UnitPrice: dec("100"), Quantity: 2})
	require.NoError(t, err)

	assert.True(t, pkg.Amount.Equal(dec("1200")))
	assert.True(t, pkg.TaxAmount.Equal(dec("100")))
	assert.True(t, pkg.TotalAmount.Equal(dec("1300")))

	require.NoError(t, pkg.SetDiscount(dec("300"), DiscountTypeFixed))
	assert.True(t, pkg.NetAmount.Equal(dec("1000")))

	require.NoError(t, pkg.UpdateItem(item.ID, LineInput{UnitPrice: dec("100"), Quantity: 4}))
	assert.True(t, pkg.TotalAmount.Equal(dec("1500")))
	assert.True(t, pkg.NetAmount.Equal(dec("1200")))
}
