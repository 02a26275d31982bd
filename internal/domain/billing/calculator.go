package billing

import (
	"github.com/hms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DiscountType distinguishes a flat currency discount from a percentage one
type DiscountType string

const (
	DiscountTypeFixed      DiscountType = "fixed"
	DiscountTypePercentage DiscountType = "percentage"
)

var hundred = decimal.NewFromInt(100)

// IsValid reports whether the discount type is one of the recognized values
func (d DiscountType) IsValid() bool {
	return d == DiscountTypeFixed || d == DiscountTypePercentage
}

// LineInput is the user-editable portion of one billable line
type LineInput struct {
	UnitPrice  decimal.Decimal
	Quantity   int64
	TaxPercent decimal.Decimal
}

// LineTotals holds the derived fields of a single line. These are never
// stored independently; any input change recomputes the whole set.
type LineTotals struct {
	Amount    decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// OrderTotals holds order-level aggregates after the order discount
type OrderTotals struct {
	Amount    decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	NetAmount decimal.Decimal
}

// ComputeLine derives amount, tax amount and total for one line.
// amount = unitPrice * quantity; taxAmount = amount * taxPercent / 100;
// total = amount + taxAmount.
func ComputeLine(unitPrice decimal.Decimal, quantity int64, taxPercent decimal.Decimal) (LineTotals, error) {
	if quantity < 1 {
		return LineTotals{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return LineTotals{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if taxPercent.IsNegative() {
		return LineTotals{}, shared.NewDomainError("INVALID_TAX", "Tax percent cannot be negative")
	}

	amount := unitPrice.Mul(decimal.NewFromInt(quantity))
	taxAmount := amount.Mul(taxPercent).Div(hundred)
	return LineTotals{
		Amount:    amount,
		TaxAmount: taxAmount,
		Total:     amount.Add(taxAmount),
	}, nil
}

// ApplyDiscount derives the net amount from a total and a discount. A
// percentage discount must lie within [0,100]; a fixed discount may not be
// negative or exceed the total, so the net amount can never go below zero.
func ApplyDiscount(total, discount decimal.Decimal, discountType DiscountType) (decimal.Decimal, error) {
	if discount.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	switch discountType {
	case DiscountTypePercentage:
		if discount.GreaterThan(hundred) {
			return decimal.Zero, shared.NewDomainError("INVALID_DISCOUNT", "Percentage discount cannot exceed 100")
		}
		return total.Sub(total.Mul(discount).Div(hundred)), nil
	case DiscountTypeFixed:
		if discount.GreaterThan(total) {
			return decimal.Zero, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed total amount")
		}
		return total.Sub(discount), nil
	default:
		return decimal.Zero, shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Discount type must be fixed or percentage")
	}
}

// AggregateLines sums per-line amounts and tax before computing the
// order-level total and applying one order-level discount. With a single line
// this matches ComputeLine followed by ApplyDiscount exactly.
func AggregateLines(lines []LineInput, discount decimal.Decimal, discountType DiscountType) (OrderTotals, error) {
	amount := decimal.Zero
	taxAmount := decimal.Zero
	for _, line := range lines {
		totals, err := ComputeLine(line.UnitPrice, line.Quantity, line.TaxPercent)
		if err != nil {
			return OrderTotals{}, err
		}
		amount = amount.Add(totals.Amount)
		taxAmount = taxAmount.Add(totals.TaxAmount)
	}

	total := amount.Add(taxAmount)
	net, err := ApplyDiscount(total, discount, discountType)
	if err != nil {
		return OrderTotals{}, err
	}

	return OrderTotals{
		Amount:    amount,
		TaxAmount: taxAmount,
		Total:     total,
		NetAmount: net,
	}, nil
}
