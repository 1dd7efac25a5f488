package cart

import (
	"github.com/mateorivas/brewcart/pkg/enums"
	"github.com/mateorivas/brewcart/pkg/types"
	"github.com/shopspring/decimal"
)

var (
	smallFactor = decimal.NewFromFloat(0.7)
	largeFactor = decimal.NewFromFloat(1.25)
)

// PriceForSize derives the unit price charged for a cup size. Small takes 30%
// off, large adds a 25% premium, both rounded to two decimal places; medium
// is the base price untouched. The base price is the discounted price when
// one is set, else the regular price.
func PriceForSize(product types.Product, size enums.Size) float64 {
	base := product.BasePrice()

	switch size {
	case enums.SizeSmall:
		return decimal.NewFromFloat(base).Mul(smallFactor).Round(2).InexactFloat64()
	case enums.SizeLarge:
		return decimal.NewFromFloat(base).Mul(largeFactor).Round(2).InexactFloat64()
	default:
		return base
	}
}

// lineTotal multiplies a unit price by a quantity without accumulating float
// drift across the two-decimal currency domain.
func lineTotal(price float64, quantity int) float64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).InexactFloat64()
}
