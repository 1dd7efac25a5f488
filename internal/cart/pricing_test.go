package cart

import (
	"testing"

	"github.com/mateorivas/brewcart/pkg/enums"
	"github.com/mateorivas/brewcart/pkg/types"
	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestPriceForSize(t *testing.T) {
	product := types.Product{ProductID: "p1", Name: "Latte", Price: 100}

	assert.Equal(t, 70.0, PriceForSize(product, enums.SizeSmall))
	assert.Equal(t, 100.0, PriceForSize(product, enums.SizeMedium))
	assert.Equal(t, 125.0, PriceForSize(product, enums.SizeLarge))
}

func TestPriceForSizeRoundsToTwoPlaces(t *testing.T) {
	product := types.Product{ProductID: "p1", Name: "Mocha", Price: 3.95}

	// 3.95 * 0.7 = 2.765 -> 2.77, 3.95 * 1.25 = 4.9375 -> 4.94
	assert.Equal(t, 2.77, PriceForSize(product, enums.SizeSmall))
	assert.Equal(t, 3.95, PriceForSize(product, enums.SizeMedium))
	assert.Equal(t, 4.94, PriceForSize(product, enums.SizeLarge))
}

func TestPriceForSizePrefersDiscountPrice(t *testing.T) {
	product := types.Product{ProductID: "p1", Name: "Latte", Price: 100, DiscountPrice: ptr(80)}

	assert.Equal(t, 56.0, PriceForSize(product, enums.SizeSmall))
	assert.Equal(t, 80.0, PriceForSize(product, enums.SizeMedium))
	assert.Equal(t, 100.0, PriceForSize(product, enums.SizeLarge))
}

func TestPriceForSizeIgnoresZeroDiscount(t *testing.T) {
	product := types.Product{ProductID: "p1", Name: "Latte", Price: 100, DiscountPrice: ptr(0)}

	assert.Equal(t, 100.0, PriceForSize(product, enums.SizeMedium))
}

func TestLineTotalAvoidsFloatDrift(t *testing.T) {
	assert.Equal(t, 0.3, lineTotal(0.1, 3))
	assert.Equal(t, 8.31, lineTotal(2.77, 3))
}
