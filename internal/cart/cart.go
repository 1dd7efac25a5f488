// Package cart owns the client-local shopping cart: deduplicated line items,
// size/sugar/customization aggregation, size pricing, and the checkout
// payload. All state lives behind the kv storage port; nothing here talks to
// the network.
package cart

import (
	"github.com/mateorivas/brewcart/pkg/enums"
)

// LineItem is one stored add-to-cart action, pre-aggregation. The persisted
// list holds rows for every user who ever used this profile; every read must
// filter by UserID before aggregating.
type LineItem struct {
	UserID        string      `json:"user_id"`
	ProductID     string      `json:"product_id"`
	Quantity      int         `json:"quantity"`
	Size          enums.Size  `json:"size"`
	Sugar         enums.Sugar `json:"sugar"`
	Customization string      `json:"customization"`
	Price         float64     `json:"price"`
	DiscountPrice *float64    `json:"discount_price,omitempty"`
	Name          string      `json:"name"`
	Image         string      `json:"image,omitempty"`
	Type          string      `json:"type,omitempty"`
	Description   string      `json:"description,omitempty"`
	CartItemID    string      `json:"cart_item_id,omitempty"`
}

// identityKey decides whether two line items are the same cart entry. Two
// rows merge only when the product and every chosen option match exactly.
type identityKey struct {
	productID     string
	size          enums.Size
	sugar         enums.Sugar
	customization string
}

func (li LineItem) identity() identityKey {
	return identityKey{
		productID:     li.ProductID,
		size:          li.Size,
		sugar:         li.Sugar,
		customization: li.Customization,
	}
}

// effectiveQuantity treats missing or non-positive quantities as a single
// unit, matching how rows written by older clients are read.
func (li LineItem) effectiveQuantity() int {
	if li.Quantity < 1 {
		return 1
	}
	return li.Quantity
}

// AggregatedEntry is the grouped, dedup-merged view of a user's line items.
// It is derived on every read and never persisted as-is, except by quantity
// mutations from the cart view, which write the aggregated representation
// back in place of the raw rows.
type AggregatedEntry struct {
	ProductID     string      `json:"product_id"`
	Name          string      `json:"name"`
	Price         float64     `json:"price"`
	Image         string      `json:"image"`
	Type          string      `json:"type"`
	Description   string      `json:"description"`
	Size          enums.Size  `json:"size"`
	Sugar         enums.Sugar `json:"sugar"`
	Customization string      `json:"customization"`
	Quantity      int         `json:"quantity"`
	Total         float64     `json:"total"`
	CartItemID    string      `json:"cart_item_id"`
	DiscountPrice *float64    `json:"discount_price,omitempty"`
}

// AddOptions carries the options and denormalized display fields captured at
// add time, so later reads never need a product lookup. Missing fields
// default silently.
type AddOptions struct {
	Size          string
	Sugar         string
	Customization string
	Name          string
	Price         float64
	DiscountPrice *float64
	Image         string
	Type          string
	Description   string
}

// CheckoutItem is one line of the checkout payload. Price deliberately uses
// the discounted price or zero, not the size-adjusted unit price shown in
// the cart; the order service reprices every line from its own catalog and
// treats this field as advisory.
type CheckoutItem struct {
	ProductID   string  `json:"product_id"`
	Quantity    int     `json:"quantity"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}
