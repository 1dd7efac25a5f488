package types

// Product is the catalog entry served by the order service. DiscountPrice is
// a pointer because its absence matters: checkout pricing and size pricing
// both branch on whether a discount exists at all.
type Product struct {
	ProductID     string   `json:"product_id"`
	Name          string   `json:"name"`
	Image         string   `json:"image,omitempty"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	Type          string   `json:"type,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// BasePrice is the discounted price when one is set and non-zero, else the
// regular price.
func (p Product) BasePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice != 0 {
		return *p.DiscountPrice
	}
	return p.Price
}
