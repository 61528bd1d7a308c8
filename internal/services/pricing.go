package services

import (
	"math"
	"storefront/internal/models"
)

// PricingConfig drives the server-side price computation at checkout.
type PricingConfig struct {
	TaxRate               float64 // percent of the items subtotal
	ShippingFee           float64
	FreeShippingThreshold float64 // subtotal at or above which shipping is free
}

// PriceBreakdown is the computed price of an order before persistence.
type PriceBreakdown struct {
	ItemsPrice    float64
	ShippingPrice float64
	TaxPrice      float64
	Discount      float64
	TotalPrice    float64
}

// roundCurrency rounds half-up to the smallest currency unit. Intermediate
// computations stay unrounded; this is applied at the final step only.
func roundCurrency(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// itemsSubtotal sums price x quantity over the snapshot items.
func itemsSubtotal(items []models.OrderItem) (float64, error) {
	if len(items) == 0 {
		return 0, models.ErrInvalidCart
	}
	subtotal := 0.0
	for _, item := range items {
		if item.Quantity < 1 {
			return 0, models.ErrInvalidCart
		}
		subtotal += item.Price * float64(item.Quantity)
	}
	return roundCurrency(subtotal), nil
}

// aggregateTotals combines the price components. The total is clamped at zero
// so a discount can never drive it negative.
func aggregateTotals(itemsPrice, shippingPrice, taxPrice, discount float64) PriceBreakdown {
	total := itemsPrice + shippingPrice + taxPrice - discount
	if total < 0 {
		total = 0
	}
	return PriceBreakdown{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shippingPrice,
		TaxPrice:      taxPrice,
		Discount:      discount,
		TotalPrice:    roundCurrency(total),
	}
}

func (c PricingConfig) shippingFor(itemsPrice float64) float64 {
	if itemsPrice >= c.FreeShippingThreshold {
		return 0
	}
	return c.ShippingFee
}

func (c PricingConfig) taxFor(itemsPrice float64) float64 {
	return roundCurrency(itemsPrice * c.TaxRate / 100)
}
