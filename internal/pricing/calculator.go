// Package pricing derives live sale prices for gold products from today's
// per-carat prices.
package pricing

import (
	"math"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
	"github.com/srilaxmialankar/storefront-golang/pkg/logx"
)

// Calculate computes the live price for every product that can be priced
// from the carat table:
//
//	goldValue    = netWeight * pricePerGram(carat)
//	makingAmount = goldValue * makingCharge/100
//	total        = goldValue + makingAmount
//
// Products with a non-positive net weight, an empty carat, or a carat the
// table has no positive price for are skipped (logged and omitted from the
// result); callers fall back to the product's flat price field. A malformed
// product never blocks the rest: the function is pure and total over its
// inputs, and identical inputs always yield identical output.
func Calculate(products []models.Product, prices models.CaratPriceTable) map[string]models.CalculatedPrice {
	log := logx.With("pricing")
	result := make(map[string]models.CalculatedPrice, len(products))

	for _, product := range products {
		if product.NetWeight <= 0 || math.IsNaN(product.NetWeight) {
			log.Debug().Str("product_id", product.ID).Msg("skipping price calculation: missing net weight")
			continue
		}
		if product.Carat == "" {
			log.Debug().Str("product_id", product.ID).Msg("skipping price calculation: missing carat")
			continue
		}
		perGram, ok := prices.PricePerGram(product.Carat)
		if !ok {
			log.Warn().
				Str("product_id", product.ID).
				Str("carat", product.Carat).
				Msg("skipping price calculation: no valid gold price for carat")
			continue
		}

		goldValue := product.NetWeight * perGram
		makingAmount := goldValue * product.MakingCharge / 100
		total := goldValue + makingAmount

		result[product.ID] = models.CalculatedPrice{
			Total: Round2(total),
			Breakdown: models.PriceBreakdown{
				GoldValue:          Round2(goldValue),
				MakingChargeAmount: Round2(makingAmount),
				NetWeight:          product.NetWeight,
				PricePerGram:       perGram,
				MakingChargePct:    product.MakingCharge,
			},
		}
	}
	return result
}

// Display is what the product card should show for one product.
type Display struct {
	Amount float64 `json:"amount"`
	// Live is true when Amount came from the carat-price calculation rather
	// than the product's flat price field.
	Live bool `json:"live"`
	// DiscountedPrice accompanies a flat price when the backend set one.
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
}

// DisplayFor resolves the price to show for a product: the calculated live
// price when one exists, otherwise the product's own flat price. The second
// return value is false when neither exists, in which case no price is
// displayed at all.
func DisplayFor(product models.Product, calculated map[string]models.CalculatedPrice) (Display, bool) {
	if calc, ok := calculated[product.ID]; ok {
		return Display{Amount: calc.Total, Live: true}, true
	}
	if product.Price != nil {
		return Display{Amount: *product.Price, DiscountedPrice: product.DiscountedPrice}, true
	}
	return Display{}, false
}

// Round2 rounds a monetary value to 2 decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
