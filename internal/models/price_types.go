package models

import "strings"

// CaratPrice is one row of the backend's /today-price/PriceRouting response.
type CaratPrice struct {
	Carat             string  `json:"Carat"`
	TodayPricePerGram float64 `json:"TodayPricePerGram"`
}

// CaratPriceTable maps an uppercased carat code ("22K") to today's price per
// gram. The table is replaced wholesale on every update, never patched.
type CaratPriceTable map[string]float64

// NewCaratPriceTable builds a table from the raw backend rows. Carat codes
// are uppercased so lookups are case-insensitive; rows without a positive
// price are dropped.
func NewCaratPriceTable(rows []CaratPrice) CaratPriceTable {
	table := make(CaratPriceTable, len(rows))
	for _, row := range rows {
		carat := strings.ToUpper(strings.TrimSpace(row.Carat))
		if carat == "" || row.TodayPricePerGram <= 0 {
			continue
		}
		table[carat] = row.TodayPricePerGram
	}
	return table
}

// PricePerGram looks up the price for a carat code, case-insensitively.
func (t CaratPriceTable) PricePerGram(carat string) (float64, bool) {
	price, ok := t[strings.ToUpper(strings.TrimSpace(carat))]
	if !ok || price <= 0 {
		return 0, false
	}
	return price, true
}

// Carats returns the carat codes present in the table.
func (t CaratPriceTable) Carats() []string {
	carats := make([]string, 0, len(t))
	for carat := range t {
		carats = append(carats, carat)
	}
	return carats
}

// PriceBreakdown records how a live price was computed, mirroring what the
// product page shows under the total.
type PriceBreakdown struct {
	GoldValue          float64 `json:"goldValue"`
	MakingChargeAmount float64 `json:"makingChargeAmount"`
	NetWeight          float64 `json:"netWeight"`
	PricePerGram       float64 `json:"pricePerGram"`
	MakingChargePct    float64 `json:"makingChargePercentage"`
}

// CalculatedPrice is the live sale price derived for one product from
// today's carat prices. Values are rounded to 2 decimal places for display.
type CalculatedPrice struct {
	Total     float64        `json:"total"`
	Breakdown PriceBreakdown `json:"breakdown"`
}
