package backend

import (
	"context"
	"net/http"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
)

// GetTodayPrices fetches the current per-gram gold price for every carat
// grade. The result replaces any previously held table wholesale.
func (c *Client) GetTodayPrices(ctx context.Context) (models.CaratPriceTable, error) {
	var rows []models.CaratPrice
	if err := c.do(ctx, http.MethodGet, c.endpoints.GoldPrice(), nil, nil, &rows); err != nil {
		return nil, err
	}
	table := models.NewCaratPriceTable(rows)
	c.log.Debug().Int("carats", len(table)).Msg("today prices fetched")
	return table, nil
}
