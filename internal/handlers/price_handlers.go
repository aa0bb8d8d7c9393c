package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetTodayPrices serves the current carat price table plus the live-feed
// connection status for the "Today's Gold Prices" panel.
func (h *Handlers) GetTodayPrices(c *gin.Context) {
	table := h.Prices.Table()

	// Highest carat first, the way the panel lists them.
	carats := table.Carats()
	sort.Slice(carats, func(i, j int) bool {
		return caratNumber(carats[i]) > caratNumber(carats[j])
	})

	c.JSON(http.StatusOK, gin.H{
		"prices":     table,
		"carats":     carats,
		"feedStatus": h.Feed.Status(),
	})
}

// RefreshPrices is the manual "Refresh Prices" button: fetch the table now,
// regardless of the feed's connection state.
func (h *Handlers) RefreshPrices(c *gin.Context) {
	if err := h.Feed.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh gold prices."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"prices":     h.Prices.Table(),
		"feedStatus": h.Feed.Status(),
	})
}

// caratNumber extracts the numeric part of a carat code ("22K" -> 22).
func caratNumber(carat string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, carat)
	n, _ := strconv.Atoi(digits)
	return n
}
