package telegram

import (
	"fmt"
	"strings"
	"testing"

	"fx-rates/models/entities"
	"fx-rates/services/ratestore"

	"github.com/stretchr/testify/assert"
)

func rate(code, name string, value float64) entities.CurrencyRate {
	return entities.CurrencyRate{BaseCode: "GBP", TargetCode: code, TargetCurrencyName: name, Rate: value}
}

func TestFormatRates(t *testing.T) {
	tests := []struct {
		name     string
		rates    []entities.CurrencyRate
		contains []string
		excludes []string
	}{
		{
			name:     "no rates",
			rates:    nil,
			contains: []string{"No rates to show"},
		},
		{
			name:     "grouped digits",
			rates:    []entities.CurrencyRate{rate("JPY", "Japanese Yen", 1796.1734), rate("EUR", "Euro", 1.15)},
			contains: []string{"*Header*", "1 GBP = `1,796.1734` JPY (Japanese Yen)", "1 GBP = `1.15` EUR (Euro)"},
			excludes: []string{"⚠️", "more"},
		},
		{
			name:     "suspect rate is flagged",
			rates:    []entities.CurrencyRate{rate("XAU", "Gold", 0)},
			contains: []string{"`0` XAU", "⚠️"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatRates("*Header*", tt.rates)

			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestFormatRates_Truncates(t *testing.T) {
	rates := make([]entities.CurrencyRate, 0, maxRatesPerMessage+5)
	for i := 0; i < maxRatesPerMessage+5; i++ {
		rates = append(rates, rate(fmt.Sprintf("C%02d", i), "Currency", 1))
	}

	got := formatRates("*Header*", rates)

	assert.Equal(t, maxRatesPerMessage, strings.Count(got, "💱"))
	assert.Contains(t, got, "and 5 more")
	assert.Less(t, len(got), 4096)
}

func TestFormatStatus(t *testing.T) {
	got := formatStatus(ratestore.Status{
		RateCount:   150,
		UpdatedAgo:  "2 minutes ago",
		LastUpdate:  "10:15:00",
		AutoRefresh: false,
		LastError:   "empty response",
		Channel:     entities.FeedChannel{Title: "GBP rates"},
	})

	assert.Contains(t, got, "GBP rates")
	assert.Contains(t, got, "`150`")
	assert.Contains(t, got, "`2 minutes ago`")
	assert.Contains(t, got, "`10:15:00`")
	assert.Contains(t, got, "paused")
	assert.Contains(t, got, "`empty response`")
}

func TestBroadcastKey(t *testing.T) {
	a := []entities.CurrencyRate{rate("USD", "Dollar", 1.27), rate("EUR", "Euro", 1.15)}
	b := []entities.CurrencyRate{rate("USD", "Dollar", 1.27), rate("EUR", "Euro", 1.16)}

	assert.Equal(t, broadcastKey(a), broadcastKey(a))
	assert.NotEqual(t, broadcastKey(a), broadcastKey(b))
}
