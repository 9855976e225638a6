package botfmt

import (
	"strings"
	"testing"
	"time"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleReport() domain.PriceReport {
	return domain.PriceReport{
		Symbol:                   "CRY",
		TokenPriceInIntermediate: "0.200000000",
		TokenPriceInStable:       "0.020000000",
		MarketCapFormatted:       "20.00M",
		UpdatedAt:                time.Date(2025, 9, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestFormatPriceUpdate(t *testing.T) {
	st := Style{
		IntermediateSymbol: "CRO",
		ContractAddress:    "0xB770074eA2A8325440798fDF1c29B235b31922Ae",
		ThumbnailURL:       "https://example.com/coin.webp",
	}

	n := FormatPriceUpdate(sampleReport(), st)

	assert.Equal(t, "CRY Price Update", n.Title)
	assert.Equal(t, "https://example.com/coin.webp", n.ThumbnailURL)
	assert.Equal(t, DefaultColor, n.Color)

	want := strings.Join([]string{
		"💵 USD Price: $0.020000000",
		"🪙 CRO Price: 0.200000000 CRO",
		"💰 Market Cap: $20.00M",
		"⏰ Updated: 2025-09-01 12:30:00 UTC",
		"🔗 Contract: `0xB770074eA2A8325440798fDF1c29B235b31922Ae`",
	}, "\n")
	assert.Equal(t, want, n.Description)
}

func TestFormatPriceUpdate_NoContractCustomColor(t *testing.T) {
	n := FormatPriceUpdate(sampleReport(), Style{IntermediateSymbol: "CRO", Color: 0x00ff00})

	assert.Equal(t, 0x00ff00, n.Color)
	assert.NotContains(t, n.Description, "Contract")
}
