package pricing

import (
	"errors"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/domain"
	"github.com/shopspring/decimal"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

func e2eBundle() domain.QuoteBundle {
	return domain.QuoteBundle{
		Symbol:               "CRY",
		TokenDecimals:        18,
		StableDecimals:       6,
		IntermediateDecimals: 18,
		IntermediateAmount:   new(big.Int).Mul(big.NewInt(2), pow10(17)),
		StableAmount:         new(big.Int).Mul(big.NewInt(1), pow10(5)),
		TotalSupply:          new(big.Int).Mul(big.NewInt(1), pow10(27)),
	}
}

// Сквозной сценарий: 0.2 CRO за токен, 0.1 USDC за CRO, эмиссия 1e9
func TestBuildReport_EndToEnd(t *testing.T) {
	fixed := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := NewServiceWithClock(fixedClock{fixed}, slog.Default())

	got, err := svc.BuildReport(e2eBundle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TokenPriceInIntermediate != "0.200000000" {
		t.Fatalf("intermediate price: got %q", got.TokenPriceInIntermediate)
	}
	if got.IntermediatePriceInStable != "0.100000000" {
		t.Fatalf("stable price: got %q", got.IntermediatePriceInStable)
	}
	if got.TokenPriceInStable != "0.020000000" {
		t.Fatalf("usd price: got %q", got.TokenPriceInStable)
	}
	if got.TotalSupply != "1000000000.000000000" {
		t.Fatalf("supply: got %q", got.TotalSupply)
	}
	if !got.MarketCap.Equal(decimal.NewFromInt(20_000_000)) {
		t.Fatalf("market cap: got %s", got.MarketCap)
	}
	if got.MarketCapFormatted != "20.00M" {
		t.Fatalf("market cap formatted: got %q", got.MarketCapFormatted)
	}
	if got.Symbol != "CRY" || !got.UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected report: %+v", got)
	}
}

// Произведение ног округляется до 9 знаков
func TestBuildReport_UsdPriceRounding(t *testing.T) {
	svc := NewServiceWithClock(fixedClock{time.Unix(0, 0)}, slog.Default())

	b := e2eBundle()
	b.IntermediateAmount = big.NewInt(123_456_789_000_000_000) // 0.123456789
	b.StableAmount = big.NewInt(98_765)                        // 0.098765

	got, err := svc.BuildReport(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 0.123456789 * 0.098765 = 0.012193209765585, округление вверх
	if got.TokenPriceInStable != "0.012193210" {
		t.Fatalf("usd price: got %q", got.TokenPriceInStable)
	}
	if got.MarketCapFormatted != "12.19M" {
		t.Fatalf("market cap formatted: got %q", got.MarketCapFormatted)
	}
}

func TestBuildReport_ZeroLiquidity(t *testing.T) {
	svc := NewServiceWithClock(fixedClock{time.Unix(0, 0)}, slog.Default())

	b := e2eBundle()
	b.IntermediateAmount = big.NewInt(0)

	got, err := svc.BuildReport(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TokenPriceInStable != "0.000000000" || got.MarketCapFormatted != "0.00" {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestBuildReport_InvalidBundle(t *testing.T) {
	svc := NewService(slog.Default())

	missing := e2eBundle()
	missing.TotalSupply = nil
	if _, err := svc.BuildReport(missing); !errors.Is(err, ErrInvalidQuote) {
		t.Fatalf("expected ErrInvalidQuote for nil supply, got %v", err)
	}

	negative := e2eBundle()
	negative.StableAmount = big.NewInt(-1)
	if _, err := svc.BuildReport(negative); !errors.Is(err, ErrInvalidQuote) {
		t.Fatalf("expected ErrInvalidQuote for negative amount, got %v", err)
	}
}
