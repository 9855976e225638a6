package pricing

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/domain"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/pkg/pricefmt"
	"github.com/shopspring/decimal"
)

// ErrInvalidQuote - в пакете нет одного из сырых значений или оно отрицательное
var ErrInvalidQuote = errors.New("invalid quote bundle")

// Service - перевод сырых котировок в отчёт. Без I/O.
type Service interface {
	BuildReport(b domain.QuoteBundle) (domain.PriceReport, error)
}

// Clock - источник времени отчёта
type Clock interface {
	Now() time.Time
}

// ClockFunc - функция как Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

func utcNow() time.Time { return time.Now().UTC() }

type service struct {
	clock  Clock
	logger *slog.Logger
}

func NewService(logger *slog.Logger) Service {
	return &service{clock: ClockFunc(utcNow), logger: logger}
}

// NewServiceWithClock - конструктор для тестов с фиксированными часами
func NewServiceWithClock(clk Clock, logger *slog.Logger) Service {
	return &service{clock: clk, logger: logger}
}

// BuildReport:
//  1. цена токена в промежуточном активе и цена промежуточного в стейбле (по 9 знаков, усечение);
//  2. цена в USD = произведение двух ног, 9 знаков;
//  3. капитализация = эмиссия * цена в USD, сокращённая до B/M/K.
func (s *service) BuildReport(b domain.QuoteBundle) (domain.PriceReport, error) {
	if err := validate(b); err != nil {
		return domain.PriceReport{}, err
	}

	inIntermediate := pricefmt.FormatExactPrice(b.IntermediateAmount, b.IntermediateDecimals)
	inStable := pricefmt.FormatExactPrice(b.StableAmount, b.StableDecimals)
	supply := pricefmt.FormatExactPrice(b.TotalSupply, b.TokenDecimals)

	legA, err := decimal.NewFromString(inIntermediate)
	if err != nil {
		return domain.PriceReport{}, fmt.Errorf("parse intermediate leg %q: %w", inIntermediate, err)
	}
	legB, err := decimal.NewFromString(inStable)
	if err != nil {
		return domain.PriceReport{}, fmt.Errorf("parse stable leg %q: %w", inStable, err)
	}
	supplyDec, err := decimal.NewFromString(supply)
	if err != nil {
		return domain.PriceReport{}, fmt.Errorf("parse supply %q: %w", supply, err)
	}

	// капитализация считается от уже округлённой до 9 знаков цены, как её видит пользователь
	usdPrice := legA.Mul(legB).Round(pricefmt.ExactScale)
	marketCap := supplyDec.Mul(usdPrice)

	r := domain.PriceReport{
		Symbol:                    b.Token().Symbol,
		TokenPriceInIntermediate:  inIntermediate,
		IntermediatePriceInStable: inStable,
		TokenPriceInStable:        usdPrice.StringFixed(pricefmt.ExactScale),
		TotalSupply:               supply,
		MarketCap:                 marketCap,
		MarketCapFormatted:        pricefmt.FormatLargeNumber(marketCap),
		UpdatedAt:                 s.clock.Now(),
	}
	s.logger.Info("price report built",
		slog.String("symbol", r.Symbol),
		slog.String("usd_price", r.TokenPriceInStable),
		slog.String("intermediate_price", r.TokenPriceInIntermediate),
		slog.String("market_cap", r.MarketCapFormatted),
	)
	return r, nil
}

func validate(b domain.QuoteBundle) error {
	check := map[string]domain.RawAmount{
		"intermediate amount": b.IntermediateQuote(),
		"stable amount":       b.StableQuote(),
		"total supply":        b.Supply(),
	}
	for name, v := range check {
		if v.Value == nil {
			return fmt.Errorf("%w: %s is missing", ErrInvalidQuote, name)
		}
		if v.Value.Sign() < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidQuote, name)
		}
	}
	return nil
}
