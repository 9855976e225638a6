package domain

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// TokenMetadata - неизменяемые данные токена: символ и точность
type TokenMetadata struct {
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// RawAmount - целое число с фиксированной точкой. Без Decimals значение неоднозначно.
type RawAmount struct {
	Value    *big.Int
	Decimals uint8
}

// QuoteBundle - сырые ответы контрактов за один цикл
type QuoteBundle struct {
	Symbol               string
	TokenDecimals        uint8
	StableDecimals       uint8
	IntermediateDecimals uint8

	// сколько промежуточного актива дают за 1 токен
	IntermediateAmount *big.Int
	// сколько стейбла дают за 1 единицу промежуточного актива
	StableAmount *big.Int
	TotalSupply  *big.Int
}

// Token - символ и точность токена из пакета
func (b QuoteBundle) Token() TokenMetadata {
	return TokenMetadata{Symbol: b.Symbol, Decimals: b.TokenDecimals}
}

// IntermediateQuote - котировка токена в промежуточном активе вместе с точностью
func (b QuoteBundle) IntermediateQuote() RawAmount {
	return RawAmount{Value: b.IntermediateAmount, Decimals: b.IntermediateDecimals}
}

// StableQuote - котировка промежуточного актива в стейбле
func (b QuoteBundle) StableQuote() RawAmount {
	return RawAmount{Value: b.StableAmount, Decimals: b.StableDecimals}
}

// Supply - эмиссия токена
func (b QuoteBundle) Supply() RawAmount {
	return RawAmount{Value: b.TotalSupply, Decimals: b.TokenDecimals}
}

// PriceReport - итог одного цикла, нигде не сохраняется
type PriceReport struct {
	Symbol                    string          `json:"symbol"`
	TokenPriceInIntermediate  string          `json:"token_price_in_intermediate"`
	IntermediatePriceInStable string          `json:"intermediate_price_in_stable"`
	TokenPriceInStable        string          `json:"token_price_in_stable"`
	TotalSupply               string          `json:"total_supply"`
	MarketCap                 decimal.Decimal `json:"market_cap"`
	MarketCapFormatted        string          `json:"market_cap_formatted"`
	UpdatedAt                 time.Time       `json:"updated_at"`
}

// Notification - сообщение для чата в формате embed
type Notification struct {
	Title        string
	Description  string
	ThumbnailURL string
	Color        int
}
