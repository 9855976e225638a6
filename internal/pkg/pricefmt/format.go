// Package pricefmt - чистые функции форматирования сумм с фиксированной точкой.
package pricefmt

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ExactScale - сколько знаков после точки всегда выводит FormatExactPrice
const ExactScale = 9

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// FormatExactPrice переводит сырое целое с точностью decimals в строку "<целая>.<9 знаков>".
// Лишние знаки отбрасываются без округления. Отрицательные значения вне контракта.
func FormatExactPrice(amount *big.Int, decimals uint8) string {
	d := int(decimals)

	s := "0"
	if amount != nil {
		s = amount.String()
	}
	// хотя бы одна цифра должна остаться в целой части
	if len(s) <= d {
		s = strings.Repeat("0", d+1-len(s)) + s
	}

	intPart := s[:len(s)-d]
	if intPart == "" {
		intPart = "0"
	}

	frac := s[len(s)-d:]
	if len(frac) < ExactScale {
		frac += strings.Repeat("0", ExactScale-len(frac))
	}
	return intPart + "." + frac[:ExactScale]
}

// FormatLargeNumber сокращает большое число: B, M, K или просто 2 знака.
// Пороги проверяются сверху вниз, поэтому 1e9 это "1.00B", а не "1000.00M".
func FormatLargeNumber(v decimal.Decimal) string {
	switch {
	case v.GreaterThanOrEqual(billion):
		return v.Div(billion).StringFixed(2) + "B"
	case v.GreaterThanOrEqual(million):
		return v.Div(million).StringFixed(2) + "M"
	case v.GreaterThanOrEqual(thousand):
		return v.Div(thousand).StringFixed(2) + "K"
	}
	return v.StringFixed(2)
}
