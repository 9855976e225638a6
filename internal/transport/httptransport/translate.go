package httptransport

import (
	"context"
	"errors"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/ports/errcode"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/service/pricing"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/service/quote"
)

// FromServiceError - таймаут проверяется первым: он приходит обёрнутым в ErrRead
func FromServiceError(err error) errcode.Code {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errcode.Timeout
	case errors.Is(err, quote.ErrRead):
		return errcode.ChainRead
	case errors.Is(err, pricing.ErrInvalidQuote):
		return errcode.InvalidQuote
	default:
		return errcode.Internal
	}
}
