package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=reader.go -destination=mocks/mock_reader.go -package=mocks

// ErrRead - любая ошибка чтения из сети. Цикл после неё прерывается целиком.
var ErrRead = errors.New("chain read failed")

type Service interface {
	// ReadQuotes - все сырые значения для одного отчёта
	ReadQuotes(ctx context.Context) (domain.QuoteBundle, error)
}

// ChainReader - view-методы контрактов
type ChainReader interface {
	Symbol(ctx context.Context, token common.Address) (string, error)
	Decimals(ctx context.Context, token common.Address) (uint8, error)
	TotalSupply(ctx context.Context, token common.Address) (*big.Int, error)
	GetAmountsOut(ctx context.Context, router common.Address, amountIn *big.Int, path []common.Address) ([]*big.Int, error)
}

// Pairs - фиксированные адреса: токен, роутер, промежуточный актив и стейбл
type Pairs struct {
	Token                common.Address
	Router               common.Address
	Intermediate         common.Address
	Stable               common.Address
	IntermediateDecimals uint8
}

type reader struct {
	chain  ChainReader
	pairs  Pairs
	logger *slog.Logger
}

// NewService - конструктор чтения котировок
func NewService(chain ChainReader, pairs Pairs, logger *slog.Logger) Service {
	return &reader{chain: chain, pairs: pairs, logger: logger}
}

// ReadQuotes запускает независимые чтения одновременно и ждёт все.
// Котировка токена зависит только от его decimals, поэтому идёт в той же горутине сразу после них.
// Первая ошибка отменяет остальные вызовы.
func (r *reader) ReadQuotes(ctx context.Context) (domain.QuoteBundle, error) {
	started := time.Now()
	p := r.pairs

	var (
		symbol         string
		tokenDecimals  uint8
		stableDecimals uint8
		tokenLeg       *big.Int
		stableLeg      *big.Int
		supply         *big.Int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := r.chain.Symbol(gctx, p.Token)
		if err != nil {
			return fmt.Errorf("token symbol: %w", err)
		}
		symbol = s
		return nil
	})

	g.Go(func() error {
		d, err := r.chain.Decimals(gctx, p.Stable)
		if err != nil {
			return fmt.Errorf("stable decimals: %w", err)
		}
		stableDecimals = d
		return nil
	})

	g.Go(func() error {
		d, err := r.chain.Decimals(gctx, p.Token)
		if err != nil {
			return fmt.Errorf("token decimals: %w", err)
		}
		tokenDecimals = d

		// ровно 1 токен
		out, err := r.lastHop(gctx, pow10(d), []common.Address{p.Token, p.Intermediate})
		if err != nil {
			return fmt.Errorf("token->intermediate quote: %w", err)
		}
		tokenLeg = out
		return nil
	})

	g.Go(func() error {
		out, err := r.lastHop(gctx, pow10(p.IntermediateDecimals), []common.Address{p.Intermediate, p.Stable})
		if err != nil {
			return fmt.Errorf("intermediate->stable quote: %w", err)
		}
		stableLeg = out
		return nil
	})

	g.Go(func() error {
		v, err := r.chain.TotalSupply(gctx, p.Token)
		if err != nil {
			return fmt.Errorf("total supply: %w", err)
		}
		supply = v
		return nil
	})

	if err := g.Wait(); err != nil {
		r.logger.Error("read quotes failed", slog.String("err", err.Error()))
		return domain.QuoteBundle{}, fmt.Errorf("%w: %w", ErrRead, err)
	}

	b := domain.QuoteBundle{
		Symbol:               symbol,
		TokenDecimals:        tokenDecimals,
		StableDecimals:       stableDecimals,
		IntermediateDecimals: p.IntermediateDecimals,
		IntermediateAmount:   tokenLeg,
		StableAmount:         stableLeg,
		TotalSupply:          supply,
	}
	token := b.Token()
	r.logger.Debug("quotes read",
		slog.String("symbol", token.Symbol),
		slog.Int("token_decimals", int(token.Decimals)),
		slog.Int("stable_decimals", int(stableDecimals)),
		slog.String("intermediate_amount", tokenLeg.String()),
		slog.String("stable_amount", stableLeg.String()),
		slog.Duration("duration", time.Since(started)),
	)
	return b, nil
}

// lastHop - выход последнего шага пути
func (r *reader) lastHop(ctx context.Context, amountIn *big.Int, path []common.Address) (*big.Int, error) {
	amounts, err := r.chain.GetAmountsOut(ctx, r.pairs.Router, amountIn, path)
	if err != nil {
		return nil, err
	}
	if len(amounts) != len(path) {
		return nil, fmt.Errorf("router returned %d amounts for path of %d", len(amounts), len(path))
	}
	out := amounts[len(amounts)-1]
	if out == nil || out.Sign() < 0 {
		return nil, fmt.Errorf("router returned invalid amount %v", out)
	}
	return out, nil
}

func pow10(d uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d)), nil)
}
