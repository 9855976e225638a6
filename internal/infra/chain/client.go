package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/metrics"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ERC20ABI - только view-методы, которые нам нужны
const ERC20ABI = `[
{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// RouterABI - getAmountsOut роутера в стиле UniswapV2
const RouterABI = `[
{"inputs":[{"name":"amountIn","type":"uint256"},{"name":"path","type":"address[]"}],"name":"getAmountsOut","outputs":[{"name":"amounts","type":"uint256[]"}],"stateMutability":"view","type":"function"}
]`

var ErrEmptyResult = errors.New("empty call result")

// ContractCaller - минимум от ethclient, который нужен клиенту. Удобно подменять в тестах.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type Client struct {
	caller ContractCaller
	erc20  abi.ABI
	router abi.ABI
	closer func()
	logger *slog.Logger
}

// Dial - подключение к RPC ноды
func Dial(ctx context.Context, rpcURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ec, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc %s: %w", rpcURL, err)
	}

	c, err := NewClient(ec, logger)
	if err != nil {
		ec.Close()
		return nil, err
	}
	c.closer = ec.Close
	return c, nil
}

// NewClient - клиент поверх любого ContractCaller
func NewClient(caller ContractCaller, logger *slog.Logger) (*Client, error) {
	erc20, err := abi.JSON(strings.NewReader(ERC20ABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	router, err := abi.JSON(strings.NewReader(RouterABI))
	if err != nil {
		return nil, fmt.Errorf("parse router abi: %w", err)
	}
	return &Client{
		caller: caller,
		erc20:  erc20,
		router: router,
		logger: logger,
	}, nil
}

func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

func (c *Client) Symbol(ctx context.Context, token common.Address) (string, error) {
	out, err := c.call(ctx, token, c.erc20, "symbol")
	if err != nil {
		return "", err
	}
	s, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("symbol: unexpected type %T", out[0])
	}
	return s, nil
}

func (c *Client) Decimals(ctx context.Context, token common.Address) (uint8, error) {
	out, err := c.call(ctx, token, c.erc20, "decimals")
	if err != nil {
		return 0, err
	}
	d, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals: unexpected type %T", out[0])
	}
	return d, nil
}

func (c *Client) TotalSupply(ctx context.Context, token common.Address) (*big.Int, error) {
	out, err := c.call(ctx, token, c.erc20, "totalSupply")
	if err != nil {
		return nil, err
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("totalSupply: unexpected type %T", out[0])
	}
	return v, nil
}

// GetAmountsOut - сколько получим на каждом шаге пути при обмене amountIn
func (c *Client) GetAmountsOut(ctx context.Context, router common.Address, amountIn *big.Int, path []common.Address) ([]*big.Int, error) {
	out, err := c.call(ctx, router, c.router, "getAmountsOut", amountIn, path)
	if err != nil {
		return nil, err
	}
	amounts, ok := out[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("getAmountsOut: unexpected type %T", out[0])
	}
	return amounts, nil
}

// call - pack, eth_call на последнем блоке, unpack
func (c *Client) call(ctx context.Context, to common.Address, contract abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	started := time.Now()

	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	res, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		metrics.ChainReads.WithLabelValues(method, "error").Inc()
		c.logger.Debug("eth_call failed",
			slog.String("method", method),
			slog.String("to", to.Hex()),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("call %s on %s: %w", method, to.Hex(), err)
	}
	if len(res) == 0 {
		metrics.ChainReads.WithLabelValues(method, "empty").Inc()
		return nil, fmt.Errorf("call %s on %s: %w", method, to.Hex(), ErrEmptyResult)
	}

	out, err := contract.Unpack(method, res)
	if err != nil {
		metrics.ChainReads.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("unpack %s: %w", method, ErrEmptyResult)
	}

	metrics.ChainReads.WithLabelValues(method, "ok").Inc()
	c.logger.Debug("eth_call ok",
		slog.String("method", method),
		slog.String("to", to.Hex()),
		slog.Duration("duration", time.Since(started)),
	)
	return out, nil
}
