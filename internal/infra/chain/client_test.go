package chain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	tokenAddr  = common.HexToAddress("0xB770074eA2A8325440798fDF1c29B235b31922Ae")
	routerAddr = common.HexToAddress("0x145863Eb42Cf62847A6Ca784e6416C1682b1b2Ae")
	wcroAddr   = common.HexToAddress("0x5C7F8A570d578ED84E63fdFA7b1eE72dEae1AE23")
)

type handler func(to common.Address, args []interface{}) ([]interface{}, error)

// fakeNode - отвечает на eth_call как контракт: разбирает селектор и пакует ответ по ABI
type fakeNode struct {
	t        *testing.T
	abis     []abi.ABI
	handlers map[string]handler
	raw      []byte

	mu    sync.Mutex
	calls []string
}

func newFakeNode(t *testing.T) *fakeNode {
	t.Helper()
	erc20, err := abi.JSON(strings.NewReader(ERC20ABI))
	require.NoError(t, err)
	router, err := abi.JSON(strings.NewReader(RouterABI))
	require.NoError(t, err)
	return &fakeNode{t: t, abis: []abi.ABI{erc20, router}, handlers: map[string]handler{}}
}

func (f *fakeNode) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	var method *abi.Method
	for _, a := range f.abis {
		if m, err := a.MethodById(msg.Data[:4]); err == nil {
			method = m
			break
		}
	}
	require.NotNil(f.t, method, "unknown selector %x", msg.Data[:4])

	f.mu.Lock()
	f.calls = append(f.calls, method.Name)
	f.mu.Unlock()

	if f.raw != nil {
		return f.raw, nil
	}

	args, err := method.Inputs.Unpack(msg.Data[4:])
	require.NoError(f.t, err)

	h, ok := f.handlers[method.Name]
	require.True(f.t, ok, "no handler for %s", method.Name)
	out, err := h(*msg.To, args)
	if err != nil {
		return nil, err
	}
	return method.Outputs.Pack(out...)
}

func newTestClient(t *testing.T, node *fakeNode) *Client {
	t.Helper()
	c, err := NewClient(node, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

func TestClient_Metadata(t *testing.T) {
	node := newFakeNode(t)
	node.handlers["symbol"] = func(to common.Address, _ []interface{}) ([]interface{}, error) {
		require.Equal(t, tokenAddr, to)
		return []interface{}{"CRY"}, nil
	}
	node.handlers["decimals"] = func(common.Address, []interface{}) ([]interface{}, error) {
		return []interface{}{uint8(18)}, nil
	}
	supply, _ := new(big.Int).SetString("1000000000000000000000000000", 10)
	node.handlers["totalSupply"] = func(common.Address, []interface{}) ([]interface{}, error) {
		return []interface{}{supply}, nil
	}
	c := newTestClient(t, node)
	ctx := context.Background()

	sym, err := c.Symbol(ctx, tokenAddr)
	require.NoError(t, err)
	require.Equal(t, "CRY", sym)

	dec, err := c.Decimals(ctx, tokenAddr)
	require.NoError(t, err)
	require.Equal(t, uint8(18), dec)

	got, err := c.TotalSupply(ctx, tokenAddr)
	require.NoError(t, err)
	require.Zero(t, got.Cmp(supply))

	require.Equal(t, []string{"symbol", "decimals", "totalSupply"}, node.calls)
}

func TestClient_GetAmountsOut(t *testing.T) {
	node := newFakeNode(t)
	amountIn := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	node.handlers["getAmountsOut"] = func(to common.Address, args []interface{}) ([]interface{}, error) {
		require.Equal(t, routerAddr, to)
		require.Zero(t, args[0].(*big.Int).Cmp(amountIn))
		require.Equal(t, []common.Address{tokenAddr, wcroAddr}, args[1].([]common.Address))
		return []interface{}{[]*big.Int{amountIn, big.NewInt(2e17)}}, nil
	}
	c := newTestClient(t, node)

	amounts, err := c.GetAmountsOut(context.Background(), routerAddr, amountIn, []common.Address{tokenAddr, wcroAddr})
	require.NoError(t, err)
	require.Len(t, amounts, 2)
	require.Zero(t, amounts[1].Cmp(big.NewInt(2e17)))
}

func TestClient_CallError(t *testing.T) {
	node := newFakeNode(t)
	boom := errors.New("execution reverted")
	node.handlers["symbol"] = func(common.Address, []interface{}) ([]interface{}, error) {
		return nil, boom
	}
	c := newTestClient(t, node)

	_, err := c.Symbol(context.Background(), tokenAddr)
	require.ErrorIs(t, err, boom)
}

// Адрес без кода отвечает пустыми байтами
func TestClient_EmptyResult(t *testing.T) {
	node := newFakeNode(t)
	node.raw = []byte{}
	c := newTestClient(t, node)

	_, err := c.Decimals(context.Background(), tokenAddr)
	require.ErrorIs(t, err, ErrEmptyResult)
}

func TestClient_MalformedResult(t *testing.T) {
	node := newFakeNode(t)
	node.raw = []byte{0x01, 0x02}
	c := newTestClient(t, node)

	_, err := c.TotalSupply(context.Background(), tokenAddr)
	require.Error(t, err)
}
