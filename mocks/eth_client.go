package mocks

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

type EthClient struct {
	mock.Mock

	ChainName string
	ID        *big.Int
}

func (c *EthClient) Start(ctx context.Context) {
}

func (c *EthClient) Close() {
}

func (c *EthClient) Chain() string {
	return c.ChainName
}

func (c *EthClient) ChainID() *big.Int {
	if c.ID == nil {
		return big.NewInt(1337)
	}
	return c.ID
}

func (c *EthClient) BlockNumber(arg1 context.Context) (uint64, error) {
	args := c.Called(arg1)

	if args.Get(0) == nil {
		return 0, args.Error(1)
	}
	return args.Get(0).(uint64), args.Error(1)
}

func (c *EthClient) HeaderByNumber(arg1 context.Context, arg2 *big.Int) (*ethtypes.Header, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ethtypes.Header), args.Error(1)
}

func (c *EthClient) TransactionReceipt(arg1 context.Context, arg2 common.Hash) (*ethtypes.Receipt, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ethtypes.Receipt), args.Error(1)
}

func (c *EthClient) CodeAt(arg1 context.Context, arg2 common.Address, arg3 *big.Int) ([]byte, error) {
	args := c.Called(arg1, arg2, arg3)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (c *EthClient) PendingCodeAt(arg1 context.Context, arg2 common.Address) ([]byte, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (c *EthClient) CallContract(arg1 context.Context, arg2 ethereum.CallMsg, arg3 *big.Int) ([]byte, error) {
	args := c.Called(arg1, arg2, arg3)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (c *EthClient) EstimateGas(arg1 context.Context, arg2 ethereum.CallMsg) (uint64, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return 0, args.Error(1)
	}
	return args.Get(0).(uint64), args.Error(1)
}

func (c *EthClient) SuggestGasPrice(arg1 context.Context) (*big.Int, error) {
	args := c.Called(arg1)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (c *EthClient) SuggestGasTipCap(arg1 context.Context) (*big.Int, error) {
	args := c.Called(arg1)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (c *EthClient) PendingNonceAt(arg1 context.Context, arg2 common.Address) (uint64, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return 0, args.Error(1)
	}
	return args.Get(0).(uint64), args.Error(1)
}

func (c *EthClient) SendTransaction(arg1 context.Context, arg2 *ethtypes.Transaction) error {
	args := c.Called(arg1, arg2)
	return args.Error(0)
}

func (c *EthClient) BalanceAt(arg1 context.Context, arg2 common.Address, arg3 *big.Int) (*big.Int, error) {
	args := c.Called(arg1, arg2, arg3)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (c *EthClient) FilterLogs(arg1 context.Context, arg2 ethereum.FilterQuery) ([]ethtypes.Log, error) {
	args := c.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ethtypes.Log), args.Error(1)
}

func (c *EthClient) SubscribeFilterLogs(
	arg1 context.Context, arg2 ethereum.FilterQuery, arg3 chan<- ethtypes.Log,
) (ethereum.Subscription, error) {
	args := c.Called(arg1, arg2, arg3)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ethereum.Subscription), args.Error(1)
}
