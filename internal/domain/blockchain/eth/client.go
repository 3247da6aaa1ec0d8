package eth

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/questx-lab/vesting/config"
	"github.com/questx-lab/vesting/pkg/xcontext"
)

const (
	RpcTimeOut      = time.Second * 5
	MaxShuffleTimes = 20

	// Nodes further than this from the median height are considered stale.
	maxHeightDistance = 5
)

// A wrapper around eth.client so that we can mock in claim tests. It is a
// complete contract backend, so bindings can be built on top of it directly.
type EthClient interface {
	bind.ContractBackend
	bind.DeployBackend

	Start(ctx context.Context)
	Close()

	Chain() string
	ChainID() *big.Int

	BlockNumber(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, block *big.Int) (*big.Int, error)
}

// Default implementation of ETH client. Since eth RPC often unstable, this client maintains a list
// of different RPC to connect to and uses the ones that is stable to execute a call.
type defaultEthClient struct {
	chain   string
	chainID *big.Int

	allRpcs          []string
	refreshFrequency time.Duration

	clients   []*ethclient.Client
	healthies []bool
	rpcs      []string

	mutex sync.RWMutex
}

func NewEthClients(cfg config.ChainConfig) EthClient {
	return &defaultEthClient{
		chain:            cfg.Chain,
		chainID:          cfg.ID(),
		allRpcs:          cfg.Rpcs,
		refreshFrequency: cfg.RefreshConnectionFrequency,
	}
}

func (c *defaultEthClient) Chain() string {
	return c.chain
}

func (c *defaultEthClient) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

func (c *defaultEthClient) Start(ctx context.Context) {
	c.updateRpcs(ctx)
	if c.refreshFrequency > 0 {
		go c.loopCheck(ctx)
	}
}

func (c *defaultEthClient) Close() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, client := range c.clients {
		client.Close()
	}

	c.clients, c.healthies, c.rpcs = nil, nil, nil
}

func (c *defaultEthClient) loopCheck(ctx context.Context) {
	ticker := time.NewTicker(c.refreshFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.updateRpcs(ctx)
		}
	}
}

func (c *defaultEthClient) updateRpcs(ctx context.Context) {
	rpcs, clients, healthies := c.getRpcsHealthiness(ctx, c.allRpcs)

	c.mutex.Lock()
	oldClients := c.clients
	c.rpcs, c.clients, c.healthies = rpcs, clients, healthies
	c.mutex.Unlock()

	// Close all the old clients
	for _, client := range oldClients {
		client.Close()
	}
}

func (c *defaultEthClient) getRpcsHealthiness(ctx context.Context, allRpcs []string) ([]string, []*ethclient.Client, []bool) {
	clients := make([]*ethclient.Client, 0)
	rpcs := make([]string, 0)
	healthies := make([]bool, 0)

	type healthyNode struct {
		client *ethclient.Client
		rpc    string
		height int64
	}

	nodes := make([]*healthyNode, 0)
	for _, rpc := range allRpcs {
		client, err := ethclient.DialContext(ctx, rpc)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot dial rpc %s: %v", rpc, err)
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		height, err := client.BlockNumber(callCtx)
		cancel()

		if err != nil {
			xcontext.Logger(ctx).Warnf("Rpc %s of chain %s is unhealthy: %v", rpc, c.chain, err)
			client.Close()
			continue
		}

		nodes = append(nodes, &healthyNode{client: client, rpc: rpc, height: int64(height)})
	}

	if len(nodes) == 0 {
		xcontext.Logger(ctx).Errorf("No healthy rpc for chain %s", c.chain)
		return rpcs, clients, healthies
	}

	// Sorts all nodes by height
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].height > nodes[j].height
	})

	// Only select some nodes within a certain height from the median
	height := nodes[len(nodes)/2].height
	for _, node := range nodes {
		if absInt64(node.height-height) < maxHeightDistance {
			rpcs = append(rpcs, node.rpc)
			clients = append(clients, node.client)
			healthies = append(healthies, true)
		} else {
			node.client.Close()
		}
	}

	xcontext.Logger(ctx).Infof("Healthy rpcs for chain %s: %s", c.chain, rpcs)

	return rpcs, clients, healthies
}

func (c *defaultEthClient) shuffle() ([]*ethclient.Client, []bool, []string) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	n := len(c.clients)
	if n == 0 {
		return nil, nil, nil
	}

	clients := make([]*ethclient.Client, n)
	healthy := make([]bool, n)
	rpcs := make([]string, n)

	copy(clients, c.clients)
	copy(healthy, c.healthies)
	copy(rpcs, c.rpcs)

	for i := 0; i < MaxShuffleTimes; i++ {
		x := rand.Intn(n)
		y := rand.Intn(n)

		clients[x], clients[y] = clients[y], clients[x]
		healthy[x], healthy[y] = healthy[y], healthy[x]
		rpcs[x], rpcs[y] = rpcs[y], rpcs[x]
	}

	return clients, healthy, rpcs
}

func (c *defaultEthClient) getHealthyClient(ctx context.Context) (*ethclient.Client, string) {
	c.mutex.RLock()
	empty := len(c.clients) == 0
	c.mutex.RUnlock()

	if empty {
		c.updateRpcs(ctx)
	}

	// Shuffle rpcs so that we will use different healthy rpc
	clients, healthies, rpcs := c.shuffle()
	for i, healthy := range healthies {
		if healthy {
			return clients[i], rpcs[i]
		}
	}

	return nil, ""
}

// markUnhealthy excludes a rpc until the next refresh.
func (c *defaultEthClient) markUnhealthy(rpc string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for i := range c.rpcs {
		if c.rpcs[i] == rpc {
			c.healthies[i] = false
		}
	}
}

func execute[T any](
	ctx context.Context,
	c *defaultEthClient,
	f func(client *ethclient.Client, rpc string) (T, error),
) (T, error) {
	client, rpc := c.getHealthyClient(ctx)
	if client == nil {
		var zero T
		return zero, fmt.Errorf("no healthy RPC for chain %s", c.chain)
	}

	ret, err := f(client, rpc)
	if err != nil && ctx.Err() == nil && isTransportError(err) {
		xcontext.Logger(ctx).Warnf("Rpc %s of chain %s failed: %v", rpc, c.chain, err)
		c.markUnhealthy(rpc)
	}

	return ret, err
}

func (c *defaultEthClient) BlockNumber(ctx context.Context) (uint64, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) (uint64, error) {
		return client.BlockNumber(ctx)
	})
}

func (c *defaultEthClient) HeaderByNumber(ctx context.Context, number *big.Int) (*ethtypes.Header, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) (*ethtypes.Header, error) {
		return client.HeaderByNumber(ctx, number)
	})
}

func (c *defaultEthClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) (*ethtypes.Receipt, error) {
		return client.TransactionReceipt(ctx, txHash)
	})
}

func (c *defaultEthClient) CodeAt(ctx context.Context, contract common.Address, block *big.Int) ([]byte, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) ([]byte, error) {
		return client.CodeAt(ctx, contract, block)
	})
}

func (c *defaultEthClient) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) ([]byte, error) {
		return client.PendingCodeAt(ctx, account)
	})
}

func (c *defaultEthClient) CallContract(ctx context.Context, call ethereum.CallMsg, block *big.Int) ([]byte, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) ([]byte, error) {
		return client.CallContract(ctx, call, block)
	})
}

func (c *defaultEthClient) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) (uint64, error) {
		return client.EstimateGas(ctx, call)
	})
}

func (c *defaultEthClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) (*big.Int, error) {
		return client.SuggestGasPrice(ctx)
	})
}

func (c *defaultEthClient) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) (*big.Int, error) {
		return client.SuggestGasTipCap(ctx)
	})
}

func (c *defaultEthClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) (uint64, error) {
		return client.PendingNonceAt(ctx, account)
	})
}

func (c *defaultEthClient) SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error {
	_, err := execute(ctx, c, func(client *ethclient.Client, rpc string) (struct{}, error) {
		return struct{}{}, client.SendTransaction(ctx, tx)
	})

	return err
}

func (c *defaultEthClient) BalanceAt(ctx context.Context, account common.Address, block *big.Int) (*big.Int, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) (*big.Int, error) {
		balance, err := client.BalanceAt(ctx, account, block)
		if err == nil && balance != nil && balance.Sign() == 0 {
			xcontext.Logger(ctx).Warnf("Balance is 0 for using URL %s", rpc)
		}

		return balance, err
	})
}

func (c *defaultEthClient) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]ethtypes.Log, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) ([]ethtypes.Log, error) {
		return client.FilterLogs(ctx, query)
	})
}

func (c *defaultEthClient) SubscribeFilterLogs(
	ctx context.Context, query ethereum.FilterQuery, ch chan<- ethtypes.Log,
) (ethereum.Subscription, error) {
	return execute(ctx, c, func(client *ethclient.Client, rpc string) (ethereum.Subscription, error) {
		return client.SubscribeFilterLogs(ctx, query, ch)
	})
}
