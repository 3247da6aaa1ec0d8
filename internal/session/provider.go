package session

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/questx-lab/vesting/config"
	"github.com/questx-lab/vesting/internal/domain/blockchain"
	"github.com/questx-lab/vesting/internal/domain/blockchain/eth"
	"github.com/questx-lab/vesting/internal/wallet"
	"github.com/questx-lab/vesting/pkg/errorx"
	"github.com/questx-lab/vesting/pkg/querycache"
	"github.com/questx-lab/vesting/pkg/xcontext"
	"github.com/questx-lab/vesting/pkg/xredis"
)

// ConnectionListener is called after a wallet is connected or disconnected.
type ConnectionListener func(ctx context.Context, account common.Address, connected bool)

// Provider holds the chain access, the query cache and the wallet connection
// shared by the whole program.
type Provider struct {
	cfg config.Configs

	client         eth.EthClient
	cache          *querycache.Client
	vault          blockchain.Vault
	dispatcher     blockchain.Dispatcher
	receiptWatcher blockchain.ReceiptWatcher
	closers        []func() error

	mutex     sync.RWMutex
	wallet    wallet.Wallet
	listeners []ConnectionListener
}

var (
	once            sync.Once
	defaultProvider *Provider
	defaultErr      error
)

// Init builds the process wide provider. Later calls return the provider of
// the first call.
func Init(ctx context.Context, cfg config.Configs) (*Provider, error) {
	once.Do(func() {
		defaultProvider, defaultErr = build(ctx, cfg)
	})

	return defaultProvider, defaultErr
}

// Default returns the provider built by Init, or nil before Init.
func Default() *Provider {
	return defaultProvider
}

func build(ctx context.Context, cfg config.Configs) (*Provider, error) {
	ctx = xcontext.WithConfigs(ctx, cfg)

	var (
		store   querycache.Store
		closers []func() error
	)

	switch cfg.Cache.Backend {
	case "redis":
		redisClient, err := xredis.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		store = querycache.NewRedisStore(redisClient)
		closers = append(closers, redisClient.Close)
	default:
		store = querycache.NewMemoryStore()
	}

	client := eth.NewEthClients(cfg.Chain)
	client.Start(ctx)

	p, err := New(cfg, client, store)
	if err != nil {
		client.Close()
		return nil, err
	}
	p.closers = append(p.closers, closers...)

	if cfg.Wallet.AutoConnect && wallet.ConnectorOf(cfg.Wallet) != "" {
		w, err := wallet.Open(ctx, cfg.Wallet, "")
		if err != nil {
			xcontext.Logger(ctx).Warnf("Wallet is not connected: %v", err)
		} else {
			p.Connect(ctx, w)
		}
	}

	return p, nil
}

// New builds a provider on top of an existing chain client. It does not
// register the provider as the process wide one.
func New(cfg config.Configs, client eth.EthClient, store querycache.Store) (*Provider, error) {
	vault, err := eth.NewVaultContract(cfg.Vault.HexAddress(), client)
	if err != nil {
		return nil, err
	}

	return &Provider{
		cfg:            cfg,
		client:         client,
		cache:          querycache.NewClient(store, cfg.Cache.TTL),
		vault:          vault,
		dispatcher:     eth.NewEthDispatcher(client),
		receiptWatcher: eth.NewReceiptFetcher(client, cfg.Claim.ReceiptTimeout, cfg.Claim.ReceiptPollInterval),
		closers:        []func() error{func() error { client.Close(); return nil }},
	}, nil
}

func (p *Provider) Configs() config.Configs {
	return p.cfg
}

func (p *Provider) Chain() string {
	return p.cfg.Chain.Chain
}

func (p *Provider) ChainID() *big.Int {
	return p.cfg.Chain.ID()
}

func (p *Provider) Client() eth.EthClient {
	return p.client
}

func (p *Provider) Cache() *querycache.Client {
	return p.cache
}

func (p *Provider) Vault() blockchain.Vault {
	return p.vault
}

func (p *Provider) Dispatcher() blockchain.Dispatcher {
	return p.dispatcher
}

func (p *Provider) ReceiptWatcher() blockchain.ReceiptWatcher {
	return p.receiptWatcher
}

// Account returns the connected account.
func (p *Provider) Account() (common.Address, bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if p.wallet == nil {
		return common.Address{}, false
	}

	return p.wallet.Address(), true
}

// Connector returns the connector of the connected wallet, empty when
// disconnected.
func (p *Provider) Connector() string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if p.wallet == nil {
		return ""
	}

	return p.wallet.Connector()
}

// Connect attaches w, replacing the wallet connected before.
func (p *Provider) Connect(ctx context.Context, w wallet.Wallet) {
	p.mutex.Lock()
	old := p.wallet
	p.wallet = w
	listeners := append([]ConnectionListener{}, p.listeners...)
	p.mutex.Unlock()

	if old != nil && old != w {
		if err := old.Close(); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot close wallet %s: %v", old.Address(), err)
		}
	}

	for _, l := range listeners {
		l(ctx, w.Address(), true)
	}
}

func (p *Provider) Disconnect(ctx context.Context) {
	p.mutex.Lock()
	old := p.wallet
	p.wallet = nil
	listeners := append([]ConnectionListener{}, p.listeners...)
	p.mutex.Unlock()

	if old == nil {
		return
	}

	if err := old.Close(); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot close wallet %s: %v", old.Address(), err)
	}

	for _, l := range listeners {
		l(ctx, old.Address(), false)
	}
}

func (p *Provider) OnConnectionChange(l ConnectionListener) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.listeners = append(p.listeners, l)
}

// TransactOpts returns options signing with the connected wallet. The
// transactions are built but not sent.
func (p *Provider) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	p.mutex.RLock()
	w := p.wallet
	p.mutex.RUnlock()

	if w == nil {
		return nil, errorx.New(errorx.WalletNotConnected, "Wallet is not connected")
	}

	opts, err := w.TransactOpts(ctx, p.ChainID())
	if err != nil {
		return nil, err
	}
	opts.NoSend = true

	if !p.cfg.Chain.UseEip1559 {
		callCtx, cancel := context.WithTimeout(ctx, eth.RpcTimeOut)
		defer cancel()

		gasPrice, err := p.client.SuggestGasPrice(callCtx)
		if err != nil {
			return nil, err
		}
		opts.GasPrice = gasPrice
	}

	return opts, nil
}

func (p *Provider) Close() error {
	var errs []error

	p.mutex.Lock()
	w := p.wallet
	p.wallet = nil
	p.mutex.Unlock()

	if w != nil {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, closer := range p.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
