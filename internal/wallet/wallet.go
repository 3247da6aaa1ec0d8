package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/questx-lab/vesting/config"
	"github.com/questx-lab/vesting/pkg/errorx"
	"github.com/questx-lab/vesting/pkg/xcontext"
)

const (
	ConnectorKey      = "key"
	ConnectorKeystore = "keystore"
	ConnectorExternal = "external"
)

// Wallet is a connected account able to sign transactions.
type Wallet interface {
	Address() common.Address
	Connector() string
	TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error)
	Close() error
}

// ConnectorOf returns the connector a wallet config selects. An empty
// connector is inferred from which credentials are configured.
func ConnectorOf(cfg config.WalletConfigs) string {
	if cfg.Connector != "" {
		return cfg.Connector
	}

	switch {
	case cfg.PrivateKey != "":
		return ConnectorKey
	case cfg.KeystorePath != "":
		return ConnectorKeystore
	case cfg.ClefEndpoint != "":
		return ConnectorExternal
	default:
		return ""
	}
}

// Open connects the wallet described by cfg. The passphrase, if not empty,
// replaces the configured keystore passphrase.
func Open(ctx context.Context, cfg config.WalletConfigs, passphrase string) (Wallet, error) {
	if passphrase == "" {
		passphrase = cfg.Passphrase
	}

	var (
		w   Wallet
		err error
	)

	connector := ConnectorOf(cfg)
	switch connector {
	case ConnectorKey:
		w, err = NewKeyWallet(cfg.PrivateKey)
	case ConnectorKeystore:
		w, err = NewKeystoreWallet(cfg.KeystorePath, cfg.Account, passphrase)
	case ConnectorExternal:
		w, err = NewExternalWallet(cfg.ClefEndpoint, cfg.Account)
	case "":
		return nil, errorx.New(errorx.WalletUnavailable, "No wallet is configured")
	default:
		return nil, errorx.New(errorx.WalletUnavailable, "Unknown wallet connector %s", connector)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot open %s wallet: %v", connector, err)
		return nil, errorx.New(errorx.WalletUnavailable, "Cannot open %s wallet: %v", connector, err)
	}

	xcontext.Logger(ctx).Infof("Wallet %s is connected with %s connector", w.Address(), connector)
	return w, nil
}
