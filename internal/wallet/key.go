package wallet

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/questx-lab/vesting/pkg/ethutil"
)

type KeyWallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func NewKeyWallet(hexKey string) (*KeyWallet, error) {
	key, err := ethutil.ParsePrivateKey(hexKey)
	if err != nil {
		return nil, err
	}

	return &KeyWallet{key: key, address: ethutil.PrivateKeyToAddress(key)}, nil
}

func (w *KeyWallet) Address() common.Address {
	return w.address
}

func (w *KeyWallet) Connector() string {
	return ConnectorKey
}

func (w *KeyWallet) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(w.key, chainID)
	if err != nil {
		return nil, err
	}

	opts.Context = ctx
	return opts, nil
}

func (w *KeyWallet) Close() error {
	return nil
}
