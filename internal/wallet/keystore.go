package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
)

type KeystoreWallet struct {
	ks      *keystore.KeyStore
	account accounts.Account
}

// NewKeystoreWallet unlocks an account of the keystore directory. The first
// account is used when no address is given.
func NewKeystoreWallet(dir, address, passphrase string) (*KeystoreWallet, error) {
	ks := keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)

	account, err := findAccount(ks.Accounts(), address)
	if err != nil {
		return nil, fmt.Errorf("keystore %s: %w", dir, err)
	}

	if err := ks.Unlock(account, passphrase); err != nil {
		return nil, err
	}

	return &KeystoreWallet{ks: ks, account: account}, nil
}

func findAccount(all []accounts.Account, address string) (accounts.Account, error) {
	if len(all) == 0 {
		return accounts.Account{}, errors.New("no account found")
	}

	if address == "" {
		return all[0], nil
	}

	if !common.IsHexAddress(address) {
		return accounts.Account{}, fmt.Errorf("invalid account address %s", address)
	}

	want := common.HexToAddress(address)
	for _, account := range all {
		if account.Address == want {
			return account, nil
		}
	}

	return accounts.Account{}, fmt.Errorf("account %s not found", want)
}

func (w *KeystoreWallet) Address() common.Address {
	return w.account.Address
}

func (w *KeystoreWallet) Connector() string {
	return ConnectorKeystore
}

func (w *KeystoreWallet) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyStoreTransactorWithChainID(w.ks, w.account, chainID)
	if err != nil {
		return nil, err
	}

	opts.Context = ctx
	return opts, nil
}

func (w *KeystoreWallet) Close() error {
	return w.ks.Lock(w.account.Address)
}
