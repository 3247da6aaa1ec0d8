package wallet

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/external"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// ExternalWallet delegates signing to a clef compatible signer. Every
// transaction is approved on the signer side.
type ExternalWallet struct {
	signer  *external.ExternalSigner
	account accounts.Account
}

func NewExternalWallet(endpoint, address string) (*ExternalWallet, error) {
	signer, err := external.NewExternalSigner(endpoint)
	if err != nil {
		return nil, err
	}

	account, err := findAccount(signer.Accounts(), address)
	if err != nil {
		return nil, err
	}

	return &ExternalWallet{signer: signer, account: account}, nil
}

func (w *ExternalWallet) Address() common.Address {
	return w.account.Address
}

func (w *ExternalWallet) Connector() string {
	return ConnectorExternal
}

func (w *ExternalWallet) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	if chainID == nil {
		return nil, errors.New("no chain id")
	}

	return &bind.TransactOpts{
		From: w.account.Address,
		Signer: func(address common.Address, tx *ethtypes.Transaction) (*ethtypes.Transaction, error) {
			if address != w.account.Address {
				return nil, bind.ErrNotAuthorized
			}
			return w.signer.SignTx(w.account, tx, chainID)
		},
		Context: ctx,
	}, nil
}

func (w *ExternalWallet) Close() error {
	return nil
}
