package domain

import (
	"context"

	"github.com/questx-lab/vesting/internal/model"
	"github.com/questx-lab/vesting/internal/session"
	"github.com/questx-lab/vesting/internal/wallet"
	"github.com/questx-lab/vesting/pkg/errorx"
	"github.com/questx-lab/vesting/pkg/xcontext"
)

type WalletDomain interface {
	ConnectWallet(context.Context, *model.ConnectWalletRequest) (*model.ConnectWalletResponse, error)
	DisconnectWallet(context.Context, *model.DisconnectWalletRequest) (*model.DisconnectWalletResponse, error)
}

type walletDomain struct {
	provider *session.Provider
}

func NewWalletDomain(provider *session.Provider) *walletDomain {
	return &walletDomain{provider: provider}
}

func (d *walletDomain) ConnectWallet(
	ctx context.Context, req *model.ConnectWalletRequest,
) (*model.ConnectWalletResponse, error) {
	w, err := wallet.Open(ctx, d.provider.Configs().Wallet, req.Passphrase)
	if err != nil {
		return nil, err
	}

	d.provider.Connect(ctx, w)

	return &model.ConnectWalletResponse{
		Account:   w.Address().Hex(),
		Connector: w.Connector(),
	}, nil
}

func (d *walletDomain) DisconnectWallet(
	ctx context.Context, req *model.DisconnectWalletRequest,
) (*model.DisconnectWalletResponse, error) {
	if _, connected := d.provider.Account(); !connected {
		return nil, errorx.New(errorx.WalletNotConnected, "Wallet is not connected")
	}

	d.provider.Disconnect(ctx)
	xcontext.Logger(ctx).Infof("Wallet is disconnected")

	return &model.DisconnectWalletResponse{}, nil
}
