package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/questx-lab/vesting/internal/domain/blockchain/types"
)

// This is an interface for all dispatcher that sends transactions to different blockchain.
type Dispatcher interface {
	Dispatch(ctx context.Context, request *types.DispatchedTxRequest) *types.DispatchedTxResult
}

// ReceiptWatcher blocks until the transaction is mined, reverted or the wait
// times out.
type ReceiptWatcher interface {
	WaitReceipt(ctx context.Context, txHash common.Hash) *types.TrackUpdate
}

// Vault is the vesting vault contract. Both calls are bound to the same
// contract address.
type Vault interface {
	Address() common.Address
	Releasable(ctx context.Context, account common.Address) (*big.Int, error)
	Release(opts *bind.TransactOpts, amount *big.Int) (*ethtypes.Transaction, error)
}
