package eth

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/questx-lab/vesting/internal/domain/blockchain/types"
	"github.com/questx-lab/vesting/pkg/xcontext"
)

const maxReceiptInterval = 5 * time.Second

var errReceiptNotFound = errors.New("receipt not found")

// ReceiptFetcher polls the chain until a transaction receipt is available.
type ReceiptFetcher struct {
	chain    string
	client   EthClient
	timeout  time.Duration
	interval time.Duration
}

func NewReceiptFetcher(client EthClient, timeout, interval time.Duration) *ReceiptFetcher {
	return &ReceiptFetcher{
		chain:    client.Chain(),
		client:   client,
		timeout:  timeout,
		interval: interval,
	}
}

func (rf *ReceiptFetcher) WaitReceipt(ctx context.Context, txHash ethcommon.Hash) *types.TrackUpdate {
	update := &types.TrackUpdate{
		Chain:  rf.chain,
		Hash:   txHash,
		Result: types.TrackResultTimeout,
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = rf.interval
	b.MaxInterval = maxReceiptInterval
	if b.MaxInterval < rf.interval {
		b.MaxInterval = rf.interval
	}
	b.MaxElapsedTime = rf.timeout

	var receipt *ethtypes.Receipt
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		defer cancel()

		r, err := rf.client.TransactionReceipt(callCtx, txHash)
		if err != nil {
			if !errors.Is(err, ethereum.NotFound) {
				return err
			}
			return errReceiptNotFound
		}

		if r == nil {
			return errReceiptNotFound
		}

		receipt = r
		return nil
	}

	notify := func(err error, next time.Duration) {
		if !errors.Is(err, errReceiptNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot get receipt for tx hash %s: %v", txHash, err)
		}
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get receipt for tx with hash %s on chain %s: %v",
			txHash, rf.chain, err)
		return update
	}

	update.Receipt = receipt
	if receipt.BlockNumber != nil {
		update.BlockHeight = receipt.BlockNumber.Int64()
	}

	if receipt.Status == ethtypes.ReceiptStatusSuccessful {
		update.Result = types.TrackResultConfirmed
	} else {
		xcontext.Logger(ctx).Warnf("Tx %s on chain %s is reverted", txHash, rf.chain)
		update.Result = types.TrackResultFailure
	}

	return update
}
