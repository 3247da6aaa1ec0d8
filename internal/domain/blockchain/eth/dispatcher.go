package eth

import (
	"context"
	"strings"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/questx-lab/vesting/internal/common"
	"github.com/questx-lab/vesting/internal/domain/blockchain/types"
	"github.com/questx-lab/vesting/pkg/xcontext"
)

type EthDispatcher struct {
	client EthClient
}

func NewEthDispatcher(client EthClient) *EthDispatcher {
	return &EthDispatcher{client: client}
}

func (d *EthDispatcher) Dispatch(ctx context.Context, request *types.DispatchedTxRequest) *types.DispatchedTxResult {
	result := d.dispatch(ctx, request)
	if !result.Success {
		common.PromCounters[common.BlockchainTransactionFailure].WithLabelValues(result.Err.String()).Inc()
	}

	return result
}

func (d *EthDispatcher) dispatch(ctx context.Context, request *types.DispatchedTxRequest) *types.DispatchedTxResult {
	tx := request.Tx
	if tx == nil {
		xcontext.Logger(ctx).Errorf("Cannot dispatch an empty transaction on chain %s", request.Chain)
		return &types.DispatchedTxResult{Chain: request.Chain, Err: types.ErrMarshal}
	}

	from, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot recover sender of tx %s: %v", tx.Hash(), err)
		return types.NewDispatchTxError(request, types.ErrMarshal)
	}

	// Check the balance to see if we have enough native token.
	balance, err := d.client.BalanceAt(ctx, from, nil)
	if err != nil || balance == nil {
		xcontext.Logger(ctx).Errorf("Cannot get balance for account %s: %v", from, err)
		return types.NewDispatchTxError(request, types.ErrGeneric)
	}

	minimum := tx.Cost()
	if minimum.Cmp(balance) > 0 {
		xcontext.Logger(ctx).Errorf("Balance smaller than minimum required for this transaction, "+
			"from = %s, balance = %s, minimum = %s, chain = %s",
			from, balance, minimum, request.Chain)
		return types.NewDispatchTxError(request, types.ErrNotEnoughBalance)
	}

	err = d.client.SendTransaction(ctx, tx)
	if err == nil {
		xcontext.Logger(ctx).Infof("Tx is dispatched successfully for chain %s from %s txHash = %s",
			request.Chain, from, tx.Hash())
		return types.NewDispatchTxSuccess(request)
	}

	// A duplicated submission is counted as successful. Ethereum does not return error code in
	// its JSON RPC, so we have to rely on string matching.
	if strings.Contains(err.Error(), "already known") {
		xcontext.Logger(ctx).Warnf("Tx %s is already known by chain %s", tx.Hash(), request.Chain)
		return types.NewDispatchTxSuccess(request)
	}

	xcontext.Logger(ctx).Errorf("Failed to dispatch tx: %v", err)
	if strings.Contains(err.Error(), "nonce too low") {
		return types.NewDispatchTxError(request, types.ErrNonceNotMatched)
	}

	return types.NewDispatchTxError(request, types.ErrSubmitTx)
}
