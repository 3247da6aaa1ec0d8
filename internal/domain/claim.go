package domain

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/vesting/internal/common"
	"github.com/questx-lab/vesting/internal/domain/blockchain/eth"
	"github.com/questx-lab/vesting/internal/domain/blockchain/types"
	"github.com/questx-lab/vesting/internal/model"
	"github.com/questx-lab/vesting/internal/session"
	"github.com/questx-lab/vesting/pkg/errorx"
	"github.com/questx-lab/vesting/pkg/ethutil"
	"github.com/questx-lab/vesting/pkg/querycache"
	"github.com/questx-lab/vesting/pkg/xcontext"
)

type ClaimDomain interface {
	GetReleasable(context.Context, *model.GetReleasableRequest) (*model.GetReleasableResponse, error)
	GetClaimView(context.Context, *model.GetClaimViewRequest) (*model.GetClaimViewResponse, error)
	Claim(context.Context, *model.ClaimRequest) (*model.ClaimResponse, error)
	Subscribe(func(model.ClaimView)) (unsubscribe func())
}

type claimDomain struct {
	provider *session.Provider

	// Only one claim of this process can be in flight.
	pending  atomic.Bool
	inflight atomic.Int32

	mutex      sync.RWMutex
	account    ethcommon.Address
	releasable model.Releasable
	lastClaim  *model.LastClaim

	subscribers *xsync.MapOf[string, func(model.ClaimView)]
}

func NewClaimDomain(provider *session.Provider) *claimDomain {
	d := &claimDomain{
		provider:    provider,
		releasable:  absentReleasable(),
		subscribers: xsync.NewMapOf[func(model.ClaimView)](),
	}

	if account, ok := provider.Account(); ok {
		d.account = account
	}

	provider.OnConnectionChange(d.onConnectionChange)
	return d
}

func absentReleasable() model.Releasable {
	return model.Releasable{State: model.ReleasableAbsent, Amount: "0"}
}

func (d *claimDomain) onConnectionChange(ctx context.Context, account ethcommon.Address, connected bool) {
	if !connected {
		// The view keeps the last amount, the next connection reads again.
		d.mutex.RLock()
		previous := d.account
		d.mutex.RUnlock()

		d.invalidate(ctx, previous)
		d.publish()
		return
	}

	d.switchAccount(ctx, account)
	d.read(ctx, account, false)
}

// switchAccount makes account the one the displayed amount belongs to. The
// amount of another account is dropped from the view and the cache.
func (d *claimDomain) switchAccount(ctx context.Context, account ethcommon.Address) {
	d.mutex.Lock()
	previous := d.account
	if previous != account {
		d.account = account
		d.releasable = absentReleasable()
	}
	d.mutex.Unlock()

	if previous != account {
		d.invalidate(ctx, previous)
	}
}

func (d *claimDomain) invalidate(ctx context.Context, account ethcommon.Address) {
	if account == (ethcommon.Address{}) {
		return
	}

	if err := d.provider.Cache().Invalidate(ctx, d.releasableKey(account)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate releasable amount of %s: %v", account, err)
	}
}

func (d *claimDomain) releasableKey(account ethcommon.Address) string {
	return common.RedisKeyReleasable(d.provider.Chain(), d.provider.Vault().Address(), account)
}

// read loads the releasable amount of account and folds the result into the
// displayed value. Failures are kept in the displayed value, not returned.
func (d *claimDomain) read(ctx context.Context, account ethcommon.Address, force bool) model.Releasable {
	d.inflight.Add(1)
	d.publish()

	fetcher := func(ctx context.Context) (*big.Int, error) {
		callCtx, cancel := context.WithTimeout(ctx, eth.RpcTimeOut)
		defer cancel()

		return d.provider.Vault().Releasable(callCtx, account)
	}

	var (
		amount *big.Int
		err    error
	)

	key := d.releasableKey(account)
	if force {
		amount, err = querycache.Refetch(ctx, d.provider.Cache(), key, fetcher)
	} else {
		amount, err = querycache.Fetch(ctx, d.provider.Cache(), key, fetcher)
	}

	d.mutex.Lock()
	if d.account == account {
		now := time.Now()
		switch {
		case err != nil:
			xcontext.Logger(ctx).Errorf("Cannot read releasable amount of %s: %v", account, err)
			d.releasable.State = model.ReleasableError
			d.releasable.Error = err.Error()
		case amount == nil:
			d.releasable = model.Releasable{State: model.ReleasableAbsent, Amount: "0", UpdatedAt: &now}
		default:
			d.releasable = model.Releasable{State: model.ReleasableLoaded, Amount: amount.String(), UpdatedAt: &now}
		}
	}
	releasable := d.releasable
	d.mutex.Unlock()

	d.inflight.Add(-1)
	d.publish()

	return releasable
}

func (d *claimDomain) GetReleasable(
	ctx context.Context, req *model.GetReleasableRequest,
) (*model.GetReleasableResponse, error) {
	account, connected := d.provider.Account()
	if !connected {
		return &model.GetReleasableResponse{Releasable: d.view().Releasable}, nil
	}

	d.switchAccount(ctx, account)
	return &model.GetReleasableResponse{Releasable: d.read(ctx, account, false)}, nil
}

func (d *claimDomain) GetClaimView(
	ctx context.Context, req *model.GetClaimViewRequest,
) (*model.GetClaimViewResponse, error) {
	return &model.GetClaimViewResponse{View: d.view()}, nil
}

func (d *claimDomain) Claim(ctx context.Context, req *model.ClaimRequest) (*model.ClaimResponse, error) {
	account, connected := d.provider.Account()
	if !connected {
		common.PromCounters[common.ClaimsTotal].WithLabelValues("rejected").Inc()
		return nil, errorx.New(errorx.WalletNotConnected, "Connect a wallet to claim")
	}

	amountString := req.Amount
	if amountString == "" {
		amountString = d.provider.Configs().Claim.DefaultAmount
	}

	amount, err := ethutil.ParseUint256(amountString)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid amount: %v", err)
	}

	if !d.pending.CompareAndSwap(false, true) {
		common.PromCounters[common.ClaimsTotal].WithLabelValues("rejected").Inc()
		return nil, errorx.New(errorx.ClaimInProgress, "A claim is already in progress")
	}

	attempt := &model.LastClaim{
		ID:        uuid.NewString(),
		Amount:    amount.String(),
		Status:    model.ClaimStatusPending,
		CreatedAt: time.Now(),
	}

	d.mutex.Lock()
	d.lastClaim = attempt
	d.mutex.Unlock()
	d.publish()

	xcontext.Logger(ctx).Infof("Claim %s of %s wei for %s is submitting", attempt.ID, amount, account)
	txHash, claimErr := d.release(ctx, amount)

	d.mutex.Lock()
	attempt.TxHash = txHash
	if claimErr != nil {
		attempt.Status = model.ClaimStatusFailed
		attempt.Error = claimErr.Error()
	} else {
		attempt.Status = model.ClaimStatusConfirmed
	}
	d.mutex.Unlock()

	// The claim control is re-enabled only after the amount is read again,
	// whatever the outcome of the transaction.
	releasable := d.read(ctx, account, true)

	d.pending.Store(false)
	d.publish()

	if claimErr != nil {
		common.PromCounters[common.ClaimsTotal].WithLabelValues("failure").Inc()
		return nil, claimErr
	}

	common.PromCounters[common.ClaimsTotal].WithLabelValues("success").Inc()
	xcontext.Logger(ctx).Infof("Claim %s is confirmed with tx %s", attempt.ID, txHash)

	return &model.ClaimResponse{TxHash: txHash, Releasable: releasable}, nil
}

// release submits release(amount) and waits for its receipt.
func (d *claimDomain) release(ctx context.Context, amount *big.Int) (string, error) {
	opts, err := d.provider.TransactOpts(ctx)
	if err != nil {
		var errx errorx.Error
		if errors.As(err, &errx) {
			return "", errx
		}

		xcontext.Logger(ctx).Errorf("Cannot get transact options: %v", err)
		return "", errorx.New(errorx.ClaimFailed, "Cannot sign the claim transaction")
	}

	tx, err := d.provider.Vault().Release(opts, amount)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot build release transaction: %v", err)
		return "", errorx.New(errorx.ClaimFailed, "Cannot build the claim transaction: %v", err)
	}

	txHash := tx.Hash().Hex()
	result := d.provider.Dispatcher().Dispatch(ctx, &types.DispatchedTxRequest{
		Chain: d.provider.Chain(),
		Tx:    tx,
	})
	if !result.Success {
		return txHash, errorx.New(errorx.ClaimFailed, "Cannot submit transaction %s: %s", txHash, result.Err)
	}

	update := d.provider.ReceiptWatcher().WaitReceipt(ctx, tx.Hash())
	switch update.Result {
	case types.TrackResultConfirmed:
		return txHash, nil
	case types.TrackResultFailure:
		return txHash, errorx.New(errorx.ClaimFailed, "Transaction %s is reverted", txHash)
	default:
		return txHash, errorx.New(errorx.ClaimFailed, "Transaction %s is not confirmed in time", txHash)
	}
}

func (d *claimDomain) view() model.ClaimView {
	account, connected := d.provider.Account()
	pending := d.pending.Load()

	d.mutex.RLock()
	releasable := d.releasable
	var lastClaim *model.LastClaim
	if d.lastClaim != nil {
		c := *d.lastClaim
		lastClaim = &c
	}
	d.mutex.RUnlock()

	if releasable.State == model.ReleasableAbsent && releasable.UpdatedAt == nil && d.inflight.Load() > 0 {
		releasable.State = model.ReleasableLoading
	}

	view := model.ClaimView{
		Vault:        d.provider.Vault().Address().Hex(),
		Chain:        d.provider.Chain(),
		ChainID:      d.provider.ChainID().Int64(),
		Connected:    connected,
		Connector:    d.provider.Connector(),
		Releasable:   releasable,
		Pending:      pending,
		ClaimEnabled: connected && !pending,
		LastClaim:    lastClaim,
	}

	if connected {
		view.Account = account.Hex()
	}

	return view
}

func (d *claimDomain) Subscribe(f func(model.ClaimView)) func() {
	id := uuid.NewString()
	d.subscribers.Store(id, f)

	return func() {
		d.subscribers.Delete(id)
	}
}

func (d *claimDomain) publish() {
	if d.subscribers.Size() == 0 {
		return
	}

	view := d.view()
	d.subscribers.Range(func(_ string, f func(model.ClaimView)) bool {
		f(view)
		return true
	})
}
