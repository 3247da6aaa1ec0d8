package eth

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/questx-lab/vesting/internal/domain/blockchain/types"
	"github.com/questx-lab/vesting/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEthDispatcher_Dispatch(t *testing.T) {
	key, from := newKey(t)
	tx := newSignedTx(t, key, 1)
	enough := new(big.Int).Set(tx.Cost())

	tests := []struct {
		name       string
		balance    *big.Int
		balanceErr error
		sendErr    error
		send       bool
		want       *types.DispatchedTxResult
	}{
		{
			name:    "success",
			balance: enough,
			send:    true,
			want:    &types.DispatchedTxResult{Success: true, Err: types.ErrNil},
		},
		{
			name:    "already known is a success",
			balance: enough,
			send:    true,
			sendErr: errors.New("already known"),
			want:    &types.DispatchedTxResult{Success: true, Err: types.ErrNil},
		},
		{
			name:    "not enough balance",
			balance: new(big.Int).Sub(enough, big.NewInt(1)),
			want:    &types.DispatchedTxResult{Success: false, Err: types.ErrNotEnoughBalance},
		},
		{
			name:       "cannot get balance",
			balanceErr: errors.New("rpc down"),
			want:       &types.DispatchedTxResult{Success: false, Err: types.ErrGeneric},
		},
		{
			name:    "nonce too low",
			balance: enough,
			send:    true,
			sendErr: errors.New("nonce too low"),
			want:    &types.DispatchedTxResult{Success: false, Err: types.ErrNonceNotMatched},
		},
		{
			name:    "submit error",
			balance: enough,
			send:    true,
			sendErr: errors.New("insufficient funds for gas"),
			want:    &types.DispatchedTxResult{Success: false, Err: types.ErrSubmitTx},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mocks.EthClient{}
			client.On("BalanceAt", mock.Anything, from, mock.Anything).Return(tt.balance, tt.balanceErr)
			if tt.send {
				client.On("SendTransaction", mock.Anything, tx).Return(tt.sendErr)
			}

			result := NewEthDispatcher(client).Dispatch(context.Background(), &types.DispatchedTxRequest{
				Chain: "local",
				Tx:    tx,
			})

			require.Equal(t, tt.want.Success, result.Success)
			require.Equal(t, tt.want.Err, result.Err)
			require.Equal(t, "local", result.Chain)
			require.Equal(t, tx.Hash().Hex(), result.TxHash)
			client.AssertExpectations(t)
			if !tt.send {
				client.AssertNotCalled(t, "SendTransaction", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestEthDispatcher_NilTx(t *testing.T) {
	client := &mocks.EthClient{}
	result := NewEthDispatcher(client).Dispatch(context.Background(), &types.DispatchedTxRequest{Chain: "local"})

	require.False(t, result.Success)
	require.Equal(t, types.ErrMarshal, result.Err)
	client.AssertNotCalled(t, "BalanceAt", mock.Anything, mock.Anything, mock.Anything)
}
