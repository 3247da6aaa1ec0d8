package eth

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/questx-lab/vesting/internal/domain/blockchain/types"
	"github.com/questx-lab/vesting/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReceiptFetcher_WaitReceipt(t *testing.T) {
	hash := common.HexToHash("0xabc")

	t.Run("confirmed after a few polls", func(t *testing.T) {
		client := &mocks.EthClient{ChainName: "local"}
		client.On("TransactionReceipt", mock.Anything, hash).Return(nil, ethereum.NotFound).Twice()
		client.On("TransactionReceipt", mock.Anything, hash).Return(&ethtypes.Receipt{
			Status:      ethtypes.ReceiptStatusSuccessful,
			BlockNumber: big.NewInt(42),
		}, nil).Once()

		update := NewReceiptFetcher(client, time.Second, time.Millisecond).WaitReceipt(context.Background(), hash)
		require.Equal(t, types.TrackResultConfirmed, update.Result)
		require.Equal(t, int64(42), update.BlockHeight)
		require.Equal(t, "local", update.Chain)
		client.AssertNumberOfCalls(t, "TransactionReceipt", 3)
	})

	t.Run("reverted", func(t *testing.T) {
		client := &mocks.EthClient{ChainName: "local"}
		client.On("TransactionReceipt", mock.Anything, hash).Return(&ethtypes.Receipt{
			Status: ethtypes.ReceiptStatusFailed,
		}, nil)

		update := NewReceiptFetcher(client, time.Second, time.Millisecond).WaitReceipt(context.Background(), hash)
		require.Equal(t, types.TrackResultFailure, update.Result)
		require.NotNil(t, update.Receipt)
	})

	t.Run("timeout", func(t *testing.T) {
		client := &mocks.EthClient{ChainName: "local"}
		client.On("TransactionReceipt", mock.Anything, hash).Return(nil, errors.New("rpc down"))

		update := NewReceiptFetcher(client, 20*time.Millisecond, time.Millisecond).WaitReceipt(context.Background(), hash)
		require.Equal(t, types.TrackResultTimeout, update.Result)
		require.Nil(t, update.Receipt)
	})

	t.Run("context cancelled", func(t *testing.T) {
		client := &mocks.EthClient{ChainName: "local"}
		client.On("TransactionReceipt", mock.Anything, hash).Return(nil, ethereum.NotFound)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		update := NewReceiptFetcher(client, time.Minute, time.Millisecond).WaitReceipt(ctx, hash)
		require.Equal(t, types.TrackResultTimeout, update.Result)
	})
}
