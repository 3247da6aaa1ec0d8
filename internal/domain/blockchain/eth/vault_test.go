package eth

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/questx-lab/vesting/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testVault = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

func TestVaultContract_Releasable(t *testing.T) {
	account := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	client := &mocks.EthClient{}
	client.On("CallContract", mock.Anything, mock.MatchedBy(func(msg ethereum.CallMsg) bool {
		return msg.To != nil && *msg.To == testVault && msg.From == account
	}), mock.Anything).Return(common.LeftPadBytes(big.NewInt(42).Bytes(), 32), nil)

	vault, err := NewVaultContract(testVault, client)
	require.NoError(t, err)
	require.Equal(t, testVault, vault.Address())

	amount, err := vault.Releasable(context.Background(), account)
	require.NoError(t, err)
	require.Equal(t, int64(42), amount.Int64())
}

func TestVaultContract_ReleasableNoCode(t *testing.T) {
	client := &mocks.EthClient{}
	client.On("CallContract", mock.Anything, mock.Anything, mock.Anything).Return([]byte{}, nil)
	client.On("CodeAt", mock.Anything, testVault, mock.Anything).Return([]byte{}, nil)

	vault, err := NewVaultContract(testVault, client)
	require.NoError(t, err)

	_, err = vault.Releasable(context.Background(), common.Address{})
	require.ErrorIs(t, err, bind.ErrNoCode)
}

func TestVaultContract_ReleasableError(t *testing.T) {
	client := &mocks.EthClient{}
	client.On("CallContract", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("rpc down"))

	vault, err := NewVaultContract(testVault, client)
	require.NoError(t, err)

	_, err = vault.Releasable(context.Background(), common.Address{})
	require.Error(t, err)
}

func TestVaultContract_Release(t *testing.T) {
	key, from := newKey(t)
	client := &mocks.EthClient{}

	vault, err := NewVaultContract(testVault, client)
	require.NoError(t, err)

	opts, err := bind.NewKeyedTransactorWithChainID(key, testChainID)
	require.NoError(t, err)
	opts.NoSend = true
	opts.GasPrice = big.NewInt(1_000_000_000)
	opts.GasLimit = 100000
	opts.Nonce = big.NewInt(0)
	opts.Context = context.Background()

	tx, err := vault.Release(opts, big.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, testVault, *tx.To())

	// release(uint256) selector followed by a zero word.
	require.Equal(t, common.FromHex("0x37bdc99b"), tx.Data()[:4])
	require.Equal(t, make([]byte, 32), tx.Data()[4:])

	sender, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(testChainID), tx)
	require.NoError(t, err)
	require.Equal(t, from, sender)

	client.AssertNotCalled(t, "SendTransaction", mock.Anything, mock.Anything)
}
