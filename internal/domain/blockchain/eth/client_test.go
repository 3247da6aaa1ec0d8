package eth

import (
	"context"
	"math/big"
	"sort"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/questx-lab/vesting/config"
	"github.com/stretchr/testify/require"
)

func TestEthClient_HealthySelection(t *testing.T) {
	balance := big.NewInt(100)
	a := newRpcServer(t, 100, balance)
	b := newRpcServer(t, 102, balance)
	ahead := newRpcServer(t, 500, balance)

	client := NewEthClients(config.ChainConfig{
		Chain:   "local",
		ChainID: 1337,
		Rpcs:    []string{a.URL, b.URL, ahead.URL, "http://127.0.0.1:1"},
	}).(*defaultEthClient)
	defer client.Close()

	ctx := context.Background()
	client.Start(ctx)

	rpcs := append([]string{}, client.rpcs...)
	sort.Strings(rpcs)
	expected := []string{a.URL, b.URL}
	sort.Strings(expected)
	require.Equal(t, expected, rpcs)

	got, err := client.BalanceAt(ctx, common.HexToAddress("0x01"), nil)
	require.NoError(t, err)
	require.Equal(t, balance, got)

	height, err := client.BlockNumber(ctx)
	require.NoError(t, err)
	require.Contains(t, []uint64{100, 102}, height)
}

func TestEthClient_NoHealthyRpc(t *testing.T) {
	client := NewEthClients(config.ChainConfig{
		Chain:   "local",
		ChainID: 1337,
		Rpcs:    []string{"http://127.0.0.1:1"},
	})
	defer client.Close()

	_, err := client.BalanceAt(context.Background(), common.HexToAddress("0x01"), nil)
	require.ErrorContains(t, err, "no healthy RPC for chain local")
}

func TestEthClient_ChainID(t *testing.T) {
	client := NewEthClients(config.ChainConfig{Chain: "local", ChainID: 1337})

	id := client.ChainID()
	id.SetInt64(1)
	require.Equal(t, int64(1337), client.ChainID().Int64())
	require.Equal(t, "local", client.Chain())
}
