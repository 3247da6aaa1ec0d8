package common

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestRedisKeyReleasable(t *testing.T) {
	vault := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	account := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	key := RedisKeyReleasable("sepolia", vault, account)
	require.Equal(t,
		"releasable:sepolia:0x5fbdb2315678afecb367f032d93f642f64180aa3:0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
		key)

	got, ok := FromRedisKeyReleasable(key)
	require.True(t, ok)
	require.Equal(t, account, got)

	_, ok = FromRedisKeyReleasable("userstatus:abc")
	require.False(t, ok)
}
