package common

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const releasableKeyPrefix = "releasable"

func RedisKeyReleasable(chain string, vault, account common.Address) string {
	return fmt.Sprintf("%s:%s:%s:%s", releasableKeyPrefix, chain, strings.ToLower(vault.Hex()), strings.ToLower(account.Hex()))
}

// FromRedisKeyReleasable returns the account part of a releasable key.
func FromRedisKeyReleasable(key string) (common.Address, bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 4 || parts[0] != releasableKeyPrefix || !common.IsHexAddress(parts[3]) {
		return common.Address{}, false
	}

	return common.HexToAddress(parts[3]), true
}
