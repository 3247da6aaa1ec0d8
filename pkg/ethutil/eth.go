package ethutil

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

func GetChainIntFromId(chain string) *big.Int {
	switch chain {
	case "eth":
		return big.NewInt(1)
	case "goerli-testnet":
		return big.NewInt(5)
	case "binance-testnet":
		return big.NewInt(97)
	case "xdai":
		return big.NewInt(100)
	case "local":
		return big.NewInt(1337)
	case "fantom-testnet":
		return big.NewInt(4002)
	case "holesky":
		return big.NewInt(17000)
	case "polygon-testnet":
		return big.NewInt(80001)
	case "arbitrum-testnet":
		return big.NewInt(421611)
	case "avaxc-testnet":
		return big.NewInt(43113)
	case "sepolia":
		return big.NewInt(11155111)

	default:
		return nil
	}
}

// GetEthChainSigner returns the latest signer supported by the chain.
func GetEthChainSigner(chainID *big.Int) types.Signer {
	if chainID == nil {
		return nil
	}

	return types.LatestSignerForChainID(chainID)
}

func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, errors.New("empty private key")
	}

	return ethcrypto.HexToECDSA(hexKey)
}

func PrivateKeyToAddress(key *ecdsa.PrivateKey) common.Address {
	return ethcrypto.PubkeyToAddress(key.PublicKey)
}

// ParseUint256 parses a decimal amount which fits an ABI uint256. The ABI
// encoder truncates larger values silently, so they are rejected here.
func ParseUint256(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%q is not a decimal number", s)
	}

	if amount.Sign() < 0 {
		return nil, fmt.Errorf("%q is negative", s)
	}

	if amount.BitLen() > 256 {
		return nil, fmt.Errorf("%q does not fit in uint256", s)
	}

	return amount, nil
}
