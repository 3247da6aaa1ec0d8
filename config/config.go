package config

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/questx-lab/vesting/pkg/ethutil"
)

const (
	ProdEnv  = "prod"
	LocalEnv = "local"
)

type Configs struct {
	Env string `toml:"env"`

	Log              LogConfigs    `toml:"log"`
	Vault            VaultConfigs  `toml:"vault"`
	Chain            ChainConfig   `toml:"chain"`
	Wallet           WalletConfigs `toml:"wallet"`
	Claim            ClaimConfigs  `toml:"claim"`
	Cache            CacheConfigs  `toml:"cache"`
	Redis            RedisConfigs  `toml:"redis"`
	ApiServer        ServerConfigs `toml:"api_server"`
	PrometheusServer ServerConfigs `toml:"prometheus_server"`
}

type LogConfigs struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

type VaultConfigs struct {
	Address string `toml:"address"`
}

func (v VaultConfigs) HexAddress() common.Address {
	return common.HexToAddress(v.Address)
}

type ChainConfig struct {
	Chain   string   `toml:"chain" json:"chain"`
	ChainID int64    `toml:"chain_id" json:"chain_id"`
	Rpcs    []string `toml:"rpcs" json:"rpcs"`

	// ETH
	UseEip1559 bool `toml:"use_eip_1559" json:"use_eip_1559"` // For gas calculation

	RefreshConnectionFrequency time.Duration `toml:"refresh_connection_frequency" json:"refresh_connection_frequency"`
}

func (c ChainConfig) ID() *big.Int {
	return big.NewInt(c.ChainID)
}

type WalletConfigs struct {
	// Connector is one of "key", "keystore" or "external". Empty means it is
	// inferred from the other fields.
	Connector string `toml:"connector"`

	PrivateKey   string `toml:"private_key"`
	KeystorePath string `toml:"keystore_path"`
	Passphrase   string `toml:"passphrase"`
	Account      string `toml:"account"`
	ClefEndpoint string `toml:"clef_endpoint"`

	// AutoConnect connects the wallet when the program starts.
	AutoConnect bool `toml:"auto_connect"`
}

type ClaimConfigs struct {
	DefaultAmount       string        `toml:"default_amount"`
	ReceiptTimeout      time.Duration `toml:"receipt_timeout"`
	ReceiptPollInterval time.Duration `toml:"receipt_poll_interval"`
}

type CacheConfigs struct {
	Backend string        `toml:"backend"`
	TTL     time.Duration `toml:"ttl"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func Default() Configs {
	return Configs{
		Env: LocalEnv,
		Log: LogConfigs{Level: "info"},
		Chain: ChainConfig{
			Chain:                      "sepolia",
			ChainID:                    11155111,
			Rpcs:                       []string{"https://rpc.sepolia.org"},
			UseEip1559:                 true,
			RefreshConnectionFrequency: 5 * time.Minute,
		},
		Wallet: WalletConfigs{AutoConnect: true},
		Claim: ClaimConfigs{
			DefaultAmount:       "0",
			ReceiptTimeout:      2 * time.Minute,
			ReceiptPollInterval: time.Second,
		},
		Cache:            CacheConfigs{Backend: "memory", TTL: 15 * time.Second},
		Redis:            RedisConfigs{Addr: "localhost:6379"},
		ApiServer:        ServerConfigs{Host: "127.0.0.1", Port: "8080"},
		PrometheusServer: ServerConfigs{Host: "127.0.0.1", Port: "9090"},
	}
}

func (c Configs) Validate() error {
	if c.Vault.Address == "" {
		return errors.New("vault address is required")
	}

	if !common.IsHexAddress(c.Vault.Address) {
		return fmt.Errorf("vault address %q is not a hex address", c.Vault.Address)
	}

	if c.Chain.ChainID <= 0 {
		return fmt.Errorf("invalid chain id %d", c.Chain.ChainID)
	}

	if len(c.Chain.Rpcs) == 0 {
		return fmt.Errorf("no rpc configured for chain %s", c.Chain.Chain)
	}

	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	if _, err := ethutil.ParseUint256(c.Claim.DefaultAmount); err != nil {
		return fmt.Errorf("invalid default claim amount: %w", err)
	}

	return nil
}
