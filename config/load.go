package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/questx-lab/vesting/pkg/ethutil"
)

type LookupFunc func(key string) (string, bool)

// LoadEnvFile loads a dotenv file into the process environment. Variables
// which are already set are not overridden. A missing default file is not an
// error.
func LoadEnvFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return err
	}

	return godotenv.Load(path)
}

func Load(path string) (Configs, error) {
	return LoadWithLookup(path, os.LookupEnv)
}

func LoadWithLookup(path string, lookup LookupFunc) (Configs, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Configs{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Configs, lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("ENV", &cfg.Env)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("VAULT_ADDRESS", &cfg.Vault.Address)
	str("WALLET_CONNECTOR", &cfg.Wallet.Connector)
	str("WALLET_PRIVATE_KEY", &cfg.Wallet.PrivateKey)
	str("WALLET_KEYSTORE", &cfg.Wallet.KeystorePath)
	str("WALLET_PASSPHRASE", &cfg.Wallet.Passphrase)
	str("WALLET_ACCOUNT", &cfg.Wallet.Account)
	str("CLEF_ENDPOINT", &cfg.Wallet.ClefEndpoint)
	str("CACHE_BACKEND", &cfg.Cache.Backend)
	str("REDIS_ADDR", &cfg.Redis.Addr)
	str("API_PORT", &cfg.ApiServer.Port)
	str("PROMETHEUS_PORT", &cfg.PrometheusServer.Port)
	str("CLAIM_DEFAULT_AMOUNT", &cfg.Claim.DefaultAmount)

	if v, ok := lookup("CHAIN"); ok && v != "" {
		cfg.Chain.Chain = v
		if id := ethutil.GetChainIntFromId(v); id != nil {
			cfg.Chain.ChainID = id.Int64()
		}
	}

	if v, ok := lookup("CHAIN_ID"); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid CHAIN_ID %q: %w", v, err)
		}
		cfg.Chain.ChainID = id
	}

	if v, ok := lookup("RPC_URL"); ok && v != "" {
		rpcs := []string{}
		for _, rpc := range strings.Split(v, ",") {
			if rpc = strings.TrimSpace(rpc); rpc != "" {
				rpcs = append(rpcs, rpc)
			}
		}
		cfg.Chain.Rpcs = rpcs
	}

	if cfg.Env == ProdEnv {
		cfg.Log.JSON = true
	}

	return nil
}
