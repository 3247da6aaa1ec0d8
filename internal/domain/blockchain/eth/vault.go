package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/questx-lab/vesting/contract/vesting_vault"
	internalcommon "github.com/questx-lab/vesting/internal/common"
)

// VaultContract binds the vesting vault at a single address for both its
// read and its write.
type VaultContract struct {
	address  common.Address
	contract *vesting_vault.VestingVault
}

func NewVaultContract(address common.Address, backend bind.ContractBackend) (*VaultContract, error) {
	contract, err := vesting_vault.NewVestingVault(address, backend)
	if err != nil {
		return nil, err
	}

	return &VaultContract{address: address, contract: contract}, nil
}

func (v *VaultContract) Address() common.Address {
	return v.address
}

func (v *VaultContract) Releasable(ctx context.Context, account common.Address) (*big.Int, error) {
	amount, err := v.contract.Releasable(&bind.CallOpts{Context: ctx, From: account})
	if err != nil {
		internalcommon.PromCounters[internalcommon.ContractReadsTotal].WithLabelValues("failure").Inc()
		return nil, err
	}

	internalcommon.PromCounters[internalcommon.ContractReadsTotal].WithLabelValues("success").Inc()
	return amount, nil
}

func (v *VaultContract) Release(opts *bind.TransactOpts, amount *big.Int) (*ethtypes.Transaction, error) {
	return v.contract.Release(opts, amount)
}
