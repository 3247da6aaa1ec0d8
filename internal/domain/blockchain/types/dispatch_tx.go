package types

import ethtypes "github.com/ethereum/go-ethereum/core/types"

type DispatchError int

const (
	ErrNil DispatchError = iota // no error
	ErrGeneric
	ErrNotEnoughBalance
	ErrMarshal
	ErrSubmitTx
	ErrNonceNotMatched
)

func (e DispatchError) String() string {
	switch e {
	case ErrNil:
		return "nil"
	case ErrNotEnoughBalance:
		return "not enough balance"
	case ErrMarshal:
		return "cannot marshal transaction"
	case ErrSubmitTx:
		return "cannot submit transaction"
	case ErrNonceNotMatched:
		return "nonce not matched"
	default:
		return "generic error"
	}
}

type DispatchedTxRequest struct {
	Chain string
	Tx    *ethtypes.Transaction
}

type DispatchedTxResult struct {
	Success bool
	Err     DispatchError
	Chain   string
	TxHash  string
}

func NewDispatchTxError(request *DispatchedTxRequest, err DispatchError) *DispatchedTxResult {
	return &DispatchedTxResult{
		Chain:   request.Chain,
		TxHash:  request.Tx.Hash().Hex(),
		Success: false,
		Err:     err,
	}
}

func NewDispatchTxSuccess(request *DispatchedTxRequest) *DispatchedTxResult {
	return &DispatchedTxResult{
		Chain:   request.Chain,
		TxHash:  request.Tx.Hash().Hex(),
		Success: true,
		Err:     ErrNil,
	}
}
