package types

import (
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

type TrackResult int

const (
	TrackResultConfirmed TrackResult = iota
	TrackResultFailure
	TrackResultTimeout
)

func (r TrackResult) String() string {
	switch r {
	case TrackResultConfirmed:
		return "confirmed"
	case TrackResultFailure:
		return "failure"
	default:
		return "timeout"
	}
}

type TrackUpdate struct {
	Chain       string
	Hash        common.Hash
	BlockHeight int64
	Result      TrackResult
	Receipt     *ethtypes.Receipt
}
