package eth

import (
	"errors"
	"net"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/rpc"
)

func absInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// isTransportError reports whether err comes from the connection to the node
// rather than from the node answering the request.
func isTransportError(err error) bool {
	if errors.Is(err, ethereum.NotFound) {
		return false
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return false
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return strings.Contains(err.Error(), "connection refused")
}
