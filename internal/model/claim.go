package model

import "time"

const (
	ReleasableLoading = "loading"
	ReleasableAbsent  = "absent"
	ReleasableLoaded  = "loaded"
	ReleasableError   = "error"
)

const (
	ClaimStatusPending   = "pending"
	ClaimStatusConfirmed = "confirmed"
	ClaimStatusFailed    = "failed"
)

// Releasable is the displayed releasable amount. Amount is always a decimal
// number of wei, "0" when no read has succeeded yet.
type Releasable struct {
	State     string     `json:"state"`
	Amount    string     `json:"amount"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}

type LastClaim struct {
	ID        string    `json:"id"`
	Amount    string    `json:"amount"`
	TxHash    string    `json:"tx_hash,omitempty"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ClaimView struct {
	Vault        string     `json:"vault"`
	Chain        string     `json:"chain"`
	ChainID      int64      `json:"chain_id"`
	Account      string     `json:"account,omitempty"`
	Connector    string     `json:"connector,omitempty"`
	Connected    bool       `json:"connected"`
	Releasable   Releasable `json:"releasable"`
	Pending      bool       `json:"pending"`
	ClaimEnabled bool       `json:"claim_enabled"`
	LastClaim    *LastClaim `json:"last_claim,omitempty"`
}

type GetReleasableRequest struct{}

type GetReleasableResponse struct {
	Releasable Releasable `json:"releasable"`
}

type GetClaimViewRequest struct{}

type GetClaimViewResponse struct {
	View ClaimView `json:"view"`
}

type ClaimRequest struct {
	// Amount in wei. The configured default amount is used when empty.
	Amount string `json:"amount"`
}

type ClaimResponse struct {
	TxHash     string     `json:"tx_hash"`
	Releasable Releasable `json:"releasable"`
}
