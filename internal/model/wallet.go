package model

type ConnectWalletRequest struct {
	Passphrase string `json:"passphrase"`
}

type ConnectWalletResponse struct {
	Account   string `json:"account"`
	Connector string `json:"connector"`
}

type DisconnectWalletRequest struct{}

type DisconnectWalletResponse struct{}
