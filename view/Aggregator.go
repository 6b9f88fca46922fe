package view

// BalanceInquiryRequest is the payload for the aggregator's balance-inquiry
// endpoint. AccountPassword always carries RSA ciphertext, never plaintext.
type BalanceInquiryRequest struct {
	Organization    string `json:"organization"`
	ConnectedId     string `json:"connectedId,omitempty"`
	Account         string `json:"account"`
	AccountPassword string `json:"accountPassword"`
	Id              string `json:"id"`
	TransactionId   string `json:"transactionId,omitempty"`
}

// AggregatorCodeSuccess is the aggregator's sentinel for a verified account.
// Any other result code means the brokerage rejected the credentials.
const AggregatorCodeSuccess = "CF-00000"

type BalanceInquiryResponse struct {
	Result AggregatorResult      `json:"result"`
	Data   BalanceInquiryDetails `json:"data"`
}

type AggregatorResult struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BalanceInquiryDetails struct {
	ConnectedId    string  `json:"connectedId"`
	AccountBalance float64 `json:"accountBalance"`
}

// AccountInfo is the interpreted outcome of a successful verification.
type AccountInfo struct {
	ConnectedId string
	Balance     float64
}
