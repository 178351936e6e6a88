package payment

// Transfer statuses reported by the gateway.
const (
	StatusSuccess = "SUCCESS"
	StatusPending = "PENDING"
	StatusFailed  = "FAILED"
)

// TransferResponseWrapper wraps the gateway's "data" envelope.
type TransferResponseWrapper struct {
	Data TransferResponse `json:"data"`
}

// TransferResponse is the gateway's answer to a transfer.
type TransferResponse struct {
	TransferID string `json:"transfer_id"`
	Reference  string `json:"reference"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// IsSuccess reports whether the transfer settled.
func (r *TransferResponse) IsSuccess() bool { return r.Status == StatusSuccess }
