package payment

// TransferRequest is the body of POST /transfers. Amount is a decimal string.
type TransferRequest struct {
	Reference string `json:"reference"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
}
