package models

type PaymentToken struct {
	ClientToken string `json:"clientToken"`
	Success     bool   `json:"success"`
}

type PaymentRequest struct {
	Nonce  string
	Amount Price
}

type Transaction struct {
	ID     string `json:"id"`
	Amount Price  `json:"amount"`
}

type PaymentResult struct {
	Success     bool        `json:"success"`
	Transaction Transaction `json:"transaction"`
}

// Order is what gets recorded after a successful payment. Products is the
// comma-terminated list of product names.
type Order struct {
	TransactionID string
	Amount        Price
	Products      string
}
