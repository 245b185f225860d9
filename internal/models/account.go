package models

// Account is the prepaid/credit balance the CMS keeps per customer.
type Account struct {
	ID         int              `json:"id,omitempty"`
	DocumentID string           `json:"documentId,omitempty"`
	Amount     float64          `json:"amount"`
	Currency   string           `json:"currency"`
	Customer   *Customer        `json:"customer,omitempty"`
	Payments   []AccountPayment `json:"payments,omitempty"`
	State      *AccountState    `json:"state,omitempty"`
	Products   []ProductDetail  `json:"products,omitempty"`
	CreatedAt  string           `json:"createdAt,omitempty"`
	UpdatedAt  string           `json:"updatedAt,omitempty"`
}

type AccountPayment struct {
	ID         int            `json:"id,omitempty"`
	DocumentID string         `json:"documentId,omitempty"`
	Amount     float64        `json:"amount"`
	Currency   string         `json:"currency"`
	Method     *PaymentMethod `json:"method,omitempty"`
	CreatedAt  string         `json:"createdAt,omitempty"`
}

// AccountState names: FREE, SEPARATE, CREDIT, COMBINED.
type AccountState struct {
	ID          int    `json:"id,omitempty"`
	DocumentID  string `json:"documentId,omitempty"`
	Name        string `json:"name"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

type PaymentMethod struct {
	ID   int    `json:"id,omitempty"`
	Type string `json:"type"`
}
