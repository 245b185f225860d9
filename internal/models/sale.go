package models

type Sale struct {
	ID              int             `json:"id,omitempty"`
	DocumentID      string          `json:"documentId,omitempty"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description,omitempty"`
	Method          *PaymentMethod  `json:"method,omitempty"`
	ProductsDetails []ProductDetail `json:"products_details,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
}

// Event is a promotion/event the CMS associates with customers and products.
type Event struct {
	ID          int    `json:"id,omitempty"`
	DocumentID  string `json:"documentId,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ValidFrom   string `json:"valid_from,omitempty"`
	ValidTo     string `json:"valid_to,omitempty"`
}
