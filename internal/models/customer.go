package models

// Customer is owned by the CMS; we only shape queries and display results.
type Customer struct {
	ID         int      `json:"id,omitempty"`
	DocumentID string   `json:"documentId,omitempty"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email,omitempty"`
	Birthdate  string   `json:"birthdate,omitempty"`
	Tastes     string   `json:"tastes,omitempty"`
	Account    *Account `json:"account,omitempty"`
	Sales      []Sale   `json:"sales,omitempty"`
	Events     []Event  `json:"events,omitempty"`
	CreatedAt  string   `json:"createdAt,omitempty"`
	UpdatedAt  string   `json:"updatedAt,omitempty"`
}
