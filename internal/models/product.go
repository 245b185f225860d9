package models

type Product struct {
	ID          int              `json:"id,omitempty"`
	DocumentID  string           `json:"documentId,omitempty"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       float64          `json:"price"`
	Currency    string           `json:"currency"`
	Stock       int              `json:"stock"`
	Photo       *Photo           `json:"photo,omitempty"`
	Category    *ProductCategory `json:"category,omitempty"`
	Subcategory *ProductCategory `json:"subcategory,omitempty"`
	State       *ProductState    `json:"state,omitempty"`
}

// ProductDetail links a product (with quantity) to a sale or an account.
type ProductDetail struct {
	ID         int           `json:"id,omitempty"`
	DocumentID string        `json:"documentId,omitempty"`
	Product    *Product      `json:"product,omitempty"`
	Quantity   int           `json:"quantity"`
	State      *ProductState `json:"state,omitempty"`
}

type ProductCategory struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
}

type ProductState struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
}

type Photo struct {
	ID              int    `json:"id,omitempty"`
	Name            string `json:"name,omitempty"`
	AlternativeText string `json:"alternativeText,omitempty"`
	URL             string `json:"url,omitempty"`
}
