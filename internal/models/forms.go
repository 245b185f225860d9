package models

// CmsError is the normalized shape of every remote-originating failure.
// It is returned inside a FormState, never raised, so the UI can render it
// inline next to the form.
type CmsError struct {
	Status  int    `json:"status,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

// FormState is what every form endpoint answers with, success or not.
// Redirect tells the UI where to navigate after showing Message as a toast.
type FormState struct {
	Success          bool                `json:"success"`
	Message          string              `json:"message,omitempty"`
	Data             interface{}         `json:"data,omitempty"`
	ValidationErrors map[string][]string `json:"validationErrors,omitempty"`
	CmsErrors        *CmsError           `json:"cmsErrors,omitempty"`
	Redirect         string              `json:"redirect,omitempty"`

	// Extra payload for specific flows.
	CustomerID string `json:"customerId,omitempty"`
	AccountID  string `json:"accountId,omitempty"`
	User       *User  `json:"user,omitempty"`
}

func ValidationFailed(errs map[string][]string, data interface{}) *FormState {
	return &FormState{
		Success:          false,
		Message:          "Error de validación.",
		Data:             data,
		ValidationErrors: errs,
	}
}

func CmsFailed(message string, cmsErr *CmsError) *FormState {
	if cmsErr == nil {
		cmsErr = &CmsError{Status: 500}
	}
	return &FormState{Success: false, Message: message, CmsErrors: cmsErr}
}

// ConnectionError is the boundary translation of a transport failure.
func ConnectionError() *FormState {
	return &FormState{
		Success:   false,
		Message:   "Error de conexión con el servidor.",
		CmsErrors: &CmsError{Status: 500, Message: "Error de conexión con el servidor."},
	}
}
