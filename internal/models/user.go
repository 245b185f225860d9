package models

// User is the CMS-side auth identity of a control-panel operator.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=128"`
}

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=8,max=128"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyCodeRequest struct {
	Code string `json:"code" validate:"required,len=4,numeric"`
}

type ChangePasswordRequest struct {
	NewPassword        string `json:"newPassword" validate:"required,min=8,max=128"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required,eqfield=NewPassword"`
}

type ChangePasswordAuthenticatedRequest struct {
	CurrentPassword    string `json:"currentPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,min=8,max=128"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required,eqfield=NewPassword"`
}

type CreateCustomerRequest struct {
	FirstName string `json:"first_name" validate:"required,min=3,max=32,namechars"`
	LastName  string `json:"last_name" validate:"required,min=3,max=32,namechars"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"required,numeric"`
	Birthdate string `json:"birthdate" validate:"omitempty"`
	Tastes    string `json:"tastes" validate:"omitempty"`
}

type UpdateCustomerRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,min=3,max=32,namechars"`
	LastName  string `json:"last_name" validate:"omitempty,min=3,max=32,namechars"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,numeric"`
	Birthdate string `json:"birthdate" validate:"omitempty"`
	Tastes    string `json:"tastes" validate:"omitempty"`
}
