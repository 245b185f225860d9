// Package paths centralizes the application page routes and cookie names so
// services, middleware and handlers agree on navigation targets.
package paths

const (
	Home              = "/"
	ControlPanel      = "/control-panel"
	Login             = "/login"
	Register          = "/register"
	RegisterVerify    = "/register/verify-user"
	ResetPassword     = "/reset-password"
	ResetPasswordCode = "/reset-password/enter-code"
	ChangePassword    = "/reset-password/change-password"
)

const (
	// SessionCookie holds the CMS-issued bearer token.
	SessionCookie = "session_token"
	// PendingCookie holds the opaque token of a pending-verification record.
	PendingCookie = "pending_verification"
)
