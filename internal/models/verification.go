package models

import "time"

// Verification flow types, matching the CMS mailer endpoints.
const (
	FlowAuthRegister  = "auth-register"
	FlowResetPassword = "reset-password"
)

// PendingVerification is the server-side record bridging a multi-step flow
// (register → verify code, reset → verify code → change password) across
// requests. The browser only holds the opaque Token in a cookie.
//
// An auth-register record always carries PasswordEnc; a reset-password
// record never does. CodeHash is only set when the email provider generates
// the code locally (smtp mode); ConfirmedCode is set on the reset flow once
// the code has been verified, so the final change-password step can reuse it.
type PendingVerification struct {
	ID            int64     `json:"id"`
	Token         string    `json:"-"`
	Type          string    `json:"type"`
	Email         string    `json:"email"`
	Username      string    `json:"username,omitempty"`
	PasswordEnc   string    `json:"-"`
	CodeHash      string    `json:"-"`
	ConfirmedCode string    `json:"-"`
	Attempts      int       `json:"attempts"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}
