package model

import "encoding/json"

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// MessageResponse is the generic {"message": ...} reply of the reset flow.
// DebugCode is only sent by servers running in development mode.
type MessageResponse struct {
	Message   string          `json:"message"`
	DebugCode string          `json:"debug_code,omitempty"`
	Raw       json.RawMessage `json:"-"`
}
