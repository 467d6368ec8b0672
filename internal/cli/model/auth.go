package model

import (
	"bytes"
	"encoding/json"
)

// RegisterRequest — тело POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest — тело POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by a successful login.
// Raw holds the reply body exactly as the server sent it.
type TokenResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type,omitempty"`
	Raw         json.RawMessage `json:"-"`
}

// User is the public profile returned by register and /auth/me.
type User struct {
	ID       ID              `json:"id"`
	Email    string          `json:"email"`
	Username string          `json:"username"`
	Raw      json.RawMessage `json:"-"`
}

// ID — непрозрачный идентификатор: строка или число, как пришло от сервера.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	*id = ID(buf.String())
	return nil
}
