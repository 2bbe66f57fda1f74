package dto

import "time"

// SessionRequest código de acceso del negocio.
type SessionRequest struct {
	Passcode string `json:"passcode"`
}

// SessionResponse token de sesión. Enabled=false indica que la app corre sin candado.
type SessionResponse struct {
	Enabled   bool      `json:"enabled"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}
