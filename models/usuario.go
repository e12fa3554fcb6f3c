package models

import (
	"time"
)

// Usuario representa la tabla Usuario en la base de datos
type Usuario struct {
	ID              int       `json:"id_usuario" db:"id_usuario"`
	Nombre          string    `json:"nombre" db:"nombre"`
	Apellido        string    `json:"apellido" db:"apellido"`
	Email           string    `json:"email" db:"email"`
	Password        string    `json:"password,omitempty" db:"password"`
	FechaNacimiento string    `json:"fecha_nacimiento" db:"fecha_nacimiento"`
	IDRol           Rol       `json:"id_rol" db:"id_rol"`
	IDCentro        *int      `json:"id_centro,omitempty" db:"id_centro"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
	MFAEnabled      bool      `json:"mfa_enabled" db:"mfa_enabled"`
	MFASecret       string    `json:"-" db:"mfa_secret"`
}

// UsuarioResponse representa la respuesta sin datos sensibles
type UsuarioResponse struct {
	ID              int       `json:"id_usuario"`
	Nombre          string    `json:"nombre"`
	Apellido        string    `json:"apellido"`
	FechaNacimiento string    `json:"fecha_nacimiento"`
	IDRol           Rol       `json:"id_rol"`
	Rol             string    `json:"rol"`
	IDCentro        *int      `json:"id_centro,omitempty"`
	Email           string    `json:"email"`
	CreatedAt       time.Time `json:"created_at"`
}

// LoginRequest representa la solicitud de login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	MFACode  string `json:"mfa_code,omitempty"`
}

// LoginResponse representa la respuesta del login con tokens
type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"` // segundos
	Usuario      UsuarioResponse `json:"usuario"`
}

// RefreshRequest para solicitar nuevo token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse para respuesta de renovación
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// MFASetupRequest inicia la configuración de MFA
type MFASetupRequest struct {
	Password string `json:"password" validate:"required"`
}

// MFASetupResponse devuelve el secreto generado
type MFASetupResponse struct {
	Secret    string `json:"secret"`
	QRCodeURL string `json:"qr_code_url"`
}

// MFAVerifyRequest valida un código TOTP
type MFAVerifyRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}
