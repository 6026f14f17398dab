package dto

import "time"

// RegisterRequest entrada de registro de cuenta.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Name         string `json:"name" validate:"required,min=2"`
	BusinessName string `json:"business_name"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest entrada para renovar el access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest entrada de cierre de sesión.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest actualización del perfil.
type UpdateProfileRequest struct {
	Name         string `json:"name" validate:"required,min=2"`
	BusinessName string `json:"business_name" validate:"required,min=2"`
}

// UserResponse usuario sin campos sensibles.
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	BusinessName string    `json:"business_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthResponse usuario + par de tokens tras registro o login.
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// RefreshResponse nuevo access token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}
