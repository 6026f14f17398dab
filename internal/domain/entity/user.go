package entity

import "time"

// User dueña de la cuenta. Purchases, Sales y Transactions se filtran por UserID.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	BusinessName string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken sesión de refresco persistida en base de datos: varias
// instancias sin estado del servidor deben compartir las sesiones.
type RefreshToken struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
