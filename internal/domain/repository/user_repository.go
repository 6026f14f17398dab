package repository

import "github.com/minegocio/avemaria-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
}

// RefreshTokenRepository almacén persistente de sesiones de refresco.
// Debe ser la base de datos (no un mapa en memoria): varias instancias del
// servidor comparten el estado de sesión.
type RefreshTokenRepository interface {
	Create(token *entity.RefreshToken) error
	GetByToken(token string) (*entity.RefreshToken, error)
	Delete(id string) error
	DeleteByToken(token string) error
	DeleteExpired() error
}
