package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

var _ repository.RefreshTokenRepository = (*RefreshTokenRepo)(nil)

// RefreshTokenRepo sesiones de refresco sobre PostgreSQL. Persistidas en la
// base para que cualquier instancia del servidor pueda validar o revocar.
type RefreshTokenRepo struct {
	q Querier
}

// NewRefreshTokenRepository construye el adaptador.
func NewRefreshTokenRepository(q Querier) *RefreshTokenRepo {
	return &RefreshTokenRepo{q: q}
}

// Create persiste una sesión nueva.
func (r *RefreshTokenRepo) Create(t *entity.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, t.ID, t.Token, t.UserID, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// GetByToken busca una sesión por su token. Devuelve (nil, nil) si no existe.
func (r *RefreshTokenRepo) GetByToken(token string) (*entity.RefreshToken, error) {
	query := `SELECT id, token, user_id, expires_at, created_at FROM refresh_tokens WHERE token = $1`
	var t entity.RefreshToken
	err := r.q.QueryRow(context.Background(), query, token).Scan(
		&t.ID, &t.Token, &t.UserID, &t.ExpiresAt, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &t, nil
}

// Delete elimina una sesión por ID.
func (r *RefreshTokenRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM refresh_tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

// DeleteByToken revoca la sesión del token. No es error que no exista.
func (r *RefreshTokenRepo) DeleteByToken(token string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

// DeleteExpired limpia las sesiones vencidas.
func (r *RefreshTokenRepo) DeleteExpired() error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM refresh_tokens WHERE expires_at < now()`)
	if err != nil {
		return fmt.Errorf("delete expired refresh tokens: %w", err)
	}
	return nil
}
