package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/minegocio/avemaria-api/internal/application/dto"
	"github.com/minegocio/avemaria-api/internal/domain"
	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
	pkgjwt "github.com/minegocio/avemaria-api/pkg/jwt"
)

// Config parámetros de emisión de tokens.
type Config struct {
	JWTSecret      string
	JWTExpMinutes  int
	RefreshExpDays int
	Issuer         string
}

// UseCase registro, login y ciclo de vida de sesiones. Los refresh tokens son
// opacos (aleatorios) y viven en base de datos, así cualquier instancia del
// servidor puede validarlos o revocarlos.
type UseCase struct {
	userRepo    repository.UserRepository
	refreshRepo repository.RefreshTokenRepository
	cfg         Config
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, refreshRepo repository.RefreshTokenRepository, cfg Config) *UseCase {
	return &UseCase{userRepo: userRepo, refreshRepo: refreshRepo, cfg: cfg}
}

// Register crea la cuenta, guarda el hash bcrypt de la contraseña y devuelve
// el par de tokens de la primera sesión.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	if len(in.Name) < 2 {
		return nil, fmt.Errorf("%w: el nombre debe tener al menos 2 caracteres", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash de contraseña: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		BusinessName: in.BusinessName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return uc.issueSession(user)
}

// Login valida las credenciales y abre una sesión nueva.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueSession(user)
}

// Refresh canjea un refresh token vigente por un access token nuevo.
// Un token expirado se elimina en el acto.
func (uc *UseCase) Refresh(in dto.RefreshRequest) (*dto.RefreshResponse, error) {
	session, err := uc.refreshRepo.GetByToken(in.RefreshToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	if time.Now().After(session.ExpiresAt) {
		_ = uc.refreshRepo.Delete(session.ID)
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	access, err := pkgjwt.Generate(uc.cfg.JWTSecret, user.ID, user.Email, uc.cfg.Issuer, uc.cfg.JWTExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{AccessToken: access}, nil
}

// Logout revoca la sesión del refresh token. Revocar un token inexistente no
// es un error: el resultado final es el mismo.
func (uc *UseCase) Logout(in dto.LogoutRequest) error {
	if in.RefreshToken == "" {
		return nil
	}
	return uc.refreshRepo.DeleteByToken(in.RefreshToken)
}

// Profile devuelve el perfil del usuario autenticado.
func (uc *UseCase) Profile(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateProfile actualiza nombre y nombre del negocio.
func (uc *UseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if len(in.Name) < 2 || len(in.BusinessName) < 2 {
		return nil, fmt.Errorf("%w: nombre y nombre del negocio deben tener al menos 2 caracteres", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.Name = in.Name
	user.BusinessName = in.BusinessName
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// issueSession emite el access token y persiste un refresh token nuevo.
func (uc *UseCase) issueSession(user *entity.User) (*dto.AuthResponse, error) {
	access, err := pkgjwt.Generate(uc.cfg.JWTSecret, user.ID, user.Email, uc.cfg.Issuer, uc.cfg.JWTExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	session := &entity.RefreshToken{
		ID:        uuid.New().String(),
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: now.AddDate(0, 0, uc.cfg.RefreshExpDays),
		CreatedAt: now,
	}
	if err := uc.refreshRepo.Create(session); err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:         toUserResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generar refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		BusinessName: u.BusinessName,
		CreatedAt:    u.CreatedAt,
	}
}
