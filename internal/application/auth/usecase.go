package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/imprenta-api/internal/application/dto"
	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/jhoicas/imprenta-api/pkg/jwt"
	"github.com/jhoicas/imprenta-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login del personal, login de clientes por teléfono
// y creación de las cuentas por defecto.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log}
}

// Login verifica usuario/clave del personal (dueño o trabajador) y genera el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: usuario y clave son requeridos", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role == entity.RoleCustomer || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(user)
}

// CustomerLogin identifica al cliente por teléfono; si no existe lo crea (nombre por defecto = teléfono).
func (uc *AuthUseCase) CustomerLogin(ctx context.Context, in dto.CustomerLoginRequest) (*dto.LoginResponse, error) {
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone es requerido", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.FindCustomerByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			name = phone
		}
		user = &entity.User{
			ID:        uuid.New().String(),
			Name:      name,
			Phone:     phone,
			Role:      entity.RoleCustomer,
			CreatedAt: time.Now(),
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		uc.log.Info().Str("user_id", user.ID).Msg("cliente registrado")
	}
	return uc.issue(user)
}

// SeedDefaultUsers crea las cuentas "owner" y "worker" si no existe ningún usuario con ese rol.
func (uc *AuthUseCase) SeedDefaultUsers(ctx context.Context, ownerPassword, workerPassword string) error {
	defaults := []struct {
		role, username, name, password string
	}{
		{entity.RoleOwner, "owner", "Dueño", ownerPassword},
		{entity.RoleWorker, "worker", "Trabajador", workerPassword},
	}
	for _, d := range defaults {
		n, err := uc.userRepo.CountByRole(ctx, d.role)
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if d.password == "" {
			return fmt.Errorf("%w: clave vacía para la cuenta %s", domain.ErrInvalidInput, d.username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &entity.User{
			ID:           uuid.New().String(),
			Name:         d.name,
			Username:     d.username,
			PasswordHash: string(hash),
			Role:         d.role,
			CreatedAt:    time.Now(),
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			return err
		}
		uc.log.Info().Str("username", d.username).Str("role", d.role).Msg("cuenta por defecto creada")
	}
	return nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Phone:    u.Phone,
		Role:     u.Role,
	}
}
