package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Menu-api/internal/application/dto"
	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
	"github.com/jhoicas/Menu-api/internal/domain/repository"
	"github.com/jhoicas/Menu-api/pkg/jwt"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 16
	maxNameLength     = 100
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	jwtCfg     JWTConfig
	subdomains *subdomainGenerator
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		jwtCfg:     jwtCfg,
		subdomains: newSubdomainGenerator(userRepo.SubdomainExists),
	}
}

// RegisterUser crea un tenant con rol owner: email en minúsculas, password con bcrypt y
// subdominio derivado del nombre. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	lastName := strings.TrimSpace(in.LastName)
	if name == "" || lastName == "" {
		return nil, fmt.Errorf("%w: name y lastName son obligatorios", domain.ErrInvalidInput)
	}
	if len(name) > maxNameLength || len(lastName) > maxNameLength {
		return nil, fmt.Errorf("%w: name y lastName admiten hasta %d caracteres", domain.ErrInvalidInput, maxNameLength)
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener entre %d y %d caracteres",
			domain.ErrInvalidInput, minPasswordLength, maxPasswordLength)
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	subdomain, err := uc.subdomains.Generate(ctx, name, lastName)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var cel *string
	if in.Cel != nil && strings.TrimSpace(*in.Cel) != "" {
		v := strings.TrimSpace(*in.Cel)
		cel = &v
	}
	now := time.Now()
	user := &entity.User{
		Name:         name,
		LastName:     lastName,
		Email:        email,
		Cel:          cel,
		Role:         entity.RoleOwner,
		Active:       true,
		PasswordHash: string(hash),
		Subdomain:    subdomain,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	password := strings.TrimSpace(in.Password)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.Subdomain, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return email, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Email:     u.Email,
		Cel:       u.Cel,
		Role:      u.Role,
		Active:    u.Active,
		Subdomain: u.Subdomain,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
