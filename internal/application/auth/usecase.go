package auth

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/domain"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
	"github.com/akazantsev/pricewatch/internal/domain/repository"
	"github.com/akazantsev/pricewatch/pkg/jwt"
)

// JWTConfig holds token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase covers registration and login. The role carried in the token is
// what the HTTP access gate checks before every core operation.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewAuthUseCase wires the use case.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg}
}

func userToDTO(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Address:   u.Address,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Register creates an account with a bcrypt-hashed password. The role
// defaults to "user"; only "admin" and "user" are accepted.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return dto.UserResponse{}, fmt.Errorf("%w: email and password are required", domain.ErrBadRequest)
	}
	existing, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return dto.UserResponse{}, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleAdmin && role != entity.RoleUser {
		return dto.UserResponse{}, fmt.Errorf("%w: unknown role %q", domain.ErrBadRequest, in.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Name:         in.Name,
		Surname:      in.Surname,
		Address:      in.Address,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.users.Create(u); err != nil {
		return dto.UserResponse{}, fmt.Errorf("create user: %w", err)
	}
	return userToDTO(u), nil
}

// Login verifies the credentials and issues a signed token carrying the role.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (dto.TokenResponse, error) {
	u, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return dto.TokenResponse{}, fmt.Errorf("%w: unknown email or wrong password", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return dto.TokenResponse{}, fmt.Errorf("%w: unknown email or wrong password", domain.ErrUnauthorized)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("sign token: %w", err)
	}
	return dto.TokenResponse{Token: token, User: userToDTO(u)}, nil
}
