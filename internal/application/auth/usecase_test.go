package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akazantsev/pricewatch/internal/application/auth"
	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/domain"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
	"github.com/akazantsev/pricewatch/pkg/jwt"
)

type memUserRepo struct {
	nextID int64
	users  map[int64]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*entity.User{}}
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func newAuthUC() *auth.AuthUseCase {
	return auth.NewAuthUseCase(newMemUserRepo(), auth.JWTConfig{
		Secret:     "unit-test-secret",
		ExpMinutes: 60,
		Issuer:     "pricewatch-test",
	})
}

func TestRegister_DefaultsRoleToUser(t *testing.T) {
	uc := newAuthUC()

	out, err := uc.Register(dto.RegisterRequest{Email: "a@b.c", Password: "hunter22", Name: "Alex"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Role)
	assert.NotZero(t, out.ID)
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.c", Password: "hunter22", Role: "superadmin"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestRegister_RequiresEmailAndPassword(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Register(dto.RegisterRequest{Password: "hunter22"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = uc.Register(dto.RegisterRequest{Email: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.c", Password: "hunter22"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "a@b.c", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_ReturnsTokenCarryingIdentity(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.c", Password: "hunter22", Role: entity.RoleAdmin})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "a@b.c", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	userID, role, err := jwt.Parse("unit-test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

// Wrong password and unknown email produce the same opaque failure.
func TestLogin_BadCredentials(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.c", Password: "hunter22"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "a@b.c", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nobody@b.c", Password: "hunter22"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
