package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger-api/pkg/jwt"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 30, Issuer: "stock-ledger-test"}

func register(t *testing.T, uc *auth.AuthUseCase, email, role string) *dto.UserDTO {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Laura Gómez", Email: email, Password: "secreto123", Role: role,
	})
	require.NoError(t, err)
	return u
}

func TestRegisterUser_CreaManager(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), jwtCfg)

	u := register(t, uc, " Laura@Tienda.CO ", "")
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "laura@tienda.co", u.Email)
	assert.Equal(t, entity.RoleManager, u.Role)

	stored, err := store.Users().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash)

	admin := register(t, uc, "admin@tienda.co", "admin")
	assert.Equal(t, entity.RoleAdmin, admin.Role)
}

func TestRegisterUser_Rechazos(t *testing.T) {
	uc := auth.NewAuthUseCase(memory.NewStore().Users(), jwtCfg)
	ctx := context.Background()
	register(t, uc, "laura@tienda.co", "")

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Otra", Email: "LAURA@tienda.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Otra", Email: "otra@tienda.co", Password: "secreto123", Role: "ROOT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_DevuelveToken(t *testing.T) {
	uc := auth.NewAuthUseCase(memory.NewStore().Users(), jwtCfg)
	u := register(t, uc, "admin@tienda.co", entity.RoleAdmin)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ADMIN@tienda.co", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, entity.RoleAdmin, resp.Role)
	assert.Equal(t, "30m0s", resp.ExpirationTime)

	userID, role, err := jwt.Parse(jwtCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := auth.NewAuthUseCase(memory.NewStore().Users(), jwtCfg)
	register(t, uc, "admin@tienda.co", "")
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@tienda.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@tienda.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
