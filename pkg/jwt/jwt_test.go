package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secreto-de-pruebas-con-32-caracteres!!"

func TestGenerateYParse_DevuelveUsuarioYRol(t *testing.T) {
	tok, err := Generate(secret, "u-1", "ADMIN", "stock-ledger-api", 5)
	require.NoError(t, err)

	userID, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "ADMIN", role)
}

func TestGenerate_SinSecretOUsuario(t *testing.T) {
	_, err := Generate("", "u-1", "ADMIN", "x", 5)
	assert.ErrorIs(t, err, errNoSecret)
	_, err = Generate(secret, "", "ADMIN", "x", 5)
	assert.ErrorIs(t, err, errNoUser)
}

func TestParse_RechazaAlgoritmoDistintoDeHS256(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
		UserID:           "u-1",
		Role:             "ADMIN",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_RechazaTokenSinExpiracion(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u-1", Role: "ADMIN"}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_RechazaTokenSinUsuario(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, err = Parse(secret, tok)
	assert.ErrorIs(t, err, errNoUser)
}
