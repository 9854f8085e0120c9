package jwt_test

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/jhoicas/imprenta-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "Ana", "worker", "imprenta-api", 5)
	require.NoError(t, err)

	userID, name, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "Ana", name)
	assert.Equal(t, "worker", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "Ana", "owner", "imprenta-api", 5)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro-secreto", token)
	assert.True(t, errors.Is(err, jwt.ErrInvalidToken))
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "Ana", "owner", "imprenta-api", -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("secreto", token)
	assert.True(t, errors.Is(err, jwt.ErrInvalidToken))
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "Ana", "owner", "imprenta-api", 5)
	assert.True(t, errors.Is(err, jwt.ErrEmptySecret))
}

func TestParseIdentity_RechazaOtroAlgoritmo(t *testing.T) {
	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "owner",
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte("secreto"))
	require.NoError(t, err)

	_, err = jwt.ParseIdentity("secreto", token)
	assert.True(t, errors.Is(err, jwt.ErrInvalidToken))
}

func TestParseIdentity_SinExpiracionOSujeto(t *testing.T) {
	sinExp, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "u-1"},
	}).SignedString([]byte("secreto"))
	require.NoError(t, err)
	_, err = jwt.ParseIdentity("secreto", sinExp)
	assert.Error(t, err)

	sinSujeto, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secreto"))
	require.NoError(t, err)
	_, err = jwt.ParseIdentity("secreto", sinSujeto)
	assert.Error(t, err)
}
