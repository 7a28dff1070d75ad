package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/tienda-pos/pkg/jwt"
)

const secret = "s3cret"

func TestGenerateParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u1", "vendedor", "tienda-pos", 10)
	require.NoError(t, err)

	uid, role, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
	assert.Equal(t, "vendedor", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u1", "admin", "tienda-pos", 10)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse("otro", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u1", "admin", "tienda-pos", -1)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse(secret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

// ─── Tokens armados a mano ───────────────────────────────────────────────────

func TestParse_OtroAlgoritmo(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u1",
		Role:             "admin",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(secret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestParse_SinVencimiento(t *testing.T) {
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, pkgjwt.Claims{UserID: "u1"}).SignedString([]byte(secret))
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse(secret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestParse_SinUsuario(t *testing.T) {
	claims := pkgjwt.Claims{RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))}}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse(secret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u1", "admin", "x", 1)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
	_, _, err = pkgjwt.Parse("", "x.y.z")
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
