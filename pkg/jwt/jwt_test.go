package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secreto-de-prueba"

func input() TokenInput {
	return TokenInput{
		UserID:    "user-1",
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "García",
		Active:    true,
		Roles:     []string{"supplier", "customer"},
	}
}

func TestGenerateYParse(t *testing.T) {
	token, err := Generate(secret, "marketplace", input(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "marketplace", claims.Issuer)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.FirstName)
	assert.True(t, claims.Active)
	assert.Equal(t, []string{"supplier", "customer"}, claims.Roles)
	assert.Equal(t, "supplier,customer", claims.RoleList)
	assert.NotEmpty(t, claims.ID, "jti para rastreo")
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "marketplace", input(), 1)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestGenerate_UsuarioInvalido(t *testing.T) {
	in := input()
	in.Email = "  "
	_, err := Generate(secret, "marketplace", in, 1)
	assert.ErrorIs(t, err, ErrInvalidUser)

	in = input()
	in.UserID = ""
	_, err = Generate(secret, "marketplace", in, 1)
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestParse_OtroSecreto(t *testing.T) {
	token, err := Generate(secret, "marketplace", input(), 1)
	require.NoError(t, err)

	_, err = Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	// expHours negativo produce un exp en el pasado.
	token, err := Generate(secret, "marketplace", input(), -1)
	require.NoError(t, err)

	_, err = Parse(secret, token)
	assert.Error(t, err)
}

func TestParse_MetodoDeFirmaInesperado(t *testing.T) {
	// Token "alg": "none" firmado sin clave: debe rechazarse.
	unsigned := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{Subject: "user-1"})
	token, err := unsigned.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Parse(secret, token)
	assert.Error(t, err)
}

func TestParse_Basura(t *testing.T) {
	_, err := Parse(secret, "no.es.jwt")
	assert.Error(t, err)
}
