package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/spa-pos-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "maria", "staff", "spa-pos-test", 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, "staff", claims.Role)
	assert.NotEmpty(t, claims.ID, "cada token lleva jti")
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expiry(), 5*time.Second)
}

func TestGenerate_JTIUnico(t *testing.T) {
	a, err := pkgjwt.Generate(secret, "u", "u", "admin", "", 60)
	require.NoError(t, err)
	b, err := pkgjwt.Generate(secret, "u", "u", "admin", "", 60)
	require.NoError(t, err)

	ca, _ := pkgjwt.Parse(secret, a)
	cb, _ := pkgjwt.Parse(secret, b)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u", "u", "admin", "", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u", "u", "admin", "", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecreto(t *testing.T) {
	_, err := pkgjwt.Generate("", "u", "u", "admin", "", 60)
	assert.Error(t, err)
}
