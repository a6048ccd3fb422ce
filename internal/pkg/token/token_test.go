package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tokenString, err := Generate("user-1", "a@b.com", "secret", 1)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := Validate(tokenString, "secret")
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "a@b.com", claims.Email)
}

func TestValidate_WrongSecret(t *testing.T) {
	tokenString, err := Generate("user-1", "a@b.com", "secret", 1)
	require.NoError(t, err)

	_, err = Validate(tokenString, "other-secret")
	require.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	tokenString, err := Generate("user-1", "a@b.com", "secret", -1)
	require.NoError(t, err)

	_, err = Validate(tokenString, "secret")
	require.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := Validate("not-a-jwt", "secret")
	require.Error(t, err)
}
