package stub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"aptbill/client/internal/models"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := hashPassword("correct horse")
	require.NoError(t, err)

	require.True(t, verifyPassword("correct horse", hash))
	require.False(t, verifyPassword("wrong horse", hash))
	require.False(t, verifyPassword("correct horse", []byte("garbage")))
}

func TestPasswordHashesAreSalted(t *testing.T) {
	a, err := hashPassword("same")
	require.NoError(t, err)
	b, err := hashPassword("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.True(t, verifyPassword("same", a))
	require.True(t, verifyPassword("same", b))
}

func TestTokenRoundTrip(t *testing.T) {
	signed, err := issueToken("secret", "u-1", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := parseToken(signed, "secret")
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)
	require.Equal(t, string(models.RoleAdmin), claims.Role)
}

func TestTokenRejectedWithWrongSecret(t *testing.T) {
	signed, err := issueToken("secret", "u-1", models.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = parseToken(signed, "other")
	require.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	signed, err := issueToken("secret", "u-1", models.RoleUser, -time.Minute)
	require.NoError(t, err)

	_, err = parseToken(signed, "secret")
	require.Error(t, err)
}
