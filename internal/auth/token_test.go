package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/hashtag-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	user := &models.User{ID: "user-1", UserName: "ada"}

	token, err := GenerateUserToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity := VerifyUserToken(token)
	require.NotNil(t, identity)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "ada", identity.UserName)
}

func TestVerifyUserToken_UnverifiableYieldsAnonymous(t *testing.T) {
	assert.Nil(t, VerifyUserToken(""))
	assert.Nil(t, VerifyUserToken("null"))
	assert.Nil(t, VerifyUserToken("not-a-token"))
	assert.Nil(t, VerifyUserToken("aaaa.bbbb.cccc"))
}

func TestVerifyUserToken_WrongKeyRejected(t *testing.T) {
	claims := &UserClaims{ID: "user-1", UserName: "ada"}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	assert.Nil(t, VerifyUserToken(signed))
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, IdentityFromContext(ctx))

	identity := &Identity{ID: "user-1", UserName: "ada"}
	ctx = WithIdentity(ctx, identity)
	assert.Equal(t, identity, IdentityFromContext(ctx))
}
