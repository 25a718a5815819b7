package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashtag-app/backend/internal/auth"
	"github.com/hashtag-app/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runIdentityMiddleware(t *testing.T, authHeader string) *auth.Identity {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured *auth.Identity
	handler := IdentityMiddleware()(func(c echo.Context) error {
		captured = auth.IdentityFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return captured
}

func TestIdentityMiddleware_ValidToken(t *testing.T) {
	token, err := auth.GenerateUserToken(&models.User{ID: "user-1", UserName: "ada"})
	require.NoError(t, err)

	identity := runIdentityMiddleware(t, "Bearer "+token)
	require.NotNil(t, identity)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "ada", identity.UserName)
}

func TestIdentityMiddleware_AnonymousOnBadOrMissingToken(t *testing.T) {
	assert.Nil(t, runIdentityMiddleware(t, ""))
	assert.Nil(t, runIdentityMiddleware(t, "Bearer garbage"))
	assert.Nil(t, runIdentityMiddleware(t, "Bearer null"))
	assert.Nil(t, runIdentityMiddleware(t, "Basic dXNlcjpwYXNz"))
}
