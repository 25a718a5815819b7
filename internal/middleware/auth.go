package middleware

import (
	"strings"

	"github.com/hashtag-app/backend/internal/auth"
	"github.com/labstack/echo/v4"
)

// IdentityMiddleware decodes an optional `Authorization: Bearer <token>`
// header into a caller identity on the request context. A missing or
// unverifiable token yields an anonymous context, never an HTTP error;
// resolvers enforce authorization themselves.
func IdentityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var caller *auth.Identity

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					caller = auth.VerifyUserToken(parts[1])
				}
			}

			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithIdentity(req.Context(), caller)))
			return next(c)
		}
	}
}
