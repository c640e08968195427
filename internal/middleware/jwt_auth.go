package middleware

import (
	"strings"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"github.com/labstack/echo/v4"
)

// IdentityKey is the echo context key holding the caller's *models.Identity.
const IdentityKey = "identity"

// TokenParser verifies an access token.
type TokenParser interface {
	Parse(token string) (*models.Identity, error)
}

// Identify resolves the caller from a Bearer token. A request without an
// Authorization header proceeds anonymously; a malformed or invalid token is
// rejected with 401.
func Identify(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			// Expecting "Bearer <token>"
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return errorx.New(errorx.Unauthorized, "Invalid Authorization header format")
			}

			identity, err := tokens.Parse(parts[1])
			if err != nil {
				return err
			}
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// Caller returns the identity set by Identify, nil for anonymous requests.
func Caller(c echo.Context) *models.Identity {
	identity, _ := c.Get(IdentityKey).(*models.Identity)
	return identity
}
