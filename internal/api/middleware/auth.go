package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/technotes/technotes-api/internal/core/domain"
)

// Auth validates the bearer JWT and injects user_id, username and roles
// into the echo context. A missing or malformed header answers 401; a token
// that fails verification (bad signature, expired) answers 403.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrInvalidCredentials.WithDetail("missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrInvalidCredentials.WithDetail("invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return domain.ErrAccessForbidden.WithDetail("invalid token")
			}

			username, _ := claims["username"].(string)
			sub, _ := claims["sub"].(string)

			c.Set("user_id", sub)
			c.Set("username", username)
			c.Set("roles", rolesClaim(claims["roles"]))

			return next(c)
		}
	}
}

// rolesClaim converts the decoded "roles" claim ([]any after JSON) back to
// a string slice. Non-string entries are skipped.
func rolesClaim(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}
