package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth validates the Bearer access token issued by the upstream auth
// service and stores its sub and role claims under CtxUserID and CtxRole.
// Only HMAC-signed tokens are accepted; expiry is enforced by the parser.
func JWTAuth(secret string) echo.MiddlewareFunc {
	keyFunc := func(*jwt.Token) (any, error) { return []byte(secret), nil }
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return deny(c, http.StatusUnauthorized, "Missing bearer token")
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			tok, err := jwt.Parse(raw, keyFunc, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
			if err != nil || !tok.Valid {
				return deny(c, http.StatusUnauthorized, "Invalid or expired token")
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return deny(c, http.StatusUnauthorized, "Invalid token claims")
			}

			c.Set(CtxUserID, claims["sub"])
			c.Set(CtxRole, claims["role"])
			if _, ok := UserID(c); !ok {
				return deny(c, http.StatusUnauthorized, "Invalid token subject")
			}
			return next(c)
		}
	}
}
