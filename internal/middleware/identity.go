package middleware

// identity.go holds the context keys written by JWTAuth and the helpers that
// read them back.  Handlers use UserID and Role to build the caller of a
// service operation; the cache and rate limiter use userKey.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Roles issued by the upstream authentication service.
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// UserID returns the authenticated user id.  The sub claim may arrive as a
// JSON string or number.
func UserID(c echo.Context) (uint64, bool) {
	switch t := c.Get(CtxUserID).(type) {
	case uint64:
		return t, t != 0
	case int:
		return uint64(t), t > 0
	case int64:
		return uint64(t), t > 0
	case float64:
		return uint64(t), t >= 1
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil && n != 0 {
			return n, true
		}
	}
	return 0, false
}

// Role returns the role claim, or "" when absent.
func Role(c echo.Context) string {
	r, _ := c.Get(CtxRole).(string)
	return r
}

// IsAdmin reports whether the caller holds the ADMIN role.
func IsAdmin(c echo.Context) bool { return Role(c) == RoleAdmin }

// userKey identifies the caller in rate-limit keys: the user id when
// authenticated, "anon" otherwise.
func userKey(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}

// deny writes the failure envelope used across the API.
func deny(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }
