package middleware

// identity.go holds helpers shared across middleware files.

import "github.com/labstack/echo/v4"

// Subject returns the authenticated subject stored by JWTAuth, or "anon"
// for unauthenticated requests.
func Subject(c echo.Context) string {
    if s, ok := c.Get(ctxSubject).(string); ok && s != "" {
        return s
    }
    return "anon"
}
