package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders returns middleware that sets the security response headers
// the admin console has always shipped with. The browser-side code and the
// hospital's security scans expect these three exact values, so they are
// attached to every proxy response.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// Prevent MIME type sniffing
			h.Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			h.Set("X-Frame-Options", "DENY")

			// Legacy XSS filter header, kept for compatibility with the
			// console's existing security baseline.
			h.Set("X-XSS-Protection", "1; mode=block")

			return next(c)
		}
	}
}
