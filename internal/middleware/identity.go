package middleware

// identity.go provides the account extraction helper shared by the rate
// limiter's key builder. When no authenticated account is present in the
// context, "guest" is used so anonymous traffic shares one bucket per IP.

import "github.com/labstack/echo/v4"

// currentAccountID returns the authenticated account id from context, or
// "guest" for unauthenticated requests.
func currentAccountID(c echo.Context) string {
	if v := c.Get("account_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "guest"
}
