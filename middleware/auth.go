package middleware

import (
	"net/http"
	"strings"

	"page_flow_app_go/config"
	"page_flow_app_go/db"
	"page_flow_app_go/models"
	"page_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeyConfig is the context key for the app config
	ContextKeyConfig = "config"
)

// RequireAuth is middleware that requires a valid session cookie
func RequireAuth(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cfg.SessionCookieName)
			if err != nil {
				return unauthorized(c)
			}

			session := services.GetSessionData(db.DB, cfg.SessionSecret, cookie.Value)
			if !session.Success {
				// Invalid or expired session, clear the cookie
				ClearSessionCookie(c, cfg)
				return unauthorized(c)
			}

			c.Set(ContextKeyUser, session.Data)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	// API callers get the JSON envelope; page requests get redirected
	if strings.HasPrefix(c.Path(), "/api") {
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "Authentication required. Please log in again.",
		})
	}
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", "/login")
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.SessionUser {
	user, ok := c.Get(ContextKeyUser).(*models.SessionUser)
	if !ok {
		return nil
	}
	return user
}

// SessionCookieValue returns the raw session cookie value, or "" when
// the cookie is absent.
func SessionCookieValue(c echo.Context, cfg *config.Config) string {
	cookie, err := c.Cookie(cfg.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetSessionCookie writes the sealed session cookie
func SetSessionCookie(c echo.Context, cfg *config.Config, sealedValue string, maxAge int) {
	cookie := &http.Cookie{
		Name:     cfg.SessionCookieName,
		Value:    sealedValue,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(c echo.Context, cfg *config.Config) {
	SetSessionCookie(c, cfg, "", -1)
}

// GetConfig retrieves the app config stashed in the request context
func GetConfig(c echo.Context) *config.Config {
	cfg, ok := c.Get(ContextKeyConfig).(*config.Config)
	if !ok {
		return nil
	}
	return cfg
}
