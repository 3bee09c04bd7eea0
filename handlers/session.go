package handlers

import (
	"net/http"
	"strings"

	"page_flow_app_go/config"
	"page_flow_app_go/db"
	"page_flow_app_go/middleware"
	"page_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// SessionHandler owns login, logout, and the session lookup route.
type SessionHandler struct {
	Client *services.BackendClient
	Config *config.Config
}

func NewSessionHandler(client *services.BackendClient, cfg *config.Config) *SessionHandler {
	return &SessionHandler{Client: client, Config: cfg}
}

// GetSession reports the logged-in user. It honors the never-failing
// contract: the response is always 200 with success/data/error fields.
func (h *SessionHandler) GetSession(c echo.Context) error {
	cookie := middleware.SessionCookieValue(c, h.Config)
	result := services.GetSessionData(db.DB, h.Config.SessionSecret, cookie)
	return c.JSON(http.StatusOK, result)
}

// Login verifies credentials against the backend, then creates the
// local session and sets the sealed cookie.
func (h *SessionHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}

	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || body.Password == "" {
		return jsonError(c, http.StatusBadRequest, "Email and password are required")
	}

	user, err := h.Client.Login(c.Request().Context(), body.Email, body.Password)
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}

	_, sealed, err := services.CreateSession(db.DB, h.Config.SessionSecret, user, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "Failed to create session")
	}

	middleware.SetSessionCookie(c, h.Config, sealed, int(services.DefaultSessionDuration.Seconds()))
	return jsonSuccess(c, http.StatusOK, user)
}

// Logout deletes the session and clears the cookie. Always succeeds
// from the caller's point of view.
func (h *SessionHandler) Logout(c echo.Context) error {
	cookie := middleware.SessionCookieValue(c, h.Config)
	if cookie != "" {
		if token, err := services.UnsealToken(h.Config.SessionSecret, cookie); err == nil {
			_ = services.DeleteSession(db.DB, token)
		}
	}
	middleware.ClearSessionCookie(c, h.Config)
	return jsonSuccess(c, http.StatusOK, nil)
}
