package handlers

import (
	"encoding/json"
	"net/http"

	"page_flow_app_go/config"
	"page_flow_app_go/db"
	"page_flow_app_go/middleware"
	"page_flow_app_go/models"
	"page_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// PreviewHandler owns the preview flow: proxying preview generation,
// persisting the latest result per user, and serving it back as JSON
// or rendered HTML.
type PreviewHandler struct {
	Client *services.BackendClient
	Config *config.Config
}

func NewPreviewHandler(client *services.BackendClient, cfg *config.Config) *PreviewHandler {
	return &PreviewHandler{Client: client, Config: cfg}
}

// Preview forwards a preview request to the backend and stores the
// returned page as the caller's draft so the preview screen survives
// reloads.
func (h *PreviewHandler) Preview(c echo.Context) error {
	payload, err := readJSONBody(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	if field := missingField(payload, []string{"landingPage"}); field != "" {
		return jsonError(c, http.StatusBadRequest, "Missing required field: "+field)
	}

	data, err := h.Client.PreviewLandingPage(c.Request().Context(), payload)
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}

	// Persist the draft for the logged-in user. Failure here is not
	// fatal: the preview response still goes out.
	if user := middleware.GetCurrentUser(c); user != nil {
		var page models.LandingPage
		if jsonErr := json.Unmarshal(data, &page); jsonErr == nil && pageHasContent(&page) {
			if _, saveErr := services.SavePreviewDraft(db.DB, user.ID, &page); saveErr == nil {
				email := services.BuildPageReadyEmail(user.Email, page.Title, h.Config.AppURL+"/preview")
				services.SendEmailAsync(h.Config, email)
			}
		}
	}

	return jsonSuccess(c, http.StatusOK, json.RawMessage(data))
}

func pageHasContent(page *models.LandingPage) bool {
	return page != nil && (page.ID != "" || page.Title != "" || len(page.Sections) > 0)
}

// Latest returns the caller's stored preview draft as JSON.
func (h *PreviewHandler) Latest(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return jsonError(c, http.StatusUnauthorized, "Authentication required. Please log in again.")
	}

	draft, err := services.GetPreviewDraft(db.DB, user.ID)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "Failed to load preview draft")
	}
	if draft == nil {
		return jsonError(c, http.StatusNotFound, "No preview available yet")
	}

	page, err := draft.Page()
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "Stored preview draft is corrupted")
	}
	return jsonSuccess(c, http.StatusOK, page)
}

// PreviewPage serves the caller's draft as a rendered HTML document.
func (h *PreviewHandler) PreviewPage(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	draft, err := services.GetPreviewDraft(db.DB, user.ID)
	if err != nil || draft == nil {
		return c.HTML(http.StatusNotFound, "<p>No preview available yet. Generate a landing page first.</p>")
	}

	page, err := draft.Page()
	if err != nil {
		return c.HTML(http.StatusInternalServerError, "<p>Stored preview could not be read.</p>")
	}

	return c.HTML(http.StatusOK, services.RenderLandingPageHTML(page))
}
