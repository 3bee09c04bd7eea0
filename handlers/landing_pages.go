package handlers

import (
	"net/http"
	"strconv"

	"page_flow_app_go/config"
	"page_flow_app_go/middleware"
	"page_flow_app_go/models"
	"page_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// LandingPagesHandler serves the landing-page CRUD surface backed by
// the orchestration service.
type LandingPagesHandler struct {
	Service *services.LandingPageService
	Config  *config.Config
}

func NewLandingPagesHandler(service *services.LandingPageService, cfg *config.Config) *LandingPagesHandler {
	return &LandingPagesHandler{Service: service, Config: cfg}
}

// Register wires the landing-page routes onto the group.
func (h *LandingPagesHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/export", h.Export)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PUT("/:id/sections", h.UpdateSections)
	g.DELETE("/:id", h.Delete)
}

func currentPage(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// List returns one page of landing pages. A failed session lookup is
// non-fatal: the result degrades to all pages with isAuthorized=false.
func (h *LandingPagesHandler) List(c echo.Context) error {
	cookie := middleware.SessionCookieValue(c, h.Config)

	result, err := h.Service.List(c.Request().Context(), cookie, currentPage(c))
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}
	return jsonSuccess(c, http.StatusOK, result)
}

// Create creates a landing page and returns the refetched current page.
func (h *LandingPagesHandler) Create(c echo.Context) error {
	payload, err := readJSONBody(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	if field := missingField(payload, []string{"title"}); field != "" {
		return jsonError(c, http.StatusBadRequest, "Missing required field: "+field)
	}

	cookie := middleware.SessionCookieValue(c, h.Config)
	result, err := h.Service.CreatePage(c.Request().Context(), cookie, payload, currentPage(c))
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}
	return jsonSuccess(c, http.StatusCreated, result)
}

// Get returns a single landing page by id.
func (h *LandingPagesHandler) Get(c echo.Context) error {
	page, err := h.Service.Client.GetLandingPage(c.Request().Context(), c.Param("id"))
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}
	return jsonSuccess(c, http.StatusOK, page)
}

// Update applies a partial update. Sections-only patches take the
// dedicated sections path and reload the list; anything else returns
// the merged page without a refetch.
func (h *LandingPagesHandler) Update(c echo.Context) error {
	var patch models.LandingPagePatch
	if err := c.Bind(&patch); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}

	cookie := middleware.SessionCookieValue(c, h.Config)
	result, err := h.Service.UpdatePage(c.Request().Context(), cookie, c.Param("id"), &patch, nil, currentPage(c))
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}
	return jsonSuccess(c, http.StatusOK, result)
}

// UpdateSections replaces a page's section list.
func (h *LandingPagesHandler) UpdateSections(c echo.Context) error {
	var body struct {
		Sections []models.LandingPageSection `json:"sections"`
	}
	if err := c.Bind(&body); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	if body.Sections == nil {
		return jsonError(c, http.StatusBadRequest, "Missing required field: sections")
	}

	cookie := middleware.SessionCookieValue(c, h.Config)
	patch := models.LandingPagePatch{Sections: body.Sections}
	result, err := h.Service.UpdatePage(c.Request().Context(), cookie, c.Param("id"), &patch, nil, currentPage(c))
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}
	return jsonSuccess(c, http.StatusOK, result)
}

// Delete removes a landing page and returns the refetched current page.
func (h *LandingPagesHandler) Delete(c echo.Context) error {
	cookie := middleware.SessionCookieValue(c, h.Config)
	result, err := h.Service.DeletePage(c.Request().Context(), cookie, c.Param("id"), currentPage(c))
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}
	return jsonSuccess(c, http.StatusOK, result)
}

// Export streams the caller's landing pages as an Excel workbook.
func (h *LandingPagesHandler) Export(c echo.Context) error {
	cookie := middleware.SessionCookieValue(c, h.Config)

	result, err := h.Service.List(c.Request().Context(), cookie, currentPage(c))
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}

	workbook, err := services.ExportLandingPagesXLSX(result.Pages)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "Failed to build export")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="landing-pages.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
