package handlers

import (
	"net/http"
	"strings"

	"page_flow_app_go/config"
	"page_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// DownloadHandler serves finished landing pages as downloadable HTML or
// PDF documents. The page content comes from the backend; rendering and
// PDF conversion happen locally.
type DownloadHandler struct {
	Client *services.BackendClient
	Config *config.Config
}

func NewDownloadHandler(client *services.BackendClient, cfg *config.Config) *DownloadHandler {
	return &DownloadHandler{Client: client, Config: cfg}
}

func (h *DownloadHandler) Register(g *echo.Group) {
	g.GET("/:id/download", h.Download)
	g.POST("/:id/download", h.Download)
}

func (h *DownloadHandler) Download(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return jsonError(c, http.StatusBadRequest, "Missing required field: id")
	}

	format := strings.ToLower(c.QueryParam("format"))
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "pdf" {
		return jsonError(c, http.StatusBadRequest, "Unsupported format: "+format)
	}

	page, err := h.Client.GetLandingPage(c.Request().Context(), id)
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}

	fileName := services.DownloadFileName(page, format)

	if format == "pdf" {
		pdf, pdfErr := services.GenerateLandingPagePDF(c.Request().Context(), page, services.DefaultPDFOptions())
		if pdfErr != nil {
			return jsonError(c, http.StatusInternalServerError, "Failed to generate PDF")
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
		return c.Blob(http.StatusOK, "application/pdf", pdf)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Blob(http.StatusOK, "text/html; charset=utf-8", []byte(services.RenderLandingPageHTML(page)))
}
