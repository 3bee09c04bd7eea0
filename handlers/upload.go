package handlers

import (
	"encoding/json"
	"net/http"

	"page_flow_app_go/config"
	"page_flow_app_go/middleware"
	"page_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// UploadHandler accepts design-source uploads, stores them, and
// forwards the stored reference to the backend.
type UploadHandler struct {
	Client *services.BackendClient
	Config *config.Config
}

func NewUploadHandler(client *services.BackendClient, cfg *config.Config) *UploadHandler {
	return &UploadHandler{Client: client, Config: cfg}
}

// UploadDesign handles POST /api/upload/design. The file is validated,
// written to storage, and then relayed to the backend as multipart form
// data along with the storage URL.
func (h *UploadHandler) UploadDesign(c echo.Context) error {
	fileHeader, err := c.FormFile("design")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Missing required field: design")
	}

	if err := services.ValidateDesignUpload(fileHeader); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	companyID := ""
	if user := middleware.GetCurrentUser(c); user != nil {
		companyID = user.CompanyID
	}

	key := services.DesignKey(companyID, services.SafeDesignFileName(fileHeader.Filename))
	stored, err := services.Storage.Upload(c.Request().Context(), fileHeader, key)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "Failed to store uploaded design")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "Failed to read uploaded design")
	}
	defer file.Close()

	fields := map[string]string{
		"storageKey": stored.Key,
		"fileName":   fileHeader.Filename,
	}
	if stored.URL != "" {
		fields["fileUrl"] = stored.URL
	}
	if companyID != "" {
		fields["companyId"] = companyID
	}

	data, err := h.Client.UploadDesign(c.Request().Context(), fileHeader.Filename, stored.MimeType, file, fields)
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}

	return jsonSuccess(c, http.StatusOK, json.RawMessage(data))
}
