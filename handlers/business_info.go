package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"page_flow_app_go/config"
	"page_flow_app_go/middleware"
	"page_flow_app_go/models"
	"page_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// BusinessInfoHandler relays the business profile CRUD to the backend,
// scoping every call to the session's company.
type BusinessInfoHandler struct {
	Client *services.BackendClient
	Config *config.Config
}

func NewBusinessInfoHandler(client *services.BackendClient, cfg *config.Config) *BusinessInfoHandler {
	return &BusinessInfoHandler{Client: client, Config: cfg}
}

func (h *BusinessInfoHandler) Register(g *echo.Group) {
	g.GET("", h.Get)
	g.POST("", h.Save)
	g.PUT("", h.Update)
	g.DELETE("", h.Delete)
}

func (h *BusinessInfoHandler) Get(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return jsonError(c, http.StatusUnauthorized, "Authentication required. Please log in again.")
	}

	info, err := h.Client.GetBusinessInfo(c.Request().Context(), user.CompanyID)
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}
	return jsonSuccess(c, http.StatusOK, info)
}

func (h *BusinessInfoHandler) Save(c echo.Context) error {
	info, err := h.bindInfo(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	data, err := h.Client.SaveBusinessInfo(c.Request().Context(), info)
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}
	return jsonSuccess(c, http.StatusCreated, json.RawMessage(data))
}

func (h *BusinessInfoHandler) Update(c echo.Context) error {
	info, err := h.bindInfo(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	data, err := h.Client.UpdateBusinessInfo(c.Request().Context(), info)
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}
	return jsonSuccess(c, http.StatusOK, json.RawMessage(data))
}

func (h *BusinessInfoHandler) Delete(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return jsonError(c, http.StatusUnauthorized, "Authentication required. Please log in again.")
	}

	if err := h.Client.DeleteBusinessInfo(c.Request().Context(), user.CompanyID); err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}
	return jsonSuccess(c, http.StatusOK, map[string]string{"message": "Business info deleted"})
}

func (h *BusinessInfoHandler) bindInfo(c echo.Context) (*models.BusinessInfo, error) {
	var info models.BusinessInfo
	if err := c.Bind(&info); err != nil {
		return nil, errors.New("invalid JSON body")
	}
	if strings.TrimSpace(info.Name) == "" {
		return nil, errors.New("Missing required field: name")
	}
	if user := middleware.GetCurrentUser(c); user != nil && info.CompanyID == "" {
		info.CompanyID = user.CompanyID
	}
	return &info, nil
}
