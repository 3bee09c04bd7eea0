package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"page_flow_app_go/config"
	"page_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// AIHandler exposes the backend AI routes through the generic proxy,
// with response reshaping for the analysis endpoints.
type AIHandler struct {
	Client *services.BackendClient
	Config *config.Config
}

func NewAIHandler(client *services.BackendClient, cfg *config.Config) *AIHandler {
	return &AIHandler{Client: client, Config: cfg}
}

// Register wires the AI proxy routes onto the group.
func (h *AIHandler) Register(g *echo.Group) {
	gen := h.Client.GenerationTimeout()

	g.POST("/analyze-design", h.AnalyzeDesign)
	g.POST("/extract-design-from-url", h.ExtractDesignFromURL)

	g.POST("/generate-content", Proxy(h.Client, ProxyRoute{
		BackendPath: "/ai/generate-content", Method: http.MethodPost,
		Timeout: gen, RequiredFields: []string{"businessInfo"},
	}))
	g.POST("/plan-content", Proxy(h.Client, ProxyRoute{
		BackendPath: "/ai/plan-content", Method: http.MethodPost,
		Timeout: gen, RequiredFields: []string{"businessInfo"},
	}))
	g.POST("/generate", Proxy(h.Client, ProxyRoute{
		BackendPath: "/ai/generate", Method: http.MethodPost,
		Timeout: gen, RequiredFields: []string{"prompt"},
	}))
	g.POST("/generate-dynamic-landing-page", Proxy(h.Client, ProxyRoute{
		BackendPath: "/ai/generate-dynamic-landing-page", Method: http.MethodPost,
		Timeout: gen, RequiredFields: []string{"businessInfo"},
	}))
	g.POST("/validate", Proxy(h.Client, ProxyRoute{
		BackendPath: "/ai/validate", Method: http.MethodPost,
		RequiredFields: []string{"content"},
	}))
	g.POST("/generate-landing-page", Proxy(h.Client, ProxyRoute{
		BackendPath: "/ai/generate-landing-page", Method: http.MethodPost,
		Timeout: gen, RequiredFields: []string{"contentPlan"},
	}))
	g.POST("/extract-pdf", Proxy(h.Client, ProxyRoute{
		BackendPath: "/ai/extract-pdf", Method: http.MethodPost,
		Timeout: gen, RequiredFields: []string{"fileUrl"},
	}))
	g.POST("/extract-design-structure", Proxy(h.Client, ProxyRoute{
		BackendPath: "/ai/extract-design-structure", Method: http.MethodPost,
		Timeout: gen, RequiredFields: []string{"figmaUrl"},
	}))
	g.POST("/download-landing-page", Proxy(h.Client, ProxyRoute{
		BackendPath: "/ai/download-landing-page", Method: http.MethodPost,
		Timeout: gen, RequiredFields: []string{"landingPage"},
	}))
}

// AnalyzeDesign forwards a design-analysis request and normalizes the
// response so the editor never sees missing arrays or nulls where it
// expects lists.
func (h *AIHandler) AnalyzeDesign(c echo.Context) error {
	payload, err := readJSONBody(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	if field := missingField(payload, []string{"designUrl"}); field != "" {
		return jsonError(c, http.StatusBadRequest, fmt.Sprintf("Missing required field: %s", field))
	}

	data, err := h.Client.AnalyzeDesign(c.Request().Context(), payload)
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}

	return jsonSuccess(c, http.StatusOK, reshapeAnalysis(data))
}

// ExtractDesignFromURL forwards a URL-extraction request. The source
// URL's main domain rides along in the response so relative asset
// links can be resolved client-side.
func (h *AIHandler) ExtractDesignFromURL(c echo.Context) error {
	payload, err := readJSONBody(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	if field := missingField(payload, []string{"url"}); field != "" {
		return jsonError(c, http.StatusBadRequest, fmt.Sprintf("Missing required field: %s", field))
	}

	sourceURL, _ := payload["url"].(string)

	data, err := h.Client.ExtractDesignFromURL(c.Request().Context(), payload)
	if err != nil {
		status, message := services.ClassifyProxyError(err)
		return jsonError(c, status, message)
	}

	result := reshapeAnalysis(data)
	result["mainDomain"] = services.ExtractMainDomain(sourceURL, h.Config.FallbackDomain)

	return jsonSuccess(c, http.StatusOK, result)
}

// reshapeAnalysis applies the analysis filters to a raw backend
// payload. A payload with an "analysis" object is treated as an
// analysis response; anything else as direct content.
func reshapeAnalysis(data json.RawMessage) map[string]any {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		raw = map[string]any{}
	}

	if analysis, ok := raw["analysis"].(map[string]any); ok {
		return map[string]any{
			"analysis": services.FilterAnalysisData(analysis),
		}
	}
	return map[string]any{
		"content": services.FilterDirectResponse(raw),
	}
}
