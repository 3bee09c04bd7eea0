package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"page_flow_app_go/config"
	"page_flow_app_go/models"
)

// BackendEnvelope is the {success, data|error} wrapper every backend
// response uses.
type BackendEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// LandingPageList is one page of the landing-page collection.
type LandingPageList struct {
	Pages []models.LandingPage `json:"landingPages"`
	Count int                  `json:"count"`
}

// BackendClient talks to the AI backend service. All methods are thin
// wrappers around request supplying path, method, and body.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	genTimeout time.Duration
}

// NewBackendClient creates a client for the configured backend base URL.
func NewBackendClient(cfg *config.Config) *BackendClient {
	return &BackendClient{
		baseURL:    cfg.BackendAPIURL,
		httpClient: &http.Client{},
		timeout:    cfg.BackendTimeout,
		genTimeout: cfg.GenerationTimeout,
	}
}

// request forwards a JSON request to the backend and decodes the
// response envelope. A non-2xx status becomes a BackendError carrying
// the backend's error message when one is present.
func (c *BackendClient) request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeEnvelope(resp)
}

func decodeEnvelope(resp *http.Response) (json.RawMessage, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope BackendEnvelope
	// The error body may not be a valid envelope; fall back to the
	// status-derived message in that case.
	decodeErr := json.Unmarshal(raw, &envelope)

	if resp.StatusCode >= 400 {
		message := ""
		if decodeErr == nil {
			message = envelope.Error
		}
		return nil, newBackendError(resp.StatusCode, message)
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode backend response: %w", decodeErr)
	}
	if !envelope.Success {
		return nil, newBackendError(resp.StatusCode, envelope.Error)
	}
	return envelope.Data, nil
}

// Forward relays an opaque JSON payload to a backend path with the
// given timeout. The proxy routes use this directly.
func (c *BackendClient) Forward(ctx context.Context, method, path string, payload any, timeout time.Duration) (json.RawMessage, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.request(ctx, method, path, payload)
}

// GenerationTimeout is the bound applied to generation-heavy routes.
func (c *BackendClient) GenerationTimeout() time.Duration {
	return c.genTimeout
}

// --- Landing pages ---

// GetLandingPages fetches one page of landing pages, optionally scoped
// to a company.
func (c *BackendClient) GetLandingPages(ctx context.Context, page, limit int, companyID string) (*LandingPageList, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("limit", fmt.Sprintf("%d", limit))
	if companyID != "" {
		query.Set("companyId", companyID)
	}

	data, err := c.request(ctx, http.MethodGet, "/landing-pages?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var list LandingPageList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode landing page list: %w", err)
	}
	if list.Pages == nil {
		list.Pages = []models.LandingPage{}
	}
	return &list, nil
}

func (c *BackendClient) GetLandingPage(ctx context.Context, id string) (*models.LandingPage, error) {
	data, err := c.request(ctx, http.MethodGet, "/landing-pages/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeLandingPage(data)
}

func (c *BackendClient) CreateLandingPage(ctx context.Context, page any) (*models.LandingPage, error) {
	data, err := c.request(ctx, http.MethodPost, "/landing-pages", page)
	if err != nil {
		return nil, err
	}
	return decodeLandingPage(data)
}

func (c *BackendClient) UpdateLandingPage(ctx context.Context, id string, patch *models.LandingPagePatch) (*models.LandingPage, error) {
	data, err := c.request(ctx, http.MethodPut, "/landing-pages/"+url.PathEscape(id), patch)
	if err != nil {
		return nil, err
	}
	return decodeLandingPage(data)
}

func (c *BackendClient) UpdateLandingPageSections(ctx context.Context, id string, sections []models.LandingPageSection) error {
	body := map[string]any{"sections": sections}
	_, err := c.request(ctx, http.MethodPut, "/landing-pages/"+url.PathEscape(id)+"/sections", body)
	return err
}

func (c *BackendClient) DeleteLandingPage(ctx context.Context, id string) error {
	_, err := c.request(ctx, http.MethodDelete, "/landing-pages", map[string]string{"id": id})
	return err
}

func decodeLandingPage(data json.RawMessage) (*models.LandingPage, error) {
	var page models.LandingPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to decode landing page: %w", err)
	}
	return &page, nil
}

// --- AI routes ---

func (c *BackendClient) AnalyzeDesign(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/analyze-design", payload, c.genTimeout)
}

func (c *BackendClient) GenerateContent(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/generate-content", payload, c.genTimeout)
}

func (c *BackendClient) PlanContent(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/plan-content", payload, c.genTimeout)
}

func (c *BackendClient) Generate(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/generate", payload, c.genTimeout)
}

func (c *BackendClient) GenerateDynamicLandingPage(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/generate-dynamic-landing-page", payload, c.genTimeout)
}

func (c *BackendClient) Validate(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/validate", payload, 0)
}

func (c *BackendClient) GenerateLandingPage(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/generate-landing-page", payload, c.genTimeout)
}

func (c *BackendClient) ExtractPDF(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/extract-pdf", payload, c.genTimeout)
}

func (c *BackendClient) ExtractDesignFromURL(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/extract-design-from-url", payload, c.genTimeout)
}

func (c *BackendClient) ExtractDesignStructure(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/extract-design-structure", payload, c.genTimeout)
}

func (c *BackendClient) ExtractFigmaDesign(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/extract-design-structure", payload, c.genTimeout)
}

func (c *BackendClient) DownloadLandingPage(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/download-landing-page", payload, c.genTimeout)
}

func (c *BackendClient) PreviewLandingPage(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.Forward(ctx, http.MethodPost, "/ai/preview-landing-page", payload, c.genTimeout)
}

// --- Business info ---

func (c *BackendClient) GetBusinessInfo(ctx context.Context, companyID string) (*models.BusinessInfo, error) {
	query := url.Values{}
	if companyID != "" {
		query.Set("companyId", companyID)
	}
	data, err := c.request(ctx, http.MethodGet, "/business-info?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var info models.BusinessInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to decode business info: %w", err)
	}
	return &info, nil
}

func (c *BackendClient) SaveBusinessInfo(ctx context.Context, info *models.BusinessInfo) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPost, "/business-info", info)
}

func (c *BackendClient) UpdateBusinessInfo(ctx context.Context, info *models.BusinessInfo) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPut, "/business-info", info)
}

func (c *BackendClient) DeleteBusinessInfo(ctx context.Context, companyID string) error {
	_, err := c.request(ctx, http.MethodDelete, "/business-info", map[string]string{"companyId": companyID})
	return err
}

// --- Auth ---

// Login verifies credentials against the backend and returns the user
// it reports.
func (c *BackendClient) Login(ctx context.Context, email, password string) (*models.SessionUser, error) {
	data, err := c.request(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var user models.SessionUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return &user, nil
}

// --- Uploads ---

// UploadDesign sends a design file as multipart form data, bypassing
// the JSON encoding the other methods use.
func (c *BackendClient) UploadDesign(ctx context.Context, fileName, contentType string, file io.Reader, fields map[string]string) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("design", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file into multipart body: %w", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write multipart field %s: %w", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/design", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeEnvelope(resp)
}
